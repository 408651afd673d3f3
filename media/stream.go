package media

import (
	"fmt"
	"strings"
)

// StreamKind classifies a resolved stream target by how it must be consumed.
type StreamKind string

const (
	StreamHLS    StreamKind = "m3u8"
	StreamMP4    StreamKind = "mp4"
	StreamHTTP   StreamKind = "http"
	StreamMagnet StreamKind = "magnet"
)

// Stream is a playable or downloadable target produced by exactly one provider.
// Streams are ephemeral: constructed per action, never persisted.
type Stream struct {
	// URL is a direct http(s) URL or a magnet link.
	URL string

	// Provider names the resolver that produced this stream.
	Provider string

	Kind StreamKind

	// Name and Title carry the provider's display metadata when present.
	Name  string
	Title string

	// Referer, when set, must accompany playback requests (VidSrc CDNs enforce it).
	Referer string

	// FileIndex selects a file inside a torrent; negative when unknown.
	FileIndex int

	// SizeBytes is the advertised payload size, zero when unknown.
	SizeBytes int64
}

// Display renders a single-line label for stream picker menus.
func (s *Stream) Display() string {
	var parts []string
	for _, p := range []string{s.Name, s.Title} {
		if p != "" {
			parts = append(parts, strings.ReplaceAll(p, "\n", " "))
		}
	}
	if len(parts) == 0 {
		parts = append(parts, truncate(s.URL, 60))
	}

	label := strings.Join(parts, " | ")
	if s.SizeBytes > 0 {
		label += fmt.Sprintf("  (%s)", humanSize(s.SizeBytes))
	}
	return label
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func humanSize(n int64) string {
	size := float64(n)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 || unit == "GB" {
			if unit == "B" {
				return fmt.Sprintf("%d %s", int64(size), unit)
			}
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%d B", n)
}
