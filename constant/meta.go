// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// CineCLI is the canonical application identifier used for filesystem paths and CLI branding.
	CineCLI = "cinecli"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for network requests to external providers.
	UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// UserAgentAlt is the fallback User-Agent used when a provider rejects the default one.
	UserAgentAlt = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0"
)

// Build metadata, overridden at link time via -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
