// Package network provides a pre-configured HTTP client and proxy-template rewriting for provider communication.
package network

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cinecli/cinecli/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// proxySafe lists the characters kept literal when escaping the destination URL,
// matching the wrapper services' expected query encoding.
const proxySafe = ":/?&=%"

// ProxyTemplate returns the configured proxy wrapper template, e.g. "https://host/path?destination=".
func ProxyTemplate() string {
	return strings.TrimSpace(viper.GetString(key.NetworkProxy))
}

// Wrap rewrites rawURL through the configured proxy template by appending the
// escaped destination. The template's trailing parameter receives the real URL;
// this is plain string substitution, not a tunnel. Returns rawURL unchanged
// when no template is configured.
func Wrap(rawURL string) string {
	template := ProxyTemplate()
	if template == "" {
		return rawURL
	}
	return template + escapeDestination(rawURL)
}

// WrapForHosts rewrites rawURL only when its host matches one of the given
// domains (exact or suffix match), mirroring the per-provider proxy scoping.
func WrapForHosts(rawURL string, domains ...string) string {
	if ProxyTemplate() == "" {
		return rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	host := u.Hostname()
	matches := lo.SomeBy(domains, func(d string) bool {
		return host == d || strings.HasSuffix(host, "."+d)
	})
	if !matches {
		return rawURL
	}
	return Wrap(rawURL)
}

// escapeDestination percent-encodes everything except the characters in proxySafe.
func escapeDestination(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || strings.IndexByte(proxySafe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.' || c == '~':
		return true
	}
	return false
}
