// Package platforms maps submitted URLs to provider handlers and extracts
// normalized track metadata from them under strict fetch bounds.
package platforms

import (
	"net/url"
	"strings"

	"music-contest/domain/repository"
)

// Registry resolves URLs against an ordered, fixed list of handlers. The
// first handler whose Matches succeeds wins; order never changes after
// construction.
type Registry struct {
	handlers []repository.IPlatformHandler
}

// NewRegistry builds the registry. Pass handlers in priority order.
func NewRegistry(handlers ...repository.IPlatformHandler) *Registry {
	return &Registry{handlers: handlers}
}

// NewDefaultRegistry wires the full closed set of supported providers.
func NewDefaultRegistry(fetcher *Fetcher, videoAPI VideoAPI) *Registry {
	return NewRegistry(
		NewSunoHandler(fetcher),
		NewUdioHandler(fetcher),
		NewRiffusionHandler(fetcher),
		NewYouTubeHandler(fetcher, videoAPI),
		NewSoundCloudHandler(fetcher),
		NewSpotifyHandler(fetcher),
	)
}

// Resolve returns the first matching handler, or nil when the URL belongs to
// no supported platform (including unparseable URLs).
func (r *Registry) Resolve(rawURL string) repository.IPlatformHandler {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}
	for _, h := range r.handlers {
		if h.Matches(u) {
			return h
		}
	}
	return nil
}

// Names lists the registered platform names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for _, h := range r.handlers {
		names = append(names, h.Name())
	}
	return names
}

// hostMatches compares a parsed hostname against a provider domain. The
// domain matches exactly or as a suffix label (www.suno.com matches suno.com),
// never as a bare substring, so "suno.com.evil.example" does not match.
func hostMatches(host, domain string) bool {
	host = strings.ToLower(host)
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// canonicalPage strips query and fragment noise: scheme://host/path.
func canonicalPage(u *url.URL) string {
	c := url.URL{Scheme: u.Scheme, Host: u.Host, Path: u.Path}
	return c.String()
}
