package checkout

import (
	"net/url"
	"strings"
)

// RedirectBuilder turns relative redirect targets into absolute URLs on the
// service's public base URL. Parameters are always percent-encoded, never
// raw-interpolated.
type RedirectBuilder struct {
	base *url.URL
}

func NewRedirectBuilder(baseURL string) (*RedirectBuilder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &RedirectBuilder{base: u}, nil
}

// Build resolves the final browser redirect. overrideTarget, when non-empty,
// replaces defaultTarget entirely (a notification callback may point at a
// record-specific page). message is appended as a redirect_message query
// parameter.
func (b *RedirectBuilder) Build(defaultTarget, overrideTarget, message string) string {
	target := defaultTarget
	if overrideTarget != "" {
		target = overrideTarget
	}
	if message != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + "redirect_message=" + encodeQueryComponent(message)
	}

	ref, err := url.Parse(target)
	if err != nil {
		// A malformed override must not break the redirect; fall back to base.
		return b.base.String()
	}
	return b.base.ResolveReference(ref).String()
}

// encodeQueryComponent escapes with %20 for spaces so the encoded value is
// valid in both query and fragment position.
func encodeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
