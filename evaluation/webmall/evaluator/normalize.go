package evaluator

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	urlPattern    = regexp.MustCompile(`(?i)\bhttps?://[^\s"'<>()\[\]{}]+`)
	schemePattern = regexp.MustCompile(`(?i)^[a-z][a-z0-9+.-]*://`)
	spacePattern  = regexp.MustCompile(`\s+`)
)

// NormalizeURL strips the scheme and trailing slashes so that
// "https://shop.example.com/p/" and "shop.example.com/p" compare equal.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = schemePattern.ReplaceAllString(s, "")
	return strings.TrimRight(s, "/")
}

// ExtractURLs returns every http(s) URL found in text, in order, with
// trailing sentence punctuation removed.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:!?")
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

func parseLoose(raw string) *url.URL {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if !schemePattern.MatchString(s) && !strings.HasPrefix(s, "/") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil
	}
	return u
}

// Slug returns the trailing path segment of a product URL, or "" when the
// URL has no path.
func Slug(raw string) string {
	u := parseLoose(raw)
	if u == nil {
		return ""
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	return strings.ToLower(segments[len(segments)-1])
}

// Host returns the lower-cased host (with port) of raw.
func Host(raw string) string {
	u := parseLoose(raw)
	if u == nil {
		return ""
	}
	return strings.ToLower(u.Host)
}

// siteKey is the lower-cased host with the port, dropping default ports.
func siteKey(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	switch port := u.Port(); port {
	case "", "80", "443":
		return host
	default:
		return host + ":" + port
	}
}

// resolveHref resolves href against the page URL.
func resolveHref(pageURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base := parseLoose(pageURL)
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil || ref.IsAbs() {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

func collapseSpace(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// containsPhrase reports whether phrase occurs in text on word boundaries,
// ignoring case and runs of whitespace.
func containsPhrase(text, phrase string) bool {
	phrase = collapseSpace(phrase)
	if phrase == "" {
		return false
	}
	pattern := `(?i)(^|[^\p{L}\p{N}])` + strings.ReplaceAll(regexp.QuoteMeta(phrase), " ", `\s+`) + `($|[^\p{L}\p{N}])`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}
