package leads

import (
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
)

// fold returns the case-folded form of value. A cases.Caser keeps state,
// so each call gets its own.
func fold(value string) string {
	return cases.Fold().String(value)
}

// cleanText strips markup and entities the model sometimes copies from the
// page and collapses whitespace.
func cleanText(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.ContainsAny(value, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(value))
		if err == nil {
			value = doc.Text()
		} else {
			value = html.UnescapeString(value)
		}
	}
	return strings.Join(strings.Fields(value), " ")
}

// UsernameKey is the comparison key for usernames: trimmed, without a
// leading "@", case-folded.
func UsernameKey(username string) string {
	username = strings.TrimSpace(username)
	username = strings.TrimPrefix(username, "@")
	return fold(username)
}

// nonProfilePaths are first path segments that name content, not accounts.
var nonProfilePaths = map[string]struct{}{
	"p":        {},
	"reel":     {},
	"reels":    {},
	"tv":       {},
	"explore":  {},
	"stories":  {},
	"video":    {},
	"tags":     {},
	"tag":      {},
	"discover": {},
	"music":    {},
}

// usernameFromURL recovers a handle from a profile URL such as
// https://www.instagram.com/handle/ or https://www.tiktok.com/@handle.
func usernameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return ""
	}
	if _, content := nonProfilePaths[strings.ToLower(segments[0])]; content {
		return ""
	}
	return strings.TrimPrefix(segments[0], "@")
}

func containsFolded(haystack, needle string) bool {
	return strings.Contains(fold(haystack), fold(strings.TrimSpace(needle)))
}
