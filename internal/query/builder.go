package query

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/jimezsa/creatorleads/internal/models"
)

const (
	DefaultRole         = "UGC Creator"
	DefaultIndustry     = "Generale"
	DefaultCity         = "Napoli"
	DefaultPlatform     = PlatformInstagram
	DefaultMinFollowers = "300"

	// TargetCount is how many profiles the prompt asks for.
	TargetCount = 6
	// MinPosts is the post count floor stated to the model.
	MinPosts = 10
	// MaxExcluded bounds the -inurl: terms so the query stays short.
	MaxExcluded = 15
)

// QualitySignals are quoted terms that favor actively posting profiles.
var QualitySignals = []string{"reels", "posts"}

// ContactMarkers are OR-ed terms that favor bios exposing a contact.
var ContactMarkers = []string{"email", "mail", "whatsapp", "cell", "+39"}

// Normalize trims every facet and fills empty ones with the form defaults.
func Normalize(q models.SearchQuery) models.SearchQuery {
	q.Role = firstNonEmpty(q.Role, DefaultRole)
	q.Industry = firstNonEmpty(q.Industry, DefaultIndustry)
	q.City = strings.TrimSpace(q.City)
	q.Platform = NormalizePlatform(firstNonEmpty(q.Platform, DefaultPlatform))
	q.MinFollowers = strings.ToLower(firstNonEmpty(q.MinFollowers, DefaultMinFollowers))
	return q
}

// SearchString composes the weighted search-engine query for q, excluding
// the first MaxExcluded usernames of existing.
func SearchString(q models.SearchQuery, existing []string) string {
	followerPhrase := `"followers"`
	if q.MinFollowers != "" && q.MinFollowers != DefaultMinFollowers {
		followerPhrase = fmt.Sprintf(`"%s followers"`, q.MinFollowers)
	}

	parts := []string{q.Role, q.Industry, q.City, followerPhrase}
	if q.Platform != "" {
		parts = append(parts, "site:"+q.Platform)
	}

	for _, signal := range QualitySignals {
		parts = append(parts, quote(signal))
	}
	if q.City != "" {
		parts = append(parts, quote(q.City))
	}

	markers := make([]string, 0, len(ContactMarkers))
	for _, marker := range ContactMarkers {
		markers = append(markers, quote(marker))
	}
	if len(markers) > 0 {
		parts = append(parts, "("+strings.Join(markers, " OR ")+")")
	}

	for _, username := range ExclusionPrefix(existing) {
		parts = append(parts, "-inurl:"+username)
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// ExclusionPrefix returns the cleaned, non-empty usernames that fit into the query.
func ExclusionPrefix(existing []string) []string {
	out := make([]string, 0, min(len(existing), MaxExcluded))
	for _, username := range existing {
		username = strings.TrimPrefix(strings.TrimSpace(username), "@")
		if username == "" || strings.ContainsAny(username, " \t\n") {
			continue
		}
		out = append(out, username)
		if len(out) == MaxExcluded {
			break
		}
	}
	return out
}

type promptData struct {
	Search       string
	Query        models.SearchQuery
	TargetCount  int
	MinPosts     int
	MinFollowers string
}

var promptTemplate = template.Must(template.New("prompt").Parse(`LEAD EXTRACTION AGENT.
Search query: "{{.Search}}"

TASK:
Find {{.TargetCount}} real creator profiles on {{.Query.Platform}} based in {{.Query.City}}.
Role: {{.Query.Role}}. Industry: {{.Query.Industry}}.

HARD RULES (discard any profile that breaks one):
- At least {{.MinFollowers}} followers.
- At least {{.MinPosts}} published posts.
- The profile shows visual content (reels, photos or videos).
- The bio explicitly mentions {{.Query.City}}.
- The bio is relevant to {{.Query.Role}} in {{.Query.Industry}}.
- A public email or mobile/WhatsApp number is present.
- Never return a profile listed with -inurl: in the search query.

For every profile extract:
- exact username and profile URL
- follower count as shown (e.g. 12.5k, 2k)
- a short summary of the bio
- public email or mobile/WhatsApp number, empty string when missing

RETURN ONLY A VALID JSON ARRAY:
[
  {
    "name": "Display Name",
    "username": "handle",
    "profileUrl": "https://{{.Query.Platform}}/handle",
    "followers": "12.5k",
    "bio": "bio excerpt",
    "email": "email or empty",
    "phone": "phone or empty",
    "category": "{{.Query.Role}}",
    "city": "{{.Query.City}}",
    "industry": "{{.Query.Industry}}"
  }
]
`))

// Prompt renders the natural-language extraction instruction for q.
func Prompt(q models.SearchQuery, existing []string) (string, error) {
	var b strings.Builder
	err := promptTemplate.Execute(&b, promptData{
		Search:       SearchString(q, existing),
		Query:        q,
		TargetCount:  TargetCount,
		MinPosts:     MinPosts,
		MinFollowers: firstNonEmpty(q.MinFollowers, DefaultMinFollowers),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, "") + `"`
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
