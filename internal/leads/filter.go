package leads

import (
	"strings"
	"unicode/utf8"

	"github.com/jimezsa/creatorleads/internal/models"
)

// DefaultMinFollowers applies when the query carries no floor.
const DefaultMinFollowers = "300"

// minPhoneLength is exclusive: a phone needs more characters than this.
const minPhoneLength = 5

// Options controls local validation of model output.
type Options struct {
	// Query supplies the follower floor, the city and the fallback
	// category/industry/city values.
	Query models.SearchQuery
	// Exclude lists usernames already collected by the caller.
	Exclude []string

	EnforceFollowerFloor bool
	EnforceCity          bool
}

// Stats counts why candidates were dropped.
type Stats struct {
	Total           int
	MissingUsername int
	MissingContact  int
	Duplicate       int
	BelowFloor      int
	OutsideCity     int
	Accepted        int
}

// Rejected returns the number of dropped candidates.
func (s Stats) Rejected() int {
	return s.Total - s.Accepted
}

// Filter re-checks every hard constraint the prompt states, since the model
// does not reliably obey it, and assigns fresh IDs to the survivors.
func Filter(raw []models.RawLead, opts Options) ([]models.CreatorLead, Stats) {
	stats := Stats{Total: len(raw)}

	excluded := make(map[string]struct{}, len(opts.Exclude)+len(raw))
	for _, username := range opts.Exclude {
		if key := UsernameKey(username); key != "" {
			excluded[key] = struct{}{}
		}
	}

	floor := ParseFollowers(firstNonEmpty(opts.Query.MinFollowers, DefaultMinFollowers))
	city := strings.TrimSpace(opts.Query.City)

	out := make([]models.CreatorLead, 0, len(raw))
	for _, candidate := range raw {
		lead := normalize(candidate, opts.Query)
		followers := ParseFollowers(lead.Followers)

		if lead.Username == "" {
			stats.MissingUsername++
			continue
		}
		if !HasContact(lead) {
			stats.MissingContact++
			continue
		}
		key := UsernameKey(lead.Username)
		if _, dup := excluded[key]; dup {
			stats.Duplicate++
			continue
		}
		if opts.EnforceFollowerFloor && followers < floor {
			stats.BelowFloor++
			continue
		}
		if opts.EnforceCity && city != "" && !containsFolded(lead.Bio, city) {
			stats.OutsideCity++
			continue
		}

		excluded[key] = struct{}{}
		lead.ID = NewID(len(out))
		out = append(out, lead)
	}

	stats.Accepted = len(out)
	return out, stats
}

// HasContact reports whether the lead exposes an email containing "@" or a
// phone longer than five characters.
func HasContact(lead models.CreatorLead) bool {
	if strings.Contains(lead.Email, "@") {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(lead.Phone)) > minPhoneLength
}

func normalize(raw models.RawLead, q models.SearchQuery) models.CreatorLead {
	lead := models.CreatorLead{
		Name:       cleanText(raw.Name.String()),
		Username:   strings.TrimPrefix(strings.TrimSpace(raw.Username.String()), "@"),
		ProfileURL: strings.TrimSpace(raw.ProfileURL.String()),
		Followers:  strings.TrimSpace(raw.Followers.String()),
		Bio:        cleanText(raw.Bio.String()),
		Email:      strings.TrimSpace(raw.Email.String()),
		Phone:      strings.TrimSpace(raw.Phone.String()),
		Category:   firstNonEmpty(cleanText(raw.Category.String()), q.Role),
		Industry:   firstNonEmpty(cleanText(raw.Industry.String()), q.Industry),
		City:       firstNonEmpty(cleanText(raw.City.String()), q.City),
	}
	if lead.Username == "" {
		lead.Username = usernameFromURL(lead.ProfileURL)
	}
	if lead.ProfileURL == "" && lead.Username != "" && q.Platform != "" {
		lead.ProfileURL = profileURL(q.Platform, lead.Username)
	}
	return lead
}

func profileURL(platform, username string) string {
	if strings.Contains(platform, "tiktok") {
		return "https://www." + platform + "/@" + username
	}
	return "https://www." + platform + "/" + username + "/"
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
