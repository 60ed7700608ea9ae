package leads

import (
	"github.com/jimezsa/creatorleads/internal/models"
)

// Accumulate folds the result of a "load more" search into the caller-held
// state. Leads whose username is already present are skipped; sources are
// merged by URI.
func Accumulate(acc models.SearchResult, next models.SearchResult) models.SearchResult {
	keys := make(map[string]struct{}, len(acc.Leads)+len(next.Leads))
	merged := make([]models.CreatorLead, 0, len(acc.Leads)+len(next.Leads))

	for _, lead := range acc.Leads {
		keys[UsernameKey(lead.Username)] = struct{}{}
		merged = append(merged, lead)
	}
	for _, lead := range next.Leads {
		key := UsernameKey(lead.Username)
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		merged = append(merged, lead)
	}

	return models.SearchResult{
		Leads:   merged,
		Sources: MergeSources(acc.Sources, next.Sources),
	}
}

// Usernames lists the usernames of leads in order, for use as an exclusion list.
func Usernames(leads []models.CreatorLead) []string {
	out := make([]string, 0, len(leads))
	for _, lead := range leads {
		if lead.Username == "" {
			continue
		}
		out = append(out, lead.Username)
	}
	return out
}
