package seen

import (
	"github.com/jimezsa/creatorleads/internal/leads"
	"github.com/jimezsa/creatorleads/internal/models"
)

// DiffStats captures stats for A-B unseen filtering.
type DiffStats struct {
	TotalNew    int
	TotalSeen   int
	InvalidNew  int
	InvalidSeen int
	Unseen      int
}

// InvalidSkipped returns the total invalid records skipped during comparison.
func (s DiffStats) InvalidSkipped() int {
	return s.InvalidNew + s.InvalidSeen
}

// MergeStats captures stats for history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Key is the history key of a lead: its case-folded username.
func Key(lead models.CreatorLead) (string, bool) {
	key := leads.UsernameKey(lead.Username)
	if key == "" {
		return "", false
	}
	return key, true
}

// Usernames returns the distinct usernames of history, in order.
func Usernames(history []models.CreatorLead) []string {
	keys := make(map[string]struct{}, len(history))
	out := make([]string, 0, len(history))
	for _, lead := range history {
		key, ok := Key(lead)
		if !ok {
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, lead.Username)
	}
	return out
}

// Diff returns the leads of newLeads whose username is not in seenLeads.
func Diff(newLeads []models.CreatorLead, seenLeads []models.CreatorLead) ([]models.CreatorLead, DiffStats) {
	stats := DiffStats{
		TotalNew:  len(newLeads),
		TotalSeen: len(seenLeads),
	}

	seenKeys := make(map[string]struct{}, len(seenLeads))
	for _, lead := range seenLeads {
		key, ok := Key(lead)
		if !ok {
			stats.InvalidSeen++
			continue
		}
		seenKeys[key] = struct{}{}
	}

	newKeys := make(map[string]struct{}, len(newLeads))
	unseen := make([]models.CreatorLead, 0, len(newLeads))
	for _, lead := range newLeads {
		key, ok := Key(lead)
		if !ok {
			stats.InvalidNew++
			continue
		}
		if _, exists := newKeys[key]; exists {
			continue
		}
		newKeys[key] = struct{}{}
		if _, exists := seenKeys[key]; exists {
			continue
		}
		unseen = append(unseen, lead)
	}

	stats.Unseen = len(unseen)
	return unseen, stats
}

// Merge appends leads with unknown usernames to the history.
// Existing entries win collisions; invalid input entries are dropped.
func Merge(existing []models.CreatorLead, input []models.CreatorLead) ([]models.CreatorLead, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(existing),
		TotalInput: len(input),
	}

	keys := make(map[string]struct{}, len(existing)+len(input))
	out := make([]models.CreatorLead, 0, len(existing)+len(input))

	for _, lead := range existing {
		key, ok := Key(lead)
		if !ok {
			stats.InvalidSeen++
			out = append(out, lead)
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, lead)
	}

	for _, lead := range input {
		key, ok := Key(lead)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, lead)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
