package leads

import (
	"strings"

	"github.com/jimezsa/creatorleads/internal/models"
)

// DefaultSourceTitle labels citations the provider returned without a title.
const DefaultSourceTitle = "Social Source"

// MergeSources appends incoming to existing keeping one entry per URI. A
// repeated URI keeps the position of its first occurrence and the values of
// its last one. Entries without a URI are dropped.
func MergeSources(existing []models.Source, incoming []models.Source) []models.Source {
	index := make(map[string]int, len(existing)+len(incoming))
	out := make([]models.Source, 0, len(existing)+len(incoming))

	add := func(source models.Source) {
		source.URI = strings.TrimSpace(source.URI)
		if source.URI == "" {
			return
		}
		source.Title = strings.TrimSpace(source.Title)
		if source.Title == "" {
			source.Title = DefaultSourceTitle
		}
		if pos, ok := index[source.URI]; ok {
			out[pos] = source
			return
		}
		index[source.URI] = len(out)
		out = append(out, source)
	}

	for _, source := range existing {
		add(source)
	}
	for _, source := range incoming {
		add(source)
	}
	return out
}
