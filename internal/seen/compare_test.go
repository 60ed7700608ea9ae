package seen

import (
	"testing"

	"github.com/jimezsa/creatorleads/internal/models"
)

func TestKey(t *testing.T) {
	got, ok := Key(models.CreatorLead{Username: "  @Anna.Beauty "})
	if !ok {
		t.Fatalf("expected valid key")
	}
	if got != "anna.beauty" {
		t.Fatalf("Key() = %q, want %q", got, "anna.beauty")
	}

	if _, ok := Key(models.CreatorLead{Name: "No Handle"}); ok {
		t.Fatalf("expected invalid key for empty username")
	}
}

func TestDiff(t *testing.T) {
	newLeads := []models.CreatorLead{
		{Username: "anna", ProfileURL: "https://instagram.com/anna"},
		{Username: "ANNA", ProfileURL: "https://instagram.com/anna-dupe"},
		{Username: "bruno", ProfileURL: "https://instagram.com/bruno"},
		{Username: "", ProfileURL: "https://instagram.com/invalid"},
	}
	seenLeads := []models.CreatorLead{
		{Username: "@anna"},
		{Username: "anna"},
		{Username: "   "},
	}

	unseen, stats := Diff(newLeads, seenLeads)

	if len(unseen) != 1 {
		t.Fatalf("expected 1 unseen lead, got %d", len(unseen))
	}
	if unseen[0].Username != "bruno" {
		t.Fatalf("unexpected unseen lead: %+v", unseen[0])
	}
	if stats.TotalNew != 4 {
		t.Fatalf("TotalNew = %d, want 4", stats.TotalNew)
	}
	if stats.TotalSeen != 3 {
		t.Fatalf("TotalSeen = %d, want 3", stats.TotalSeen)
	}
	if stats.InvalidSkipped() != 2 {
		t.Fatalf("InvalidSkipped = %d, want 2", stats.InvalidSkipped())
	}
	if stats.Unseen != 1 {
		t.Fatalf("Unseen = %d, want 1", stats.Unseen)
	}
}

func TestMergeAndIdempotency(t *testing.T) {
	existing := []models.CreatorLead{
		{ID: "1", Username: "anna"},
		{ID: "2", Username: ""},
	}
	input := []models.CreatorLead{
		{ID: "3", Username: "Anna"},
		{ID: "4", Username: "bruno"},
		{ID: "5", Username: ""},
	}

	merged, stats := Merge(existing, input)
	if len(merged) != 3 {
		t.Fatalf("expected merged len=3, got %d", len(merged))
	}
	if merged[0].ID != "1" {
		t.Fatalf("existing entry should win collision, got %+v", merged[0])
	}
	if stats.Added != 1 {
		t.Fatalf("Added = %d, want 1", stats.Added)
	}
	if stats.InvalidSeen != 1 || stats.InvalidInput != 1 {
		t.Fatalf("invalid counts = %d/%d, want 1/1", stats.InvalidSeen, stats.InvalidInput)
	}

	mergedAgain, statsAgain := Merge(merged, input)
	if len(mergedAgain) != len(merged) {
		t.Fatalf("expected idempotent merge length %d, got %d", len(merged), len(mergedAgain))
	}
	if statsAgain.Added != 0 {
		t.Fatalf("expected second merge Added=0, got %d", statsAgain.Added)
	}
}

func TestUsernamesDistinct(t *testing.T) {
	got := Usernames([]models.CreatorLead{{Username: "a"}, {Username: "A"}, {Username: ""}, {Username: "b"}})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Usernames() = %#v", got)
	}
}
