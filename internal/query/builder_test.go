package query

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jimezsa/creatorleads/internal/models"
)

func napoliQuery() models.SearchQuery {
	return Normalize(models.SearchQuery{
		Role:         "UGC Creator",
		Industry:     "Beauty",
		City:         "Napoli",
		Platform:     "instagram.com",
		MinFollowers: "300",
	})
}

func TestNormalizePlatform(t *testing.T) {
	cases := map[string]string{
		"Instagram":                PlatformInstagram,
		"ig":                       PlatformInstagram,
		"https://www.tiktok.com/":  PlatformTikTok,
		"tiktok":                   PlatformTikTok,
		" youtube.com ":            "youtube.com",
		"www.instagram.com":        PlatformInstagram,
	}
	for input, want := range cases {
		if got := NormalizePlatform(input); got != want {
			t.Fatalf("NormalizePlatform(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	got := Normalize(models.SearchQuery{City: "  Roma "})
	want := models.SearchQuery{
		Role:         DefaultRole,
		Industry:     DefaultIndustry,
		City:         "Roma",
		Platform:     DefaultPlatform,
		MinFollowers: DefaultMinFollowers,
	}
	if got != want {
		t.Fatalf("Normalize() = %#v, want %#v", got, want)
	}
}

func TestSearchStringDefaultFloor(t *testing.T) {
	got := SearchString(napoliQuery(), nil)
	want := `UGC Creator Beauty Napoli "followers" site:instagram.com "reels" "posts" "Napoli" ("email" OR "mail" OR "whatsapp" OR "cell" OR "+39")`
	if got != want {
		t.Fatalf("SearchString() = %q, want %q", got, want)
	}
}

func TestSearchStringQuotesCustomFloor(t *testing.T) {
	q := napoliQuery()
	q.MinFollowers = "50k"
	got := SearchString(q, nil)
	if !strings.Contains(got, `"50k followers"`) {
		t.Fatalf("SearchString() = %q, want quoted follower phrase", got)
	}
}

func TestSearchStringExcludesBoundedPrefix(t *testing.T) {
	existing := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		existing = append(existing, fmt.Sprintf("user%d", i))
	}
	got := SearchString(napoliQuery(), existing)

	if n := strings.Count(got, "-inurl:"); n != MaxExcluded {
		t.Fatalf("-inurl count = %d, want %d", n, MaxExcluded)
	}
	if !strings.Contains(got, "-inurl:user14") {
		t.Fatalf("SearchString() missing user14: %q", got)
	}
	if strings.Contains(got, "-inurl:user15") {
		t.Fatalf("SearchString() should stop before user15: %q", got)
	}
}

func TestExclusionPrefixSkipsBlankAndStripsAt(t *testing.T) {
	got := ExclusionPrefix([]string{" @mario ", "", "bad name", "luisa"})
	if strings.Join(got, ",") != "mario,luisa" {
		t.Fatalf("ExclusionPrefix() = %#v", got)
	}
}

func TestPromptStatesRulesAndSchema(t *testing.T) {
	prompt, err := Prompt(napoliQuery(), []string{"already.seen"})
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	for _, want := range []string{
		"Find 6 real creator profiles on instagram.com based in Napoli",
		"At least 300 followers",
		"At least 10 published posts",
		"The bio explicitly mentions Napoli",
		"-inurl:already.seen",
		`"profileUrl": "https://instagram.com/handle"`,
		`"category": "UGC Creator"`,
		`"industry": "Beauty"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("Prompt() missing %q:\n%s", want, prompt)
		}
	}
}
