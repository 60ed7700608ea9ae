package ui

import (
	"bytes"
	"testing"
)

func TestPlainOutputRouting(t *testing.T) {
	var out, errOut bytes.Buffer
	u := New(&out, &errOut, ColorNever, false)

	u.Infof("found %d leads\n", 3)
	u.Successf("saved")
	u.Warnf("careful")
	u.Noticef("no new profiles")
	u.Errorf("boom")

	if got := out.String(); got != "found 3 leads\nsaved\n" {
		t.Fatalf("stdout = %q", got)
	}
	if got := errOut.String(); got != "careful\nno new profiles\nboom\n" {
		t.Fatalf("stderr = %q", got)
	}
}

func TestColorDisabledByFlag(t *testing.T) {
	var out bytes.Buffer
	u := New(&out, &out, ColorAlways, true)
	if u.ColorEnabled {
		t.Fatalf("ColorEnabled = true, want false when disabled")
	}
	if got := u.LinkText("https://instagram.com/anna"); got != "https://instagram.com/anna" {
		t.Fatalf("LinkText() = %q", got)
	}
}

func TestNormalizeColorMode(t *testing.T) {
	cases := map[string]ColorMode{
		"ALWAYS":  ColorAlways,
		" never":  ColorNever,
		"":        ColorAuto,
		"rainbow": ColorAuto,
	}
	for in, want := range cases {
		if got := NormalizeColorMode(in); got != want {
			t.Fatalf("NormalizeColorMode(%q) = %q, want %q", in, got, want)
		}
	}
}
