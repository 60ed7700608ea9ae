package leads

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// UnitWords are stripped from follower strings before parsing.
var UnitWords = []string{"followers", "follower", "seguaci", "seguidores", "abonnés"}

// Multipliers maps a trailing unit suffix to its factor. The longest
// matching suffix wins.
var Multipliers = map[string]float64{
	"k":    1_000,
	"mila": 1_000,
	"m":    1_000_000,
	"mln":  1_000_000,
}

var (
	dottedThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	// "1,5k" is the Italian spelling of 1.5k.
	decimalComma = regexp.MustCompile(`^(\d+),(\d{1,2})([a-z]+)$`)
)

// ParseFollowers normalizes a free-form follower count ("10.5k", "1.2M",
// "12,300 followers") to an integer. Unparseable input yields 0.
func ParseFollowers(raw string) int64 {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, word := range UnitWords {
		value = strings.ReplaceAll(value, word, "")
	}
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "\u00a0", "")
	value = strings.TrimRight(value, "+")
	value = decimalComma.ReplaceAllString(value, "$1.$2$3")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return 0
	}

	factor := 1.0
	suffix := ""
	for unit, mult := range Multipliers {
		if strings.HasSuffix(value, unit) && len(unit) > len(suffix) {
			suffix = unit
			factor = mult
		}
	}
	if suffix != "" {
		number, err := strconv.ParseFloat(strings.TrimSuffix(value, suffix), 64)
		if err != nil || number < 0 {
			return 0
		}
		return toCount(math.Round(number * factor))
	}

	if dottedThousands.MatchString(value) {
		value = strings.ReplaceAll(value, ".", "")
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || number < 0 {
		return 0
	}
	return toCount(number)
}

// toCount converts to int64, treating values out of range as unparseable.
func toCount(number float64) int64 {
	if math.IsNaN(number) || math.IsInf(number, 0) || number >= math.MaxInt64 {
		return 0
	}
	return int64(number)
}
