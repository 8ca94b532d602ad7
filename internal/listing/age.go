package listing

import (
	"regexp"
	"strconv"
	"strings"
)

// AgeUnknown is the rank for unparseable age text. Malformed rows sort
// last instead of failing the run.
const AgeUnknown = 1_000_000_000

// Minutes per unit, fixed ratios: a month is 30 days, a week 7 days.
const (
	minutesPerMonth = 30 * 24 * 60
	minutesPerWeek  = 7 * 24 * 60
	minutesPerDay   = 24 * 60
	minutesPerHour  = 60
)

// AgeParser converts free-text recency into minutes. Pluggable so other
// locales or formats can be wired in without touching selection.
type AgeParser func(string) int

var (
	punct = regexp.MustCompile(`[^\w\s]`)

	// Alternatives are ordered longest-first inside each unit so "mo"
	// binds as months before the bare minutes "m" can claim it; the
	// trailing \b keeps "m" from matching the front of "mo".
	ageExpr = regexp.MustCompile(`(\d+)\s*(?:(months?|mos?)|(weeks?|w)|(days?|d)|(hours?|hrs?|h)|(minutes?|mins?|m))\b`)

	compactExpr = regexp.MustCompile(`^(\d+)\s*([wdhm])$`)
)

// ParseAge maps age text like "0d", "5h", "30m", "1w", "1 mo",
// "2 months", "today", "new" or "just posted" to minutes; smaller is
// newer. It is total: anything unrecognized returns AgeUnknown.
func ParseAge(text string) int {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return AgeUnknown
	}

	switch s {
	case "new", "just posted", "today":
		return 0
	}

	s = punct.ReplaceAllString(s, "")

	if m := ageExpr.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return AgeUnknown
		}
		switch {
		case m[2] != "":
			return n * minutesPerMonth
		case m[3] != "":
			return n * minutesPerWeek
		case m[4] != "":
			return n * minutesPerDay
		case m[5] != "":
			return n * minutesPerHour
		case m[6] != "":
			return n
		}
		return AgeUnknown
	}

	// Compact "3w" style with nothing else in the string.
	if m := compactExpr.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return AgeUnknown
		}
		switch m[2] {
		case "w":
			return n * minutesPerWeek
		case "d":
			return n * minutesPerDay
		case "h":
			return n * minutesPerHour
		case "m":
			return n
		}
	}

	return AgeUnknown
}
