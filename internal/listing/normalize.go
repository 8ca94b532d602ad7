package listing

import "strings"

// CleanText collapses whitespace runs (including non-breaking spaces)
// into single spaces and trims the ends.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// FromRaw turns an extracted row into a canonical Row. Missing columns
// degrade to empty strings; this never fails. The role column may be
// published as either "Role" or "Position" upstream.
func FromRaw(raw RawRow) Row {
	cell := func(name string) string {
		return CleanText(raw.Cells[name])
	}

	role := cell("Role")
	if role == "" {
		role = cell("Position")
	}

	return Row{
		Company:        cell("Company"),
		Role:           role,
		Location:       cell("Location"),
		DatePosted:     cell("Date Posted"),
		Sponsorship:    cell("Sponsorship"),
		ApplicationURL: strings.TrimSpace(raw.ApplicationURL),
		AgeText:        cell("Age"),
	}
}

// Finalize derives the age rank and stable ID for a normalized row.
func Finalize(r Row, parse AgeParser) Row {
	if parse == nil {
		parse = ParseAge
	}
	r.AgeRank = parse(r.AgeText)
	r.ID = ID(r)
	return r
}
