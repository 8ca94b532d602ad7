package listing

import "sort"

// RawRow is what the extractor hands over: cell text keyed by the
// title-cased column header, plus the href of the first link found in
// the Application cell (the cell's plain text is ignored).
type RawRow struct {
	Cells          map[string]string
	ApplicationURL string
}

// Row is one job posting. ID and AgeRank are derived once, right after
// normalization, and the row is never mutated afterwards.
type Row struct {
	Company        string
	Role           string
	Location       string
	DatePosted     string
	Sponsorship    string
	ApplicationURL string
	AgeText        string

	AgeRank int
	ID      string
}

// SortRows orders newest first (smallest age rank), with company and
// role as deterministic tie-breakers so identical fetches always sort
// the same way.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AgeRank != rows[j].AgeRank {
			return rows[i].AgeRank < rows[j].AgeRank
		}
		if rows[i].Company != rows[j].Company {
			return rows[i].Company < rows[j].Company
		}
		return rows[i].Role < rows[j].Role
	})
}
