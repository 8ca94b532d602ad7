package listing

import "testing"

func TestFromRawDefaultsMissingColumns(t *testing.T) {
	t.Parallel()

	row := FromRaw(RawRow{Cells: map[string]string{"Company": "Acme"}})

	if row.Company != "Acme" {
		t.Fatalf("company = %q", row.Company)
	}
	if row.Role != "" || row.Location != "" || row.AgeText != "" || row.ApplicationURL != "" {
		t.Fatalf("missing columns must default to empty, got %+v", row)
	}
}

func TestFromRawAcceptsPositionHeader(t *testing.T) {
	t.Parallel()

	row := FromRaw(RawRow{Cells: map[string]string{
		"Company":  "Acme",
		"Position": "Platform Engineer",
	}})
	if row.Role != "Platform Engineer" {
		t.Fatalf("role = %q, want Position value", row.Role)
	}

	// Role wins when both are present.
	row = FromRaw(RawRow{Cells: map[string]string{
		"Role":     "SWE",
		"Position": "Other",
	}})
	if row.Role != "SWE" {
		t.Fatalf("role = %q, want Role value", row.Role)
	}
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	got := CleanText("  New York,\n NY  ")
	if got != "New York, NY" {
		t.Fatalf("CleanText = %q", got)
	}
}

func TestSortRowsDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	rows := []Row{
		{Company: "Zeta", Role: "SWE", AgeRank: 100},
		{Company: "Acme", Role: "SWE", AgeRank: 100},
		{Company: "Acme", Role: "Analyst", AgeRank: 100},
		{Company: "Mid", Role: "SWE", AgeRank: 5},
	}
	SortRows(rows)

	want := []string{"Mid/SWE", "Acme/Analyst", "Acme/SWE", "Zeta/SWE"}
	for i, w := range want {
		got := rows[i].Company + "/" + rows[i].Role
		if got != w {
			t.Fatalf("rows[%d] = %s, want %s", i, got, w)
		}
	}
}
