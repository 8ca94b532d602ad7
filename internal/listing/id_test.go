package listing

import "testing"

func TestIDStableAcrossAgeChanges(t *testing.T) {
	t.Parallel()

	a := Row{Company: "Acme", Role: "SWE", Location: "NYC", ApplicationURL: "https://acme.example/apply", AgeText: "new", DatePosted: "Jan 01"}
	b := Row{Company: " Acme ", Role: "SWE", Location: "NYC ", ApplicationURL: "https://acme.example/apply", AgeText: "2d", DatePosted: "Jan 03"}

	if ID(a) != ID(b) {
		t.Fatalf("same tuple must yield same id: %s vs %s", ID(a), ID(b))
	}
}

func TestIDSensitiveToApplicationURL(t *testing.T) {
	t.Parallel()

	a := Row{Company: "Acme", Role: "SWE", Location: "NYC"}
	b := a
	b.ApplicationURL = "https://acme.example/apply"

	if ID(a) == ID(b) {
		t.Fatal("adding an application url must change the id")
	}
}

func TestIDShape(t *testing.T) {
	t.Parallel()

	id := ID(Row{Company: "Acme"})
	if len(id) != idLen {
		t.Fatalf("id length = %d, want %d", len(id), idLen)
	}
	for _, c := range id {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("id %q has non-hex char %q", id, c)
		}
	}
}
