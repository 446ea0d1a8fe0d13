package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"recovres/internal"
)

func TestAccumulateSingleRecord(t *testing.T) {
	lines := []string{
		"DANE",
		"Sunrise House",
		"Operated by: Acme Corp",
		"Contact: Jane Doe",
		"(608)555-1234",
		"jane@acme.org",
		"Madison, WI 53703",
	}
	want := []internal.Record{{
		Email:            "jane@acme.org",
		ContactName:      "Jane Doe",
		Phone:            "(608)555-1234",
		ResidenceName:    "Sunrise House",
		OrganizationName: "Acme Corp",
		Location:         "MADISON",
		County:           "DANE",
	}}
	for _, capacity := range []bool{false, true} {
		got := Accumulate(lines, Options{TracksCapacity: capacity})
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("capacity=%v mismatch (-want +got):\n%s", capacity, diff)
		}
	}
}

func TestAccumulateFlushOnNewOrganization(t *testing.T) {
	lines := []string{
		"DANE",
		"House A",
		"Operated by: Org A",
		"Contact: Ann",
		"(608)555-0000",
		"House B",
		"Operated by: Org B",
		"Contact: Bob",
		"(608)555-1111",
		"Madison, WI 53703",
	}
	want := []internal.Record{
		{ContactName: "Ann", Phone: "(608)555-0000", ResidenceName: "House A", OrganizationName: "Org A", County: "DANE"},
		{ContactName: "Bob", Phone: "(608)555-1111", ResidenceName: "House B", OrganizationName: "Org B", Location: "MADISON", County: "DANE"},
	}
	got := Accumulate(lines, Options{})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulateCapacityCarry(t *testing.T) {
	lines := []string{
		"DANE",
		"House A",
		"Operated by: Org A",
		"8",
		"House B",
		"Operated by: Org B",
		"Contact: Bob",
		"(608)555-1111",
		"Madison, WI 53703",
		"House C",
		"Operated by: Org C",
		"Contact: Cy",
		"(608)555-2222",
		"Verona, WI 53593",
	}

	got := Accumulate(lines, Options{TracksCapacity: true})
	if len(got) != 3 {
		t.Fatalf("len=%d", len(got))
	}
	// Org-triggered flush keeps the count for the next record.
	if got[0].MaxResidents != "8" || got[1].MaxResidents != "8" {
		t.Fatalf("carry mismatch: %q %q", got[0].MaxResidents, got[1].MaxResidents)
	}
	// Completeness flush clears it.
	if got[2].MaxResidents != "" {
		t.Fatalf("expected cleared count, got %q", got[2].MaxResidents)
	}

	for _, rec := range Accumulate(lines, Options{}) {
		if rec.MaxResidents != "" {
			t.Fatalf("count leaked without capacity tracking: %+v", rec)
		}
	}
}

func TestAccumulateRollingCounty(t *testing.T) {
	lines := []string{
		"DANE",
		"Sunrise House",
		"Operated by: Acme Corp",
		"Contact: Jane Doe",
		"(608)555-1234",
		"Madison, WI 53703",
		"ROCK",
		"BELOIT",
		"Harbor House",
		"Operated by: Harbor Inc",
		"Contact: Sam Roe",
		"(608)555-7777",
		"Beloit, WI 53511",
		"Second House",
		"Operated by: Harbor Inc",
		"Contact: Sam Roe",
		"(608)555-8888",
		"Janesville, WI 53545",
	}
	got := Accumulate(lines, Options{})
	if len(got) != 3 {
		t.Fatalf("len=%d", len(got))
	}
	counties := []string{got[0].County, got[1].County, got[2].County}
	if diff := cmp.Diff([]string{"DANE", "ROCK", "ROCK"}, counties); diff != "" {
		t.Fatalf("county mismatch (-want +got):\n%s", diff)
	}
	if got[1].ResidenceName != "Harbor House" {
		t.Fatalf("residence=%q", got[1].ResidenceName)
	}
}

func TestAccumulateDropsTrailingRecord(t *testing.T) {
	lines := []string{
		"DANE",
		"Sunrise House",
		"Operated by: Acme Corp",
		"Contact: Jane Doe",
		"(608)555-1234",
	}
	if got := Accumulate(lines, Options{}); len(got) != 0 {
		t.Fatalf("expected no records, got %+v", got)
	}
}

func TestAccumulateEmptyAndShortInput(t *testing.T) {
	if got := Accumulate(nil, Options{}); got == nil || len(got) != 0 {
		t.Fatalf("got %#v", got)
	}
	if got := Accumulate([]string{"DANE"}, Options{}); len(got) != 0 {
		t.Fatalf("got %#v", got)
	}
	if got := Accumulate([]string{"DANE", "(", "()", "x"}, Options{}); len(got) != 0 {
		t.Fatalf("got %#v", got)
	}
}

func TestAccumulateIdempotent(t *testing.T) {
	lines := Normalize(rawPage, Options{TracksCapacity: true})
	first := Accumulate(lines, Options{TracksCapacity: true})
	second := Accumulate(lines, Options{TracksCapacity: true})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("runs differ (-first +second):\n%s", diff)
	}
	if len(first) != 1 || first[0].MaxResidents != "8" {
		t.Fatalf("unexpected records: %+v", first)
	}
}
