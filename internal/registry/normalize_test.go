package registry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var rawPage = []string{
	"DEPARTMENT OF HEALTH SERVICES",
	"Division of Quality Assurance",
	"",
	"\x00",
	"Recovery Residence Registry",
	"DANE",
	"Updated: 01/02/2024",
	"Sunrise House",
	"Operated by: Acme Corp",
	"Maximum Number of Residents:",
	" 8 ",
	"Contact: Jane Doe",
	"(608)555-1234",
	"Page 3 of 40",
	"Certified by: WASRR",
	"Registered Date: 2023-01-01",
	"Allows Medication Assisted Treatment",
	"Madison, WI 53703",
	"Madison, WI 53701-2969",
}

func TestNormalizeWithoutCapacity(t *testing.T) {
	got := Normalize(rawPage, Options{})
	want := []string{
		"DANE",
		"Sunrise House",
		"Operated by: Acme Corp",
		"Contact: Jane Doe",
		"(608)555-1234",
		"Madison, WI 53703",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeWithCapacity(t *testing.T) {
	got := Normalize(rawPage, Options{TracksCapacity: true})
	want := []string{
		"DANE",
		"Sunrise House",
		"Operated by: Acme Corp",
		"Maximum Number of Residents:",
		" 8 ",
		"Contact: Jane Doe",
		"(608)555-1234",
		"Madison, WI 53703",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeNeverEmitsBoilerplate(t *testing.T) {
	tables := DefaultTables()
	for _, capacity := range []bool{false, true} {
		for _, line := range Normalize(rawPage, Options{TracksCapacity: capacity}) {
			if line == "" || line == "\x00" || tables.IsBoilerplate(line) {
				t.Fatalf("boilerplate survived: %q", line)
			}
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(nil, Options{}); len(got) != 0 {
		t.Fatalf("len=%d", len(got))
	}
}

func TestNormalizeCustomTables(t *testing.T) {
	tables := NewTables([]string{"HEADER"}, []string{"#"}, nil, []string{"NORTH"})
	got := Normalize([]string{"HEADER", "NORTH", "# note", "Body"}, Options{Tables: tables})
	if diff := cmp.Diff([]string{"NORTH", "Body"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
