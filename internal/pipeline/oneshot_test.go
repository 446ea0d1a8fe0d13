package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"recovres/internal"
)

var sampleRecords = []internal.Record{
	{Email: "jane@acme.org", ContactName: "Jane Doe", Phone: "(608)555-1234", ResidenceName: "Sunrise House", OrganizationName: "Acme Recovery, Inc.", Location: "MADISON", County: "DANE", MaxResidents: "8"},
	{ContactName: "Tom Smith", Phone: "(608)555-9876", ResidenceName: "Lakeview Home", OrganizationName: "Lakeview LLC", Location: "MADISON", County: "DANE"},
	{Email: "www.harborhouse.net", Phone: "(608)555-7777", ResidenceName: "Harbor House", OrganizationName: "Harbor Inc", Location: "BELOIT", County: "ROCK", MaxResidents: "12"},
}

func withoutCapacity(records []internal.Record) []internal.Record {
	out := make([]internal.Record, len(records))
	for i, r := range records {
		r.MaxResidents = ""
		out[i] = r
	}
	return out
}

func TestParseFileSample(t *testing.T) {
	path := filepath.Join("testdata", "registry_sample.txt")

	records, cleaned, err := ParseFile(path, ExtractPlain, true)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleRecords, records); diff != "" {
		t.Fatalf("capacity records mismatch (-want +got):\n%s", diff)
	}
	if len(cleaned) != 27 {
		t.Fatalf("cleaned=%d", len(cleaned))
	}

	records, cleaned, err = ParseFile(path, ExtractPlain, false)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(withoutCapacity(sampleRecords), records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
	if len(cleaned) != 23 {
		t.Fatalf("cleaned=%d", len(cleaned))
	}
}

func TestParseFileUnsupported(t *testing.T) {
	if _, _, err := ParseFile(filepath.Join("testdata", "registry_sample.csv"), ExtractPlain, false); err == nil {
		t.Fatal("expected error")
	}
}
