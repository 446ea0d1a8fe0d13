package registry

import "testing"

func TestIsPhone(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: "(608)123-4567", want: true},
		{input: "(608) 123-4567", want: true},
		{input: "608-123-4567", want: false},
		{input: "(608)1234567", want: false},
		{input: "(a1)", want: false},
		{input: "(60)", want: false},
		{input: "(", want: false},
		{input: "", want: false},
		{input: "(6O8)123-4567", want: false},
	}
	for _, tc := range cases {
		if got := IsPhone(tc.input); got != tc.want {
			t.Fatalf("IsPhone(%q)=%v want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsLocation(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: "Madison, WI 53703", want: true},
		{input: "Fond du Lac, WI 54935", want: true},
		{input: "Madison WI", want: false},
		{input: "Madison, WI", want: false},
		{input: "Madison, WI 53703-1234", want: false},
		{input: "Madison, MN 55401", want: false},
	}
	for _, tc := range cases {
		if got := IsLocation(tc.input); got != tc.want {
			t.Fatalf("IsLocation(%q)=%v want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsCounty(t *testing.T) {
	if !IsCounty("DANE") {
		t.Fatal("DANE should be a county")
	}
	if IsCounty("Dane") {
		t.Fatal("county match must be case-sensitive")
	}
	if !IsCounty("FOND DU LAC") {
		t.Fatal("FOND DU LAC should be a county")
	}
	if IsCounty("DANE ") {
		t.Fatal("county match must be exact")
	}
	if n := DefaultTables().CountyCount(); n != 72 {
		t.Fatalf("county table has %d entries", n)
	}
}

func TestIsEmailIsOrgIsContact(t *testing.T) {
	for _, s := range []string{"jane@acme.org", "www.example", "acme.com", "dhs.wisconsin.gov", "x.net"} {
		if !IsEmail(s) {
			t.Fatalf("IsEmail(%q) should be true", s)
		}
	}
	if IsEmail("Sunrise House") {
		t.Fatal("plain text is not an email")
	}
	if !IsOrg("Operated by: Acme Corp") || IsOrg("Acme Operated by: x") {
		t.Fatal("IsOrg must be a prefix match")
	}
	if !IsContact("Contact: Jane Doe") || !IsContact("Manager Contact: Jane") || IsContact("Contact:Jane") {
		t.Fatal("IsContact mismatch")
	}
}

func TestClassify(t *testing.T) {
	cases := map[string]Kind{
		"Operated by: Acme Corp": KindOrgHeader,
		"(608)555-1234":          KindPhone,
		"Madison, WI 53703":      KindLocation,
		"Contact: Jane Doe":      KindContact,
		"DANE":                   KindCounty,
		" 12 ":                   KindNumeric,
		"Sunrise House":          KindOther,
	}
	for line, want := range cases {
		if got := Classify(line, nil); got != want {
			t.Fatalf("Classify(%q)=%s want %s", line, got, want)
		}
	}
}

func TestLocationName(t *testing.T) {
	if got := locationName("Eau Claire, WI 54701"); got != "EAU CLAIRE" {
		t.Fatalf("got %q", got)
	}
	if got := contactName("Owner Contact: Jane Doe"); got != "Jane Doe" {
		t.Fatalf("got %q", got)
	}
	if got := orgName("Operated by: Acme, LLC"); got != "Acme, LLC" {
		t.Fatalf("got %q", got)
	}
}
