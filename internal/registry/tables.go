package registry

import (
	"strings"

	"recovres/internal/util"
)

const (
	OrgMarker     = "Operated by: "
	ContactMarker = "Contact: "
	StateMarker   = ", WI"
)

// Tables is the fixed vocabulary of one registry layout. A Tables value is
// never mutated after construction.
type Tables struct {
	boilerplate      map[string]struct{}
	prefixes         []string
	capacityPrefixes []string
	counties         map[string]struct{}
}

func NewTables(boilerplate, prefixes, capacityPrefixes, counties []string) *Tables {
	return &Tables{
		boilerplate:      util.StringSet(boilerplate...),
		prefixes:         append([]string(nil), prefixes...),
		capacityPrefixes: append([]string(nil), capacityPrefixes...),
		counties:         util.StringSet(counties...),
	}
}

var defaultTables = NewTables(
	[]string{
		"",
		"\x00",
		"DEPARTMENT OF HEALTH SERVICES",
		"Division of Quality Assurance",
		"STATE OF WISCONSIN",
		"Bureau of Health Services",
		"PO Box 2969",
		"Madison, WI 53701-2969",
		"Recovery Residence Registry",
		"By County, City, and Name",
	},
	[]string{
		"Updated",
		"Page ",
		"Certified by: ",
		"Allows Medica",
		"Registered Date",
	},
	// Only dropped when bed counts are not tracked.
	[]string{
		"Maximum Num",
	},
	wisconsinCounties,
)

// DefaultTables returns the Wisconsin DHS registry vocabulary.
func DefaultTables() *Tables {
	return defaultTables
}

func (t *Tables) IsBoilerplate(line string) bool {
	_, ok := t.boilerplate[line]
	return ok
}

func (t *Tables) HasSkippedPrefix(line string, tracksCapacity bool) bool {
	for _, p := range t.prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	if tracksCapacity {
		return false
	}
	for _, p := range t.capacityPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// IsCounty is an exact, case-sensitive lookup.
func (t *Tables) IsCounty(line string) bool {
	_, ok := t.counties[line]
	return ok
}

func (t *Tables) CountyCount() int {
	return len(t.counties)
}

var wisconsinCounties = []string{
	"ADAMS",
	"ASHLAND",
	"BARRON",
	"BAYFIELD",
	"BROWN",
	"BUFFALO",
	"BURNETT",
	"CALUMET",
	"CHIPPEWA",
	"CLARK",
	"COLUMBIA",
	"CRAWFORD",
	"DANE",
	"DODGE",
	"DOOR",
	"DOUGLAS",
	"DUNN",
	"EAU CLAIRE",
	"FLORENCE",
	"FOND DU LAC",
	"FOREST",
	"GRANT",
	"GREEN",
	"GREEN LAKE",
	"IOWA",
	"IRON",
	"JACKSON",
	"JEFFERSON",
	"JUNEAU",
	"KENOSHA",
	"KEWAUNEE",
	"LA CROSSE",
	"LAFAYETTE",
	"LANGLADE",
	"LINCOLN",
	"MANITOWOC",
	"MARATHON",
	"MARINETTE",
	"MARQUETTE",
	"MENOMINEE",
	"MILWAUKEE",
	"MONROE",
	"OCONTO",
	"ONEIDA",
	"OUTAGAMIE",
	"OZAUKEE",
	"PEPIN",
	"PIERCE",
	"POLK",
	"PORTAGE",
	"PRICE",
	"RACINE",
	"RICHLAND",
	"ROCK",
	"RUSK",
	"SAUK",
	"SAWYER",
	"SHAWANO",
	"SHEBOYGAN",
	"SAINT CROIX",
	"TAYLOR",
	"TREMPEALEAU",
	"VERNON",
	"VILAS",
	"WALWORTH",
	"WASHBURN",
	"WASHINGTON",
	"WAUKESHA",
	"WAUPACA",
	"WAUSHARA",
	"WINNEBAGO",
	"WOOD",
}
