package registry

import (
	"strings"

	"recovres/internal/util"
)

type Kind string

const (
	KindOrgHeader Kind = "ORG_HEADER"
	KindPhone     Kind = "PHONE"
	KindLocation  Kind = "LOCATION"
	KindContact   Kind = "CONTACT"
	KindCounty    Kind = "COUNTY"
	KindNumeric   Kind = "NUMERIC"
	KindOther     Kind = "OTHER"
)

var emailHints = []string{"@", "www.", ".com", ".gov", ".net", ".org"}

// IsPhone matches "(DDD)..." lines that contain a hyphen. Lines shorter than
// the five-rune prefix never match.
func IsPhone(s string) bool {
	r := []rune(s)
	if len(r) < 5 {
		return false
	}
	return r[0] == '(' && util.IsNumeric(string(r[1:4])) && r[4] == ')' && strings.Contains(s, "-")
}

func IsLocation(s string) bool {
	return strings.Contains(s, StateMarker) && util.IsNumeric(util.LastRunes(s, 5))
}

func IsOrg(s string) bool {
	return strings.HasPrefix(s, OrgMarker)
}

func IsCounty(s string) bool {
	return defaultTables.IsCounty(s)
}

func IsEmail(s string) bool {
	for _, hint := range emailHints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}

func IsContact(s string) bool {
	return strings.Contains(s, ContactMarker)
}

// IsCount matches bed/capacity count lines.
func IsCount(s string) bool {
	return util.IsNumeric(strings.TrimSpace(s))
}

// Classify tags a line with the first matching kind. The tag is diagnostic;
// several predicates can hold for one line and the accumulator consults them
// individually.
func Classify(line string, tables *Tables) Kind {
	if tables == nil {
		tables = defaultTables
	}
	switch {
	case IsOrg(line):
		return KindOrgHeader
	case IsPhone(line):
		return KindPhone
	case IsLocation(line):
		return KindLocation
	case IsContact(line):
		return KindContact
	case tables.IsCounty(line):
		return KindCounty
	case IsCount(line):
		return KindNumeric
	default:
		return KindOther
	}
}

func orgName(line string) string {
	return strings.TrimPrefix(line, OrgMarker)
}

func contactName(line string) string {
	idx := strings.Index(line, ContactMarker)
	if idx < 0 {
		return ""
	}
	return line[idx+len(ContactMarker):]
}

// locationName is the uppercased text before the first comma.
func locationName(line string) string {
	if idx := strings.Index(line, ","); idx >= 0 {
		line = line[:idx]
	}
	return strings.ToUpper(line)
}
