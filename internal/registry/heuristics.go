package registry

// The registry layout has no field labels for residence names, emails or
// counties. These lookups guess them from neighbouring lines and can be wrong;
// each one is kept separate so its failure mode can be tested on its own.

// ResidenceFromPrevious takes the line just before an "Operated by: " line as
// the residence name. It is wrong whenever normalization removed the line
// that actually held the name.
func ResidenceFromPrevious(lines []string, i int) string {
	if i <= 0 || i > len(lines) {
		return ""
	}
	return lines[i-1]
}

// EmailFromNext returns the line after a phone line when it looks like an
// email or web address. The line is not marked as consumed.
func EmailFromNext(lines []string, i int) (string, bool) {
	if i < 0 || i+1 >= len(lines) {
		return "", false
	}
	next := lines[i+1]
	if !IsEmail(next) {
		return "", false
	}
	return next, true
}

// CountyForLocation finds the first line equal to location anywhere in lines
// and returns the county heading right above it. When that line is not a
// county, location itself is tried. ok is false when location never appears
// in lines or neither candidate is a county.
func CountyForLocation(lines []string, location string, tables *Tables) (string, bool) {
	if tables == nil {
		tables = defaultTables
	}
	first := -1
	for i, line := range lines {
		if line == location {
			first = i
			break
		}
	}
	if first < 0 {
		return "", false
	}
	if first > 0 && tables.IsCounty(lines[first-1]) {
		return lines[first-1], true
	}
	if tables.IsCounty(location) {
		return location, true
	}
	return "", false
}
