package registry

import (
	"strings"

	"recovres/internal"
)

type accumulator struct {
	opts   Options
	tables *Tables
	lines  []string
	county string
	cur    internal.Record
	out    []internal.Record
}

// Accumulate walks normalized lines once and returns the records it could
// complete. The first line is taken as the opening county heading. A record
// still open when the lines run out is dropped.
func Accumulate(lines []string, opts Options) []internal.Record {
	if len(lines) == 0 {
		return []internal.Record{}
	}

	// Trailing sentinel so lookahead never runs off the end.
	padded := append(append(make([]string, 0, len(lines)+1), lines...), "")

	a := &accumulator{
		opts:   opts,
		tables: opts.tables(),
		lines:  padded,
		county: lines[0],
		out:    []internal.Record{},
	}
	for i := 1; i < len(lines); i++ {
		a.step(i)
	}
	return a.out
}

func (a *accumulator) step(i int) {
	line := a.lines[i]

	switch {
	case IsOrg(line):
		if a.cur.OrganizationName != "" {
			a.flush()
			a.clearKeepingCapacity()
		}
		a.cur.ResidenceName = ResidenceFromPrevious(a.lines, i)
		a.cur.OrganizationName = orgName(line)
		a.cur.Email = ""
		a.cur.ContactName = ""
		a.cur.Phone = ""
		a.cur.Location = ""
	case IsPhone(line):
		a.cur.Phone = line
		if email, ok := EmailFromNext(a.lines, i); ok {
			a.cur.Email = email
		}
	case a.opts.TracksCapacity && IsCount(line):
		a.cur.MaxResidents = strings.TrimSpace(line)
	case IsLocation(line):
		a.cur.Location = locationName(line)
		if county, ok := CountyForLocation(a.lines, a.cur.Location, a.tables); ok {
			a.county = county
		}
	}

	if IsContact(line) {
		a.cur.ContactName = contactName(line)
	}

	if a.cur.Complete() {
		a.flush()
		a.cur = internal.Record{}
	}
}

func (a *accumulator) flush() {
	rec := a.cur
	rec.County = a.county
	if !a.opts.TracksCapacity {
		rec.MaxResidents = ""
	}
	a.out = append(a.out, rec)
}

// clearKeepingCapacity resets the record after a flush triggered by a new
// organization. The bed count survives into the next record, unlike the
// reset after a completeness flush.
func (a *accumulator) clearKeepingCapacity() {
	a.cur = internal.Record{MaxResidents: a.cur.MaxResidents}
}
