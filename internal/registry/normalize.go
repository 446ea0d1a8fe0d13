package registry

type Options struct {
	// TracksCapacity keeps bare numeric lines and "Maximum Num..." labels so
	// the accumulator can read bed counts.
	TracksCapacity bool
	Tables         *Tables
}

func (o Options) tables() *Tables {
	if o.Tables == nil {
		return defaultTables
	}
	return o.Tables
}

// Normalize drops boilerplate, bare counts (unless capacity is tracked) and
// lines with a known prefix. Relative order is preserved.
func Normalize(raw []string, opts Options) []string {
	tables := opts.tables()
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if tables.IsBoilerplate(line) {
			continue
		}
		if !opts.TracksCapacity && IsCount(line) {
			continue
		}
		if tables.HasSkippedPrefix(line, opts.TracksCapacity) {
			continue
		}
		out = append(out, line)
	}
	return out
}
