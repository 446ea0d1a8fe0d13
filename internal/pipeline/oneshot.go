package pipeline

import (
	"recovres/internal"
)

// ParseFile parses a local registry PDF or line dump without touching storage.
func ParseFile(path, mode string, tracksCapacity bool) ([]internal.Record, []string, error) {
	raw, err := LoadLines(path, mode)
	if err != nil {
		return nil, nil, err
	}
	records, cleaned := ParseLines(raw, tracksCapacity)
	return records, cleaned, nil
}
