package storage

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadCSV loads a delimited file with a header row and returns the raw
// header and data rows. No interpretation happens here: column matching
// and type coercion belong to the cleaning pipeline.
func ReadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	// Listing exports are ragged; short rows are tolerated downstream.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("csv: parse %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv: %q has no header row", path)
	}

	return records[0], records[1:], nil
}
