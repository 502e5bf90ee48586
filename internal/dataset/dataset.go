// Package dataset loads the vehicle table once and keeps it immutable for
// the lifetime of the views built on it.
package dataset

import (
	"carviz/domain/core"
	"carviz/domain/vehicle"
)

// Dataset is the ordered set of valid records from one load.
type Dataset struct {
	Source     string
	Records    []vehicle.Record
	Categories []string
	TotalRows  int
}

// New builds a dataset from records that already passed validation. The
// category set is the distinct non-empty types in first-appearance order.
func New(source string, records []vehicle.Record, totalRows int) *Dataset {
	return &Dataset{
		Source:     source,
		Records:    records,
		Categories: categories(records),
		TotalRows:  totalRows,
	}
}

// Len returns the number of valid records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Dropped is the number of source rows that failed validation.
func (d *Dataset) Dropped() int {
	return d.TotalRows - len(d.Records)
}

// Record looks up a record by its position.
func (d *Dataset) Record(id core.RecordID) (vehicle.Record, bool) {
	if id < 0 || int(id) >= len(d.Records) {
		return vehicle.Record{}, false
	}
	return d.Records[id], true
}

func categories(records []vehicle.Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		if r.Type == "" || seen[r.Type] {
			continue
		}
		seen[r.Type] = true
		out = append(out, r.Type)
	}
	return out
}
