package ports

import (
	"context"
)

// RawRowData is one source row keyed by column header. Cells missing from a
// short row are absent from the map.
type RawRowData map[string]string

// Table is a fetched and parsed tabular document.
type Table struct {
	Headers []string
	Rows    []RawRowData
}

// SourcePort fetches the dataset document once and parses it into a Table.
type SourcePort interface {
	// Name identifies the source in logs and errors.
	Name() string
	// Fetch blocks until the document is fetched and parsed, or fails with a
	// SOURCE_UNAVAILABLE or PARSE_FAILURE error.
	Fetch(ctx context.Context) (*Table, error)
}
