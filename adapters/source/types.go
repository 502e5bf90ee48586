package source

import (
	"path"
	"strings"
)

// Format is the encoding of a dataset document.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
)

// maxDocumentBytes is the largest document a source accepts.
const maxDocumentBytes = 64 << 20

// DetectFormat picks the format from a file name or URL path, defaulting
// to CSV.
func DetectFormat(location string) Format {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".xlsx":
		return FormatXLSX
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// formatFromContentType refines the format from an HTTP Content-Type header.
func formatFromContentType(contentType string, fallback Format) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "spreadsheetml"):
		return FormatXLSX
	case strings.Contains(ct, "json"):
		return FormatJSON
	case strings.Contains(ct, "csv"):
		return FormatCSV
	default:
		return fallback
	}
}
