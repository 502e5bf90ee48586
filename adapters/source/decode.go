package source

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"carviz/internal/errors"
	"carviz/ports"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode parses a fetched document into a Table.
func Decode(format Format, data []byte) (*ports.Table, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(data)
	case FormatXLSX:
		return decodeXLSX(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, errors.ParseFailure(fmt.Sprintf("unsupported format %q", format), nil)
	}
}

func decodeCSV(data []byte) (*ports.Table, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	// Ragged rows are allowed: short rows leave their trailing columns
	// missing, long rows drop extra cells.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseFailure("failed to read CSV document", err)
	}
	return processRows(rows, "CSV")
}

func decodeXLSX(data []byte) (*ports.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ParseFailure("failed to open XLSX document", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseFailure("XLSX document has no sheets", nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseFailure(fmt.Sprintf("failed to read sheet %s", sheets[0]), err)
	}
	return processRows(rows, "XLSX")
}

// processRows converts raw string rows into a Table keyed by header. Cells
// are kept verbatim; later duplicate headers win.
func processRows(rows [][]string, kind string) (*ports.Table, error) {
	if len(rows) == 0 {
		return nil, errors.ParseFailure(fmt.Sprintf("%s document has no header row", kind), nil)
	}

	headers := append([]string(nil), rows[0]...)
	table := &ports.Table{
		Headers: headers,
		Rows:    make([]ports.RawRowData, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		rowData := make(ports.RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = cell
			}
		}
		table.Rows = append(table.Rows, rowData)
	}
	return table, nil
}

// decodeJSON accepts an array of flat objects. Headers are the object keys
// in first-seen order.
func decodeJSON(data []byte) (*ports.Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.ParseFailure("document is not valid JSON", nil)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errors.ParseFailure("JSON document is not an array of rows", nil)
	}

	table := &ports.Table{}
	seen := make(map[string]bool)
	var parseErr error
	doc.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			parseErr = errors.ParseFailure(fmt.Sprintf("JSON row %d is not an object", len(table.Rows)+1), nil)
			return false
		}
		rowData := make(ports.RawRowData)
		item.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if !seen[k] {
				seen[k] = true
				table.Headers = append(table.Headers, k)
			}
			rowData[k] = value.String()
			return true
		})
		table.Rows = append(table.Rows, rowData)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return table, nil
}
