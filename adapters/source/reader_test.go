package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"carviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const carsCSV = "Name,Type,Horsepower(HP),City Miles Per Gallon\n" +
	"Acura MDX,SUV,265,17\n" +
	"\"Honda, Civic\",Sedan,115,32\n"

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatCSV, DetectFormat("https://example.com/cars.csv"))
	assert.Equal(t, FormatXLSX, DetectFormat("/data/Cars.XLSX"))
	assert.Equal(t, FormatJSON, DetectFormat("https://example.com/cars.json?token=abc"))
	assert.Equal(t, FormatCSV, DetectFormat("cars"))
}

func TestDecodeCSV(t *testing.T) {
	table, err := Decode(FormatCSV, []byte(carsCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Type", "Horsepower(HP)", "City Miles Per Gallon"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Honda, Civic", table.Rows[1]["Name"])
	assert.Equal(t, "265", table.Rows[0]["Horsepower(HP)"])
}

func TestDecodeCSVRaggedRowsAndBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Name,Type,Cyl\nShort,SUV\nLong,Sedan,4,extra\n")...)

	table, err := Decode(FormatCSV, data)
	require.NoError(t, err)

	assert.Equal(t, "Name", table.Headers[0])
	_, present := table.Rows[0]["Cyl"]
	assert.False(t, present)
	assert.Equal(t, "4", table.Rows[1]["Cyl"])
	assert.Len(t, table.Rows[1], 3)
}

func TestDecodeCSVFailures(t *testing.T) {
	_, err := Decode(FormatCSV, []byte("Name,Type\n\"unterminated,SUV\n"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err))

	_, err = Decode(FormatCSV, nil)
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err))
}

func TestDecodeXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Type", "Horsepower(HP)"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Acura MDX", "SUV", 265}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := Decode(FormatXLSX, buf.Bytes())
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Acura MDX", table.Rows[0]["Name"])
	assert.Equal(t, "265", table.Rows[0]["Horsepower(HP)"])

	_, err = Decode(FormatXLSX, []byte("not a zip"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err))
}

func TestDecodeJSON(t *testing.T) {
	data := []byte(`[{"Name":"Acura MDX","Type":"SUV","Horsepower(HP)":265},{"Name":"Civic","Cyl":4}]`)

	table, err := Decode(FormatJSON, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Type", "Horsepower(HP)", "Cyl"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "265", table.Rows[0]["Horsepower(HP)"])
	assert.Equal(t, "4", table.Rows[1]["Cyl"])

	for _, bad := range []string{`{"Name":"x"}`, `[1,2]`, `[{"Name":`} {
		_, err := Decode(FormatJSON, []byte(bad))
		require.Error(t, err, bad)
		assert.Equal(t, errors.CodeParseFailure, errors.GetCode(err), bad)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cars.csv")
	require.NoError(t, os.WriteFile(path, []byte(carsCSV), 0o644))

	src := Open(path, nil)
	assert.Equal(t, path, src.Name())

	table, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	_, err = Open(filepath.Join(dir, "missing.csv"), nil).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cars.csv":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(carsCSV))
		case "/cars":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"Name":"Acura MDX"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	table, err := NewHTTPSource(srv.URL+"/cars.csv", srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)

	table, err = NewHTTPSource(srv.URL+"/cars", srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acura MDX", table.Rows[0]["Name"])

	_, err = NewHTTPSource(srv.URL+"/missing.csv", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))
}

func TestHTTPSourceUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/cars.csv"
	srv.Close()

	_, err := Open(url, nil).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))
}

func TestHTTPSourceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPSource("http://127.0.0.1:1/cars.csv", nil).Fetch(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))
}

func TestOversizedDocumentIsRejected(t *testing.T) {
	limit := int64(len(carsCSV) - 10)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(carsCSV))
	}))
	defer srv.Close()

	remote := NewHTTPSource(srv.URL+"/cars.csv", srv.Client())
	remote.limit = limit
	_, err := remote.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))
	assert.Contains(t, err.Error(), "document exceeds")

	path := filepath.Join(t.TempDir(), "cars.csv")
	require.NoError(t, os.WriteFile(path, []byte(carsCSV), 0o644))
	local := NewFileSource(path)
	local.limit = limit
	_, err = local.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeSourceUnavailable, errors.GetCode(err))

	local.limit = int64(len(carsCSV))
	table, err := local.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}
