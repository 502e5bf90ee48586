package ui

import (
	"bytes"
	"math"
	"net/http"

	"carviz/domain/vehicle"
	"carviz/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	recordsSheet    = "Cars"
)

// WriteRecordsXLSX writes the valid records as a single-sheet workbook with
// the display keys as header row.
func WriteRecordsXLSX(buf *bytes.Buffer, records []vehicle.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	var header []interface{}
	for _, field := range (vehicle.Record{}).Fields() {
		header = append(header, field.Key)
	}
	if err := f.SetSheetRow(recordsSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}

	for i, rec := range records {
		row := []interface{}{
			rec.Name, rec.Type,
			cellValue(rec.AWD), cellValue(rec.RWD),
			cellValue(rec.RetailPrice), cellValue(rec.DealerCost),
			cellValue(rec.EngineSize), cellValue(rec.Cylinders),
			cellValue(rec.Horsepower), cellValue(rec.CityMPG), cellValue(rec.HighwayMPG),
			cellValue(rec.Weight), cellValue(rec.WheelBase), cellValue(rec.Length), cellValue(rec.Width),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "cell name")
		}
		if err := f.SetSheetRow(recordsSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}

	if err := f.Write(buf); err != nil {
		return errors.Wrap(err, "write workbook")
	}
	return nil
}

// cellValue keeps finite numbers numeric and spells out the rest.
func cellValue(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return vehicle.FormatNumber(v)
	}
	return v
}

func (s *Server) handleExportXLSX(c *gin.Context) {
	if !s.loaded(c) {
		return
	}
	var buf bytes.Buffer
	if err := WriteRecordsXLSX(&buf, s.service.Dataset().Records); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cars.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (s *Server) handleExportPNG(c *gin.Context) {
	if !s.loaded(c) {
		return
	}
	var buf bytes.Buffer
	if err := s.service.WritePNG(&buf); err != nil {
		s.abortWithError(c, errors.Wrap(err, "render png"))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
