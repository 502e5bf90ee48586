package ui

import (
	"net/http"

	"carviz/domain/core"
	"carviz/domain/vehicle"
	"carviz/internal/chart"
	"carviz/internal/errors"

	"github.com/gin-gonic/gin"
)

// recordResponse is the JSON form of a record. Field values use the same
// literal formatting as the detail table so non-finite values survive.
type recordResponse struct {
	ID         core.RecordID   `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Horsepower float64         `json:"horsepower"`
	CityMPG    float64         `json:"city_mpg"`
	Style      chart.Style     `json:"style"`
	Fields     []fieldResponse `json:"fields"`
}

type fieldResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) toResponse(id core.RecordID, rec vehicle.Record) recordResponse {
	style, _ := s.service.Encoding().Style(rec.Type)
	fields := rec.Fields()
	out := make([]fieldResponse, len(fields))
	for i, f := range fields {
		out[i] = fieldResponse{Key: f.Key, Value: f.Value}
	}
	return recordResponse{
		ID:         id,
		Name:       rec.Name,
		Type:       rec.Type,
		Horsepower: rec.Horsepower,
		CityMPG:    rec.CityMPG,
		Style:      style,
		Fields:     out,
	}
}

// loaded aborts with the load error when there is no dataset.
func (s *Server) loaded(c *gin.Context) bool {
	if err := s.service.Failed(); err != nil {
		s.abortWithError(c, err)
		return false
	}
	return true
}

func (s *Server) handleRecords(c *gin.Context) {
	if !s.loaded(c) {
		return
	}
	ds := s.service.Dataset()
	records := make([]recordResponse, 0, ds.Len())
	for i, rec := range ds.Records {
		records = append(records, s.toResponse(core.RecordID(i), rec))
	}
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

func (s *Server) handleRecord(c *gin.Context) {
	if !s.loaded(c) {
		return
	}
	id, err := core.ParseRecordID(c.Param("id"))
	if err != nil {
		s.abortWithError(c, errors.WithCode(errors.CodeInvalidInput, err))
		return
	}
	rec, err := s.service.Record(id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.toResponse(id, rec))
}

func (s *Server) handleCategories(c *gin.Context) {
	if !s.loaded(c) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": s.service.Encoding().Styles()})
}

func (s *Server) handleSummary(c *gin.Context) {
	if !s.loaded(c) {
		return
	}
	c.JSON(http.StatusOK, s.service.Summary())
}

func (s *Server) handleSelection(c *gin.Context) {
	if !s.loaded(c) {
		return
	}
	ctrl, ok := s.controller(c, false)
	if !ok {
		s.abortWithError(c, errors.InternalError("no viewer session"))
		return
	}
	id, selected := ctrl.Selected()
	if !selected {
		c.JSON(http.StatusOK, gin.H{"selected": nil})
		return
	}
	rec, err := s.service.Record(id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"selected": s.toResponse(id, rec)})
}
