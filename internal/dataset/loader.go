package dataset

import (
	"context"
	"time"

	"carviz/adapters/coercer"
	"carviz/domain/vehicle"
	"carviz/internal"
	"carviz/internal/errors"
	"carviz/ports"
)

// Source column names, fixed by the upstream document.
const (
	ColName        = "Name"
	ColType        = "Type"
	ColAWD         = "AWD"
	ColRWD         = "RWD"
	ColRetailPrice = "Retail Price"
	ColDealerCost  = "Dealer Cost"
	ColEngineSize  = "Engine Size (l)"
	ColCylinders   = "Cyl"
	ColHorsepower  = "Horsepower(HP)"
	ColCityMPG     = "City Miles Per Gallon"
	ColHighwayMPG  = "Highway Miles Per Gallon"
	ColWeight      = "Weight"
	ColWheelBase   = "Wheel Base"
	ColLength      = "Len"
	ColWidth       = "Width"
)

// Loader fetches, coerces and filters the dataset
type Loader struct {
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewLoader creates a loader with the default coercion rules
func NewLoader(logger *internal.Logger) *Loader {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{
		coercer: coercer.NewTypeCoercer(coercer.DefaultCoercionConfig()),
		logger:  logger.With("Loader"),
	}
}

// Load fetches the source once and returns the valid records in source
// order. Fetch and parse failures are returned unchanged so callers can
// branch on SOURCE_UNAVAILABLE or PARSE_FAILURE; there is no retry.
func Load(ctx context.Context, src ports.SourcePort) (*Dataset, error) {
	return NewLoader(nil).Load(ctx, src)
}

// Load fetches the source once and returns the valid records in source order.
func (l *Loader) Load(ctx context.Context, src ports.SourcePort) (*Dataset, error) {
	start := time.Now()

	table, err := src.Fetch(ctx)
	if err != nil {
		l.logger.Error("failed to load %s: %v", src.Name(), err)
		return nil, errors.Wrapf(err, "failed to load dataset from %s", src.Name())
	}

	ds := l.Normalize(src.Name(), table)
	l.logger.Info("loaded %d records from %s in %s (%d rows dropped, %d categories)",
		ds.Len(), src.Name(), time.Since(start).Round(time.Millisecond), ds.Dropped(), len(ds.Categories))
	return ds, nil
}

// Normalize coerces every row and keeps the valid ones.
func (l *Loader) Normalize(name string, table *ports.Table) *Dataset {
	records := make([]vehicle.Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		rec := l.coerceRow(row)
		if !rec.Valid() {
			l.logger.Trace("dropping row %d (%q): horsepower=%v cityMPG=%v type=%q",
				i+1, rec.Name, rec.Horsepower, rec.CityMPG, rec.Type)
			continue
		}
		records = append(records, rec)
	}
	return New(name, records, len(table.Rows))
}

func (l *Loader) coerceRow(row ports.RawRowData) vehicle.Record {
	return vehicle.Record{
		Name:        l.text(row, ColName),
		Type:        l.text(row, ColType),
		AWD:         l.number(row, ColAWD),
		RWD:         l.number(row, ColRWD),
		RetailPrice: l.number(row, ColRetailPrice),
		DealerCost:  l.number(row, ColDealerCost),
		EngineSize:  l.number(row, ColEngineSize),
		Cylinders:   l.number(row, ColCylinders),
		Horsepower:  l.number(row, ColHorsepower),
		CityMPG:     l.number(row, ColCityMPG),
		HighwayMPG:  l.number(row, ColHighwayMPG),
		Weight:      l.number(row, ColWeight),
		WheelBase:   l.number(row, ColWheelBase),
		Length:      l.number(row, ColLength),
		Width:       l.number(row, ColWidth),
	}
}

func (l *Loader) number(row ports.RawRowData, col string) float64 {
	raw, ok := row[col]
	if !ok {
		return l.coercer.Missing()
	}
	return l.coercer.Number(raw)
}

func (l *Loader) text(row ports.RawRowData, col string) string {
	return l.coercer.Text(row[col])
}
