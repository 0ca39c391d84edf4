// Package dataset turns a loaded table into the ordered list of records with usable coordinates.
package dataset

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/coord"
	"github.com/UnknownOlympus/meridian/internal/models"
)

// ErrNoUsableData reports that a table cannot feed the pipeline: a required field is missing
// or no row has both coordinates. It is not fatal to the process; the caller may retry with
// other input.
var ErrNoUsableData = errors.New("no valid rows with required columns found")

// Report summarises one filter pass.
type Report struct {
	Fields  Fields // Fields are the resolved columns.
	Total   int    // Total is the number of input rows.
	Kept    int    // Kept is the number of rows that became records.
	Dropped int    // Dropped is the number of rows with a missing coordinate.
}

// Filter normalizes the latitude and longitude of every row and keeps the rows where both
// coerce to finite numbers. The output preserves input order; rows with either coordinate
// missing are dropped entirely.
//
// ErrNoUsableData is returned, wrapping the cause, when the fields cannot be resolved or
// when no row survives.
func Filter(table *models.Table) ([]models.Record, Report, error) {
	if table == nil {
		return nil, Report{}, fmt.Errorf("%w: empty table", ErrNoUsableData)
	}

	fields, err := ResolveFields(table.Columns)
	if err != nil {
		return nil, Report{Total: table.Len()}, fmt.Errorf("%w: %w", ErrNoUsableData, err)
	}

	report := Report{Fields: fields, Total: table.Len()}
	records := make([]models.Record, 0, table.Len())

	for row := range table.Rows {
		lat, latOK := coord.Float(coord.Normalize(table.Cell(row, fields.Latitude.Index)))
		lon, lonOK := coord.Float(coord.Normalize(table.Cell(row, fields.Longitude.Index)))
		if !latOK || !lonOK {
			report.Dropped++
			continue
		}

		records = append(records, models.Record{
			ID:        cellText(table.Cell(row, fields.ID.Index)),
			Latitude:  lat,
			Longitude: lon,
			Label:     cellText(table.Cell(row, fields.Label.Index)),
		})
	}
	report.Kept = len(records)

	if len(records) == 0 {
		return nil, report, fmt.Errorf("%w: %d rows, none with both coordinates", ErrNoUsableData, report.Total)
	}

	return records, report, nil
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}
