package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/dataset"
	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/models"
)

// Geocoded fills empty coordinate cells by geocoding the row label.
//
// Only rows where the latitude or the longitude cell is empty are touched; a present but
// malformed value is left for the record filter to judge. Lookups are cached per query and
// run sequentially, leaving rate limits to the provider.
type Geocoded struct {
	inner    Source
	provider geocoding.Provider
	prefix   string
	log      *slog.Logger
}

// NewGeocoded wraps inner. prefix is prepended to every label, e.g. "India, ".
func NewGeocoded(inner Source, provider geocoding.Provider, prefix string, log *slog.Logger) *Geocoded {
	return &Geocoded{inner: inner, provider: provider, prefix: prefix, log: log}
}

func (g *Geocoded) Load(ctx context.Context) (*models.Table, error) {
	table, err := g.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	fields, err := dataset.ResolveFields(table.Columns)
	if err != nil {
		g.log.WarnContext(ctx, "Skipping coordinate backfill", "error", err)
		return table, nil
	}

	type lookup struct {
		coords *models.Coordinates
		err    error
	}
	cache := make(map[string]lookup)
	var filled, failed int

	for row := range table.Rows {
		if !isBlank(table.Cell(row, fields.Latitude.Index)) && !isBlank(table.Cell(row, fields.Longitude.Index)) {
			continue
		}

		label := strings.TrimSpace(fmt.Sprint(valueOrEmpty(table.Cell(row, fields.Label.Index))))
		if label == "" {
			failed++
			continue
		}

		query := g.prefix + label
		res, ok := cache[query]
		if !ok {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			res.coords, res.err = g.provider.Geocode(ctx, query)
			cache[query] = res
		}
		if res.err != nil {
			failed++
			g.log.WarnContext(ctx, "Failed to geocode place", "row", row, "place", query, "error", res.err)
			continue
		}

		setCell(table, row, fields.Latitude.Index, res.coords.Latitude)
		setCell(table, row, fields.Longitude.Index, res.coords.Longitude)
		filled++
	}

	if filled+failed > 0 {
		g.log.InfoContext(ctx, "Coordinate backfill finished", "filled", filled, "failed", failed, "lookups", len(cache))
	}

	return table, nil
}

func isBlank(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	default:
		return false
	}
}

func valueOrEmpty(v any) any {
	if v == nil {
		return ""
	}

	return v
}

// setCell writes a cell, growing a short row as needed.
func setCell(table *models.Table, row, idx int, v any) {
	for len(table.Rows[row]) <= idx {
		table.Rows[row] = append(table.Rows[row], nil)
	}
	table.Rows[row][idx] = v
}
