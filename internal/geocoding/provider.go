package geocoding

import (
	"context"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Provider resolves a place name to coordinates.
// It is used to backfill event rows whose coordinate cells are empty.
type Provider interface {
	Geocode(ctx context.Context, place string) (*models.Coordinates, error)
}
