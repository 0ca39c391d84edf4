// Package source loads disaster-event tables from files or databases.
package source

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// ErrSourceUnavailable is returned when the configured data cannot be reached, such as a
// missing file. The pipeline reports it as a data-source failure, not as a parsing problem.
var ErrSourceUnavailable = errors.New("data source unavailable")

// Source loads one table.
type Source interface {
	Load(ctx context.Context) (*models.Table, error)
}
