package source

import (
	"context"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/repository"
)

// Postgres loads an event table through the repository.
type Postgres struct {
	repo  repository.Interface
	name  string
	table string
}

// NewPostgres returns a source reading table; name labels the resulting table.
func NewPostgres(repo repository.Interface, name, table string) *Postgres {
	return &Postgres{repo: repo, name: name, table: table}
}

func (p *Postgres) Load(ctx context.Context) (*models.Table, error) {
	table, err := p.repo.FetchEvents(ctx, p.table)
	if err != nil {
		return nil, err
	}
	table.Name = p.name

	return table, nil
}
