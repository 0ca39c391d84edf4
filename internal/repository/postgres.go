package repository

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmptyTable is returned when no table name is configured.
var ErrEmptyTable = errors.New("event table name is empty")

const selectEventsQuery = `SELECT * FROM %s ORDER BY 1;`

// NewDatabase opens a pgx pool to the given PostgreSQL server and checks it with a ping.
func NewDatabase(ctx context.Context, host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + name,
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// FetchEvents loads every row of the given event table as a models.Table.
// Column names come from the result field descriptions and keep their order; rows are
// ordered by the first column. The table name may be schema-qualified ("public.earthquakes")
// and is quoted as an identifier.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - table: The name of the table holding the disaster events.
//
// Returns:
// - The loaded table, named after the table argument.
// - An error if the query fails or if there is an issue reading the rows.
func (r *Repository) FetchEvents(ctx context.Context, table string) (*models.Table, error) {
	if strings.TrimSpace(table) == "" {
		return nil, ErrEmptyTable
	}

	query := fmt.Sprintf(selectEventsQuery, pgx.Identifier(strings.Split(table, ".")).Sanitize())

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query disaster events: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := &models.Table{Name: table, Columns: make([]string, len(fields))}
	for i, fd := range fields {
		result.Columns[i] = fd.Name
	}

	for rows.Next() {
		values, errValues := rows.Values()
		if errValues != nil {
			return nil, fmt.Errorf("failed to scan disaster event: %w", errValues)
		}
		for i, val := range values {
			values[i] = plainValue(val)
		}
		result.Rows = append(result.Rows, values)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Disaster events fetched", "table", table,
		"columns", len(result.Columns), "rows", len(result.Rows))

	return result, nil
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

// plainValue converts pgx numeric values to float64 so coordinate cells need no pgx knowledge.
func plainValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case *pgtype.Numeric:
		if val == nil {
			return nil
		}
		return plainValue(*val)
	default:
		return v
	}
}
