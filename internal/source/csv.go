package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// CSV reads a comma-separated file with a header row.
type CSV struct {
	name string
	path string
}

// NewCSV returns a source for the file at path; name labels the resulting table.
func NewCSV(name, path string) *CSV {
	return &CSV{name: name, path: path}
}

// Load reads the whole file. Cells are kept as strings, ragged rows are accepted and a
// byte-order mark on the header is dropped. A missing file yields ErrSourceUnavailable.
func (c *CSV) Load(ctx context.Context) (*models.Table, error) {
	file, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", c.path, err)
	}
	defer file.Close()

	return ReadCSV(ctx, c.name, file)
}

// ReadCSV parses CSV data from r into a table.
func ReadCSV(ctx context.Context, name string, r io.Reader) (*models.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &models.Table{Name: name}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &models.Table{Name: name, Columns: header}
	for {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		record, errRead := reader.Read()
		if errors.Is(errRead, io.EOF) {
			break
		}
		if errRead != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(table.Rows)+1, errRead)
		}

		row := make([]any, len(record))
		for i, cell := range record {
			row[i] = cell
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
