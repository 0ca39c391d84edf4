// Package mapview writes an overlay to a viewable map artifact.
package mapview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/UnknownOlympus/meridian/internal/overlay"
)

// Format is the artifact type produced by a renderer.
type Format string

const (
	// FormatHTML renders a Leaflet page.
	FormatHTML Format = "html"
	// FormatGeoJSON renders a GeoJSON FeatureCollection.
	FormatGeoJSON Format = "geojson"
)

// Line colours, tree edges stand out in red over the blue complete graph.
const (
	ColorTree  = "red"
	ColorOther = "blue"
)

// ErrUnsupportedFormat is returned by NewRenderer for an unknown format.
var ErrUnsupportedFormat = errors.New("unsupported map format")

// Renderer writes an overlay and returns the path of the artifact.
type Renderer interface {
	Render(ctx context.Context, ov *overlay.Overlay, name string) (string, error)
}

// encoder turns an overlay into artifact bytes.
type encoder interface {
	encode(ov *overlay.Overlay, name string) ([]byte, error)
	extension() string
}

// FileRenderer writes artifacts into a directory as map_<name>.<ext>.
type FileRenderer struct {
	dir string
	enc encoder
}

// NewRenderer returns a renderer for the given format writing into dir.
func NewRenderer(format Format, dir string) (*FileRenderer, error) {
	switch format {
	case FormatHTML, "":
		return &FileRenderer{dir: dir, enc: leaflet{}}, nil
	case FormatGeoJSON:
		return &FileRenderer{dir: dir, enc: geoJSON{}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Path returns where an artifact for name is written.
func (r *FileRenderer) Path(name string) string {
	return filepath.Join(r.dir, fmt.Sprintf("map_%s.%s", name, r.enc.extension()))
}

// Render encodes the overlay and writes it atomically: the artifact either appears complete
// or not at all.
func (r *FileRenderer) Render(ctx context.Context, ov *overlay.Overlay, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := r.enc.encode(ov, name)
	if err != nil {
		return "", fmt.Errorf("failed to encode map: %w", err)
	}

	path := r.Path(name)
	if err = writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write map %s: %w", path, err)
	}

	return path, nil
}

func writeAtomic(path string, data []byte) error {
	const (
		dirPerm  = 0o755
		filePerm = 0o644
	)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".map-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = bytes.NewReader(data).WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	// CreateTemp opens with 0600; the artifact is meant to be shared.
	if err = tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
