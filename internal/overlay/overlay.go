// Package overlay turns a graph and its spanning tree into styled map geometry.
package overlay

import (
	"github.com/UnknownOlympus/meridian/internal/graph"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/mst"
)

// Style tags a line for the renderer.
type Style string

const (
	// StyleTree marks an edge of the minimum spanning tree.
	StyleTree Style = "tree"
	// StyleOther marks every other edge of the complete graph.
	StyleOther Style = "other"
)

// DefaultZoom is the zoom hint used when none is configured.
const DefaultZoom = 5

// Marker is a node pin with its popup label.
type Marker struct {
	ID       string
	Position models.Coordinates
	Label    string
}

// Line is one graph edge as a pair of endpoint coordinates.
type Line struct {
	FromID string
	ToID   string
	From   models.Coordinates
	To     models.Coordinates
	Weight float64
	Style  Style
}

// Overlay is everything a map renderer needs: markers, lines, the suggested centre and zoom.
type Overlay struct {
	Markers []Marker
	Lines   []Line
	Center  models.Coordinates
	Zoom    int
}

// TreeLines returns the lines tagged StyleTree.
func (o *Overlay) TreeLines() []Line {
	lines := make([]Line, 0, len(o.Markers))
	for _, l := range o.Lines {
		if l.Style == StyleTree {
			lines = append(lines, l)
		}
	}

	return lines
}

// Classify emits one marker per node and one line per graph edge, tagging each line by tree
// membership. Membership is decided by the unordered slot pair, never by position in a slice.
// The centre is the arithmetic mean of the node coordinates; zoom values below one fall back
// to DefaultZoom.
func Classify(g *graph.Graph, tree mst.Tree, zoom int) *Overlay {
	if zoom < 1 {
		zoom = DefaultZoom
	}

	out := &Overlay{Zoom: zoom}
	if g == nil {
		return out
	}

	out.Markers = make([]Marker, len(g.Nodes))
	var sumLat, sumLon float64
	for i, node := range g.Nodes {
		out.Markers[i] = Marker{ID: node.ID, Position: node.Position, Label: node.Label}
		sumLat += node.Position.Latitude
		sumLon += node.Position.Longitude
	}
	if n := float64(len(g.Nodes)); n > 0 {
		out.Center = models.Coordinates{Longitude: sumLon / n, Latitude: sumLat / n}
	}

	inTree := tree.Set()
	out.Lines = make([]Line, len(g.Edges))
	for i, e := range g.Edges {
		style := StyleOther
		if _, ok := inTree[e.Key()]; ok {
			style = StyleTree
		}
		from, to := g.Nodes[e.From], g.Nodes[e.To]
		out.Lines[i] = Line{
			FromID: from.ID,
			ToID:   to.ID,
			From:   from.Position,
			To:     to.Position,
			Weight: e.Weight,
			Style:  style,
		}
	}

	return out
}
