package routing

import (
	"errors"

	"github.com/jalur-dev/jalur/pkg/roadnetwork"
)

// Graph is the read-only view the searches run on. Both the directed road
// network and its undirected fallback view satisfy it, so one search
// implementation serves both phases.
type Graph interface {
	NumberOfVertices() int
	GetVertexCoordinates(v roadnetwork.Index) (float64, float64)
	ForOutEdgesOf(u roadnetwork.Index, fn func(head roadnetwork.Index, length float64))
}

var (
	// ErrNoPathFound is the per-query negative result: source and target are
	// not connected even on the undirected fallback view.
	ErrNoPathFound = errors.New("no path found between source and target")

	ErrNodeNotFound = errors.New("node not found in road network")
)
