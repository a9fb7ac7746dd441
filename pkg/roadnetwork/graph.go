package roadnetwork

import (
	"sync"

	"github.com/jalur-dev/jalur/pkg"
	"github.com/jalur-dev/jalur/pkg/datastructure"
	"github.com/jalur-dev/jalur/pkg/geo"
	"github.com/jalur-dev/jalur/pkg/util"
	"go.uber.org/zap"
)

type Index = int32

const INVALID_VERTEX_ID Index = -1

// Vertex is one road-network node. id is the network-supplied identifier from
// the snapshot (an osm node id for osm-derived networks).
type Vertex struct {
	id  int64
	lat float64
	lon float64
}

func (v Vertex) GetID() int64 {
	return v.id
}

func (v Vertex) GetLat() float64 {
	return v.lat
}

func (v Vertex) GetLon() float64 {
	return v.lon
}

// OutEdge is one directed edge in the adjacency list of its tail vertex.
// key discriminates parallel edges between the same ordered vertex pair
// (divided carriageways, differing lane geometries).
type OutEdge struct {
	head   Index
	length float64
	key    int32
}

func (e OutEdge) GetHead() Index {
	return e.head
}

func (e OutEdge) GetLength() float64 {
	return e.length
}

func (e OutEdge) GetKey() int32 {
	return e.key
}

// NodeCoord is a snapshot node record before graph construction.
type NodeCoord struct {
	ID  int64
	Lat float64
	Lon float64
}

// EdgeSpec is a snapshot edge record before graph construction. HasLength is
// false when the snapshot had no usable length for the edge; the length is
// then recomputed as the great-circle distance between the endpoints.
type EdgeSpec struct {
	From   int64
	To     int64
	Length float64
	HasLength bool
}

// RoadNetwork is the directed multigraph the queries run against: vertex
// slice plus a per-vertex outgoing-edge list. Constructed once at startup,
// reduced to its largest weakly-connected region, immutable afterwards. Any
// number of concurrent queries may read it without synchronization.
type RoadNetwork struct {
	vertices []Vertex
	outEdges [][]OutEdge
	numEdges int

	idToIndex map[int64]Index

	undirectedOnce sync.Once
	undirected     *UndirectedView
}

// New builds the network from snapshot records: backfills missing edge
// lengths with haversine, validates that every edge endpoint exists, and
// discards everything outside the largest weakly-connected region.
func New(nodes []NodeCoord, edges []EdgeSpec, log *zap.Logger) (*RoadNetwork, error) {
	idToIndex := make(map[int64]Index, len(nodes))
	vertices := make([]Vertex, len(nodes))
	for i, n := range nodes {
		vertices[i] = Vertex{id: n.ID, lat: n.Lat, lon: n.Lon}
		idToIndex[n.ID] = Index(i)
	}

	outEdges := make([][]OutEdge, len(nodes))
	keyCount := make(map[[2]Index]int32, len(edges))
	numEdges := 0
	uf := datastructure.NewUnionFind[Index](len(nodes))

	for _, e := range edges {
		from, ok := idToIndex[e.From]
		if !ok {
			return nil, util.WrapErrorf(nil, ErrCorruptSnapshot, "edge references unknown node %d", e.From)
		}
		to, ok := idToIndex[e.To]
		if !ok {
			return nil, util.WrapErrorf(nil, ErrCorruptSnapshot, "edge references unknown node %d", e.To)
		}

		length := e.Length
		if !e.HasLength || length < 0 {
			u, v := vertices[from], vertices[to]
			length = geo.CalculateHaversineDistance(u.lat, u.lon, v.lat, v.lon)
		}

		pair := [2]Index{from, to}
		key := keyCount[pair]
		keyCount[pair] = key + 1

		outEdges[from] = append(outEdges[from], OutEdge{head: to, length: length, key: key})
		numEdges++
		uf.Union(from, to)
	}

	g := &RoadNetwork{
		vertices:  vertices,
		outEdges:  outEdges,
		numEdges:  numEdges,
		idToIndex: idToIndex,
	}

	if len(nodes) > 0 {
		g = g.reduceToLargestRegion(uf, log)
	}
	return g, nil
}

// reduceToLargestRegion drops every vertex/edge outside the largest
// weakly-connected region. The reduction is a correctness requirement:
// queries must never snap to an island that the rest of the network cannot
// reach.
func (g *RoadNetwork) reduceToLargestRegion(uf *datastructure.UnionFind[Index], log *zap.Logger) *RoadNetwork {
	root := uf.LargestRoot()
	keep := uf.SizeOf(root)
	if keep == len(g.vertices) {
		return g
	}

	oldToNew := make([]Index, len(g.vertices))
	vertices := make([]Vertex, 0, keep)
	idToIndex := make(map[int64]Index, keep)
	for i := range g.vertices {
		if uf.Find(Index(i)) != root {
			oldToNew[i] = INVALID_VERTEX_ID
			continue
		}
		oldToNew[i] = Index(len(vertices))
		idToIndex[g.vertices[i].id] = Index(len(vertices))
		vertices = append(vertices, g.vertices[i])
	}

	outEdges := make([][]OutEdge, len(vertices))
	numEdges := 0
	for i, edges := range g.outEdges {
		from := oldToNew[i]
		if from == INVALID_VERTEX_ID {
			continue
		}
		for _, e := range edges {
			head := oldToNew[e.head]
			if head == INVALID_VERTEX_ID {
				continue
			}
			outEdges[from] = append(outEdges[from], OutEdge{head: head, length: e.length, key: e.key})
			numEdges++
		}
	}

	if log != nil {
		log.Info("reduced road network to largest weakly-connected region",
			zap.Int("keptNodes", len(vertices)),
			zap.Int("droppedNodes", len(g.vertices)-len(vertices)),
			zap.Int("keptEdges", numEdges),
			zap.Int("droppedEdges", g.numEdges-numEdges))
	}

	return &RoadNetwork{
		vertices:  vertices,
		outEdges:  outEdges,
		numEdges:  numEdges,
		idToIndex: idToIndex,
	}
}

func (g *RoadNetwork) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *RoadNetwork) NumberOfEdges() int {
	return g.numEdges
}

func (g *RoadNetwork) GetVertex(v Index) Vertex {
	return g.vertices[v]
}

func (g *RoadNetwork) GetVertexCoordinates(v Index) (float64, float64) {
	return g.vertices[v].lat, g.vertices[v].lon
}

// GetVertexIndex maps a network-supplied node id to its internal index.
func (g *RoadNetwork) GetVertexIndex(id int64) (Index, bool) {
	idx, ok := g.idToIndex[id]
	return idx, ok
}

func (g *RoadNetwork) ForOutEdgesOf(u Index, fn func(head Index, length float64)) {
	for _, e := range g.outEdges[u] {
		fn(e.head, e.length)
	}
}

// ForParallelEdges visits every parallel directed edge u->v.
func (g *RoadNetwork) ForParallelEdges(u, v Index, fn func(e OutEdge)) {
	for _, e := range g.outEdges[u] {
		if e.head == v {
			fn(e)
		}
	}
}

// MinEdgeLength returns the minimum length among all parallel directed edges
// u->v, false when no such edge exists.
func (g *RoadNetwork) MinEdgeLength(u, v Index) (float64, bool) {
	best := pkg.INF_WEIGHT
	found := false
	g.ForParallelEdges(u, v, func(e OutEdge) {
		if e.length < best {
			best = e.length
		}
		found = true
	})
	return best, found
}

// RouteCoordinates projects a route (vertex index sequence) to its latlng
// sequence, the shape consumed by polyline encoding and map rendering.
func (g *RoadNetwork) RouteCoordinates(route []Index) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(route))
	for i, v := range route {
		coords[i] = geo.NewCoordinate(g.vertices[v].lat, g.vertices[v].lon)
	}
	return coords
}
