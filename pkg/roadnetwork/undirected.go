package roadnetwork

// UndirectedView is the weight-collapsed undirected view of the network used
// by the fallback search: one edge per connected vertex pair, weighted by the
// minimum length among all parallel directed edges in either direction.
// Routes found on it may violate one-way restrictions.
type UndirectedView struct {
	network *RoadNetwork
	adj     [][]OutEdge
}

// GetUndirectedView returns the fallback view, building it on first use. The
// network is immutable, so the view is built once and published through
// sync.Once: fully visible or not at all, never partial.
func (g *RoadNetwork) GetUndirectedView() *UndirectedView {
	g.undirectedOnce.Do(func() {
		g.undirected = buildUndirectedView(g)
	})
	return g.undirected
}

func buildUndirectedView(g *RoadNetwork) *UndirectedView {
	n := g.NumberOfVertices()
	adj := make([][]OutEdge, n)

	// position of neighbor v in adj[u], to collapse parallels to the min
	pos := make([]map[Index]int, n)

	link := func(u, v Index, length float64) {
		if pos[u] == nil {
			pos[u] = make(map[Index]int, 4)
		}
		if i, ok := pos[u][v]; ok {
			if length < adj[u][i].length {
				adj[u][i].length = length
			}
			return
		}
		pos[u][v] = len(adj[u])
		adj[u] = append(adj[u], OutEdge{head: v, length: length})
	}

	for u := Index(0); u < Index(n); u++ {
		for _, e := range g.outEdges[u] {
			if e.head == u {
				continue
			}
			link(u, e.head, e.length)
			link(e.head, u, e.length)
		}
	}

	return &UndirectedView{network: g, adj: adj}
}

func (uv *UndirectedView) NumberOfVertices() int {
	return uv.network.NumberOfVertices()
}

func (uv *UndirectedView) GetVertexCoordinates(v Index) (float64, float64) {
	return uv.network.GetVertexCoordinates(v)
}

func (uv *UndirectedView) ForOutEdgesOf(u Index, fn func(head Index, length float64)) {
	for _, e := range uv.adj[u] {
		fn(e.head, e.length)
	}
}
