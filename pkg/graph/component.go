package graph

// UnionFind is a disjoint-set forest over [0, n) with path halving and
// union by size.
type UnionFind struct {
	parent []uint32
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	uf := &UnionFind{
		parent: make([]uint32, n),
		size:   make([]uint32, n),
	}
	for i := range n {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.size[rx] < uf.size[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	return true
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 {
	return uf.size[uf.Find(x)]
}

// ComponentStats summarises the weakly connected components of a graph.
type ComponentStats struct {
	Count   int    // number of components, isolated vertices included
	Largest uint32 // vertex count of the largest component
}

// weakComponents unions every edge endpoint pair, ignoring direction.
func weakComponents(g *Graph) *UnionFind {
	uf := NewUnionFind(g.NumNodes)
	for u := range g.NumNodes {
		start, end := g.EdgesFrom(u)
		for _, v := range g.Head[start:end] {
			uf.Union(u, v)
		}
	}
	return uf
}

// Components counts the weakly connected components of g. A BFS from any
// root reaches at most Largest vertices.
func Components(g *Graph) ComponentStats {
	var st ComponentStats
	if g.NumNodes == 0 {
		return st
	}
	uf := weakComponents(g)
	for v := range g.NumNodes {
		if uf.Find(v) != v {
			continue
		}
		st.Count++
		st.Largest = max(st.Largest, uf.size[v])
	}
	return st
}

// LargestComponent returns the vertices of the largest weakly connected
// component in ascending order. Ties go to the component containing the
// lowest vertex.
func LargestComponent(g *Graph) []uint32 {
	if g.NumNodes == 0 {
		return nil
	}
	uf := weakComponents(g)

	best, bestSize := uint32(0), uint32(0)
	for v := range g.NumNodes {
		if s := uf.Size(v); s > bestSize {
			best, bestSize = uf.Find(v), s
		}
	}

	nodes := make([]uint32, 0, bestSize)
	for v := range g.NumNodes {
		if uf.Find(v) == best {
			nodes = append(nodes, v)
		}
	}
	return nodes
}

// FilterToComponent builds the subgraph induced by nodes, relabelling
// nodes[i] as vertex i. Coordinates are carried over when present.
func FilterToComponent(g *Graph, nodes []uint32) *Graph {
	if len(nodes) == 0 {
		return Build(0, nil)
	}

	relabel := make([]int64, g.NumNodes)
	for i := range relabel {
		relabel[i] = -1
	}
	for i, v := range nodes {
		relabel[v] = int64(i)
	}

	var edges []Edge
	for _, u := range nodes {
		start, end := g.EdgesFrom(u)
		for _, v := range g.Head[start:end] {
			if nv := relabel[v]; nv >= 0 {
				edges = append(edges, Edge{From: uint32(relabel[u]), To: uint32(nv)})
			}
		}
	}

	out := Build(uint32(len(nodes)), edges)
	if g.HasCoordinates() {
		out.NodeLat = make([]float64, out.NumNodes)
		out.NodeLon = make([]float64, out.NumNodes)
		for i, v := range nodes {
			out.NodeLat[i] = g.NodeLat[v]
			out.NodeLon[i] = g.NodeLon[v]
		}
	}
	return out
}
