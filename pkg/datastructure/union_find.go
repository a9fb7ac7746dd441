package datastructure

import (
	"golang.org/x/exp/constraints"
)

// UnionFind disjoint-set with union by size and path halving. Used to label
// weakly-connected regions of the road network (edge direction ignored).
type UnionFind[T constraints.Integer] struct {
	parent []T
	size   []int
}

func NewUnionFind[T constraints.Integer](n int) *UnionFind[T] {
	parent := make([]T, n)
	size := make([]int, n)
	for i := 0; i < n; i++ {
		parent[i] = T(i)
		size[i] = 1
	}
	return &UnionFind[T]{parent: parent, size: size}
}

func (uf *UnionFind[T]) Find(x T) T {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

func (uf *UnionFind[T]) Union(a, b T) {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return
	}
	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
}

// SizeOf returns the size of the set containing x.
func (uf *UnionFind[T]) SizeOf(x T) int {
	return uf.size[uf.Find(x)]
}

// LargestRoot returns the representative of the largest set. Ties resolve to
// the lowest representative index so reduction stays deterministic.
func (uf *UnionFind[T]) LargestRoot() T {
	best := T(0)
	bestSize := 0
	for i := range uf.parent {
		root := uf.Find(T(i))
		if root == T(i) && uf.size[root] > bestSize {
			best = root
			bestSize = uf.size[root]
		}
	}
	return best
}
