// Package unionfind implements a disjoint-set structure over arbitrary
// existential variable ids, used by dqbf.DetectEquivalentExistentials to
// group existentials proven equivalent.
//
// Adapted from the connected-components utility in the teacher's own
// marco/graph package: that one walks a fixed adjacency list built up
// front, which doesn't fit an equivalence relation discovered one pair at
// a time as the detector runs; this is a proper union-by-rank,
// path-compressed disjoint set instead.
package unionfind

// UnionFind tracks a partition of a set of ints under repeated Union
// calls.
type UnionFind struct {
	parent map[int]int
	rank   map[int]int
}

// New returns an empty UnionFind. Elements are added lazily on first use.
func New() *UnionFind {
	return &UnionFind{
		parent: make(map[int]int),
		rank:   make(map[int]int),
	}
}

func (u *UnionFind) ensure(x int) {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
		u.rank[x] = 0
	}
}

// Find returns the representative of x's set, path-compressing along the
// way. x is added as a singleton set if it hasn't been seen before.
func (u *UnionFind) Find(x int) int {
	u.ensure(x)
	if u.parent[x] != x {
		u.parent[x] = u.Find(u.parent[x])
	}
	return u.parent[x]
}

// Union merges the sets containing x and y.
func (u *UnionFind) Union(x, y int) {
	rx, ry := u.Find(x), u.Find(y)
	if rx == ry {
		return
	}
	if u.rank[rx] < u.rank[ry] {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
	if u.rank[rx] == u.rank[ry] {
		u.rank[rx]++
	}
}

// SameSet reports whether x and y are currently in the same set.
func (u *UnionFind) SameSet(x, y int) bool {
	return u.Find(x) == u.Find(y)
}

// Classes returns the current partition as a map from representative to
// the members of its class, in no particular order.
func (u *UnionFind) Classes() map[int][]int {
	classes := make(map[int][]int)
	for x := range u.parent {
		r := u.Find(x)
		classes[r] = append(classes[r], x)
	}
	return classes
}
