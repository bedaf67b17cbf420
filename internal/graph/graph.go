// Copyright 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graph implements connectivity tracking over variant positions.
package graph

// ComponentFinder is a union-find structure over genomic positions.  Two
// positions belong to the same component once a merge has transitively
// linked them.  Find uses path compression and Merge unions by rank, so
// both run in near constant amortized time.
type ComponentFinder struct {
	parent map[int]int
	rank   map[int]int
}

// NewComponentFinder returns a finder in which every one of the given
// positions forms its own component.
func NewComponentFinder(positions []int) *ComponentFinder {
	f := &ComponentFinder{
		parent: make(map[int]int, len(positions)),
		rank:   make(map[int]int, len(positions)),
	}
	for _, p := range positions {
		f.parent[p] = p
	}
	return f
}

// Find returns the representative position of a's component.  An unknown
// position is registered as its own singleton component.
func (f *ComponentFinder) Find(a int) int {
	root, ok := f.parent[a]
	if !ok {
		f.parent[a] = a
		return a
	}
	if root != a {
		root = f.Find(root)
		f.parent[a] = root
	}
	return root
}

// Merge joins the components containing a and b.
func (f *ComponentFinder) Merge(a, b int) {
	ra, rb := f.Find(a), f.Find(b)
	if ra == rb {
		return
	}
	if f.rank[ra] < f.rank[rb] {
		ra, rb = rb, ra
	}
	f.parent[rb] = ra
	if f.rank[ra] == f.rank[rb] {
		f.rank[ra]++
	}
}
