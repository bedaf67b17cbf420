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

// Package readset defines the in-memory representation of sequencing reads
// restricted to the variant positions they cover.
package readset

import (
	"fmt"
	"sort"
	"strings"
)

// Variant is a single observation made by a read at a genomic position.
type Variant struct {
	// Position is the genomic coordinate of the variant.
	Position int `json:"position"`
	// Allele is the observed allele at the position.
	Allele int `json:"allele"`
	// Quality is the confidence of the observation.
	Quality int `json:"quality"`
}

// Read is an ordered sequence of variant observations made by one sequencing
// fragment.  Variants must be ordered by strictly increasing position.
type Read struct {
	// SourceID identifies the data source the read was obtained from.
	SourceID int `json:"sourceId"`
	// MapQuality holds one or more mapping confidence values for the read.
	MapQuality []int `json:"mapQuality,omitempty"`
	// Variants are the positions the read covers, in increasing order.
	Variants []Variant `json:"variants"`
}

// MinQuality returns the lowest per-variant quality in the read, or 0 if the
// read covers no variants.
func (r *Read) MinQuality() int {
	if len(r.Variants) == 0 {
		return 0
	}
	min := r.Variants[0].Quality
	for _, v := range r.Variants[1:] {
		if v.Quality < min {
			min = v.Quality
		}
	}
	return min
}

// Span returns the first and last genomic position covered by the read.
func (r *Read) Span() (int, int) {
	if len(r.Variants) == 0 {
		return 0, 0
	}
	return r.Variants[0].Position, r.Variants[len(r.Variants)-1].Position
}

// ReadSet is an indexed, order-preserving collection of reads.  Read indices
// are stable for the lifetime of the set.
type ReadSet struct {
	reads []*Read
}

// New returns an empty read set.
func New() *ReadSet {
	return &ReadSet{}
}

// Add appends read to the set.
func (rs *ReadSet) Add(read *Read) {
	rs.reads = append(rs.reads, read)
}

// Len returns the number of reads in the set.
func (rs *ReadSet) Len() int {
	return len(rs.reads)
}

// Get returns the read with the given index.
func (rs *ReadSet) Get(i int) *Read {
	return rs.reads[i]
}

// Positions returns the sorted distinct genomic positions covered by any
// read in the set.
func (rs *ReadSet) Positions() []int {
	seen := make(map[int]bool)
	for _, read := range rs.reads {
		for _, v := range read.Variants {
			seen[v.Position] = true
		}
	}
	positions := make([]int, 0, len(seen))
	for position := range seen {
		positions = append(positions, position)
	}
	sort.Ints(positions)
	return positions
}

// Subset returns a new read set containing the reads with the given indices,
// in the order provided.  It is used to build the reduced input handed to a
// downstream phasing engine.
func (rs *ReadSet) Subset(indices []int) *ReadSet {
	subset := &ReadSet{reads: make([]*Read, 0, len(indices))}
	for _, i := range indices {
		subset.reads = append(subset.reads, rs.reads[i])
	}
	return subset
}

// Validate checks that every read's variants are ordered by strictly
// increasing position.  A violation is a caller contract error and makes the
// whole set unusable.
func (rs *ReadSet) Validate() error {
	for i, read := range rs.reads {
		for j := 1; j < len(read.Variants); j++ {
			if read.Variants[j].Position <= read.Variants[j-1].Position {
				return fmt.Errorf("read %d: position %d at variant %d does not increase over %d",
					i, read.Variants[j].Position, j, read.Variants[j-1].Position)
			}
		}
	}
	return nil
}

// FormatSourceStats returns a human readable summary of the source IDs of
// the reads with the given indices, in the form "source:count, ...".  It
// returns "n/a" when indices is empty.
func FormatSourceStats(rs *ReadSet, indices []int) string {
	if len(indices) == 0 {
		return "n/a"
	}
	counts := make(map[int]int)
	for _, i := range indices {
		counts[rs.reads[i].SourceID]++
	}
	sources := make([]int, 0, len(counts))
	for source := range counts {
		sources = append(sources, source)
	}
	sort.Ints(sources)

	parts := make([]string, 0, len(sources))
	for _, source := range sources {
		parts = append(parts, fmt.Sprintf("%d:%d", source, counts[source]))
	}
	return strings.Join(parts, ", ")
}
