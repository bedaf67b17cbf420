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

// Package selection reduces a set of overlapping sequencing reads to a
// subset that keeps the coverage of every variant position below a fixed
// cap while covering as many distinct positions as possible and retaining
// reads that bridge otherwise disconnected phased regions.  The reduced set
// is the input to a downstream phasing engine.
package selection

import (
	"errors"
	"fmt"
	"sort"

	"github.com/googlegenomics/readselect/internal/coverage"
	"github.com/googlegenomics/readselect/internal/graph"
	"github.com/googlegenomics/readselect/readset"
)

var errNilReadSet = errors.New("nil read set")

// Logger receives progress lines while a selection run is in flight.  Both
// the standard library logger and logrus satisfy it.
type Logger interface {
	Infof(format string, args ...interface{})
}

// Stats holds aggregate counters for one selection run.
type Stats struct {
	// Uninformative is the number of reads excluded up front because
	// they cover fewer than two variant positions.
	Uninformative int
}

// Result is the outcome of one selection run.
type Result struct {
	// Selected holds the indices of the retained reads in increasing
	// order.
	Selected []int
	// Components maps every observed position to the representative
	// position of the phase component it ended up in.
	Components map[int]int
	// Stats are the aggregate counters of the run.
	Stats Stats
}

// Selector configures selection runs.  The zero value is not usable;
// MaxCoverage must be at least 1.
type Selector struct {
	// MaxCoverage is the largest coverage count allowed at any position.
	MaxCoverage int
	// Bridging enables the pass that retains reads connecting two or
	// more phase components.
	Bridging bool
	// Log, if set, receives per-iteration progress lines.
	Log Logger
}

// Select runs read selection with the given parameters.  It is shorthand
// for configuring a Selector and calling its Select method.
func Select(rs *readset.ReadSet, maxCoverage int, bridging bool) (*Result, error) {
	return (&Selector{MaxCoverage: maxCoverage, Bridging: bridging}).Select(rs)
}

// Select picks reads from rs under the selector's coverage cap.  The input
// set is not modified; rs.Subset(result.Selected) builds the reduced set
// for the downstream engine.
func (s *Selector) Select(rs *readset.ReadSet) (*Result, error) {
	if rs == nil {
		return nil, errNilReadSet
	}
	if s.MaxCoverage < 1 {
		return nil, fmt.Errorf("max coverage must be at least 1, got %d", s.MaxCoverage)
	}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("validating read set: %v", err)
	}

	positions, posIndex, readsAt := buildIndexes(rs)
	s.logf("Running read selection for %d reads covering %d variants (bridging %v)",
		rs.Len(), len(positions), s.Bridging)

	cov := coverage.NewMonitor(len(positions))
	finder := graph.NewComponentFinder(positions)

	// Reads covering fewer than two positions can neither connect
	// anything nor exceed any coverage target on their own.
	undecided := make(map[int]bool)
	for i := 0; i < rs.Len(); i++ {
		if len(rs.Get(i).Variants) >= 2 {
			undecided[i] = true
		}
	}
	uninformative := rs.Len() - len(undecided)

	selected := make(map[int]bool)
	for iteration := 1; len(undecided) > 0; iteration++ {
		before := len(undecided)

		pq := buildQueue(rs, undecided, posIndex)
		accepted, violating := selectSlice(pq, cov, s.MaxCoverage, rs, posIndex, readsAt)
		for i := range accepted {
			selected[i] = true
			delete(undecided, i)
		}
		for i := range violating {
			delete(undecided, i)
		}

		for i := range accepted {
			mergeRead(finder, rs.Get(i))
		}

		var bridged map[int]bool
		if s.Bridging {
			pq = buildQueue(rs, undecided, posIndex)
			var removed map[int]bool
			bridged, removed = bridgePass(pq, cov, s.MaxCoverage, rs, posIndex, finder)
			for i := range bridged {
				selected[i] = true
				delete(undecided, i)
			}
			for i := range removed {
				delete(undecided, i)
			}
		}

		s.logf("... iteration %d: selected %d reads (source: %s) to cover positions and %d reads (source: %s) for bridging; %d reads left undecided",
			iteration,
			len(accepted), readset.FormatSourceStats(rs, sortedKeys(accepted)),
			len(bridged), readset.FormatSourceStats(rs, sortedKeys(bridged)),
			len(undecided))

		// A full iteration that neither accepted nor permanently
		// rejected a read cannot make progress on another pass: the
		// remaining reads cover nothing new and bridge nothing.
		if len(undecided) == before {
			s.logf("... %d reads cover no new positions and bridge no components; dropping them", len(undecided))
			break
		}
	}

	components := make(map[int]int, len(positions))
	for _, position := range positions {
		components[position] = finder.Find(position)
	}

	return &Result{
		Selected:   sortedKeys(selected),
		Components: components,
		Stats:      Stats{Uninformative: uninformative},
	}, nil
}

// mergeRead joins the components of every position the read covers.
func mergeRead(finder *graph.ComponentFinder, read *readset.Read) {
	first := read.Variants[0].Position
	for _, v := range read.Variants[1:] {
		finder.Merge(first, v.Position)
	}
}

func (s *Selector) logf(format string, args ...interface{}) {
	if s.Log != nil {
		s.Log.Infof(format, args...)
	}
}

// buildIndexes returns the sorted distinct positions of rs, the mapping
// from position to dense index, and the adjacency from position index to
// the indices of the reads touching it.
func buildIndexes(rs *readset.ReadSet) ([]int, map[int]int, map[int][]int) {
	positions := rs.Positions()
	posIndex := make(map[int]int, len(positions))
	for i, position := range positions {
		posIndex[position] = i
	}

	readsAt := make(map[int][]int)
	for i := 0; i < rs.Len(); i++ {
		for _, v := range rs.Get(i).Variants {
			readsAt[posIndex[v.Position]] = append(readsAt[posIndex[v.Position]], i)
		}
	}
	return positions, posIndex, readsAt
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
