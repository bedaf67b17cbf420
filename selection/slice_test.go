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

package selection

import (
	"testing"

	"github.com/googlegenomics/readselect/internal/coverage"
	"github.com/googlegenomics/readselect/internal/graph"
)

// A slice never accepts a read that covers no position uncovered within the
// slice, even when capacity would allow it.
func TestSelectSlice_SkipsRedundantReads(t *testing.T) {
	rs := newReadSet(
		read(0, 9, 10, 20, 30),
		read(0, 1, 10, 20), // subsumed by the first read
	)
	positions, posIndex, readsAt := buildIndexes(rs)
	cov := coverage.NewMonitor(len(positions))

	undecided := map[int]bool{0: true, 1: true}
	accepted, violating := selectSlice(buildQueue(rs, undecided, posIndex), cov, 5, rs, posIndex, readsAt)

	if !accepted[0] || len(accepted) != 1 {
		t.Errorf("Wrong accepted set: got %v, want {0}", accepted)
	}
	if len(violating) != 0 {
		t.Errorf("Wrong violating set: got %v, want none", violating)
	}
}

func TestSelectSlice_ChecksCoverageBeforeNovelty(t *testing.T) {
	rs := newReadSet(
		read(0, 9, 10, 20),
		read(0, 1, 20, 30), // covers the new position 30, but the span is full
	)
	positions, posIndex, readsAt := buildIndexes(rs)
	cov := coverage.NewMonitor(len(positions))

	undecided := map[int]bool{0: true, 1: true}
	accepted, violating := selectSlice(buildQueue(rs, undecided, posIndex), cov, 1, rs, posIndex, readsAt)

	if !accepted[0] || len(accepted) != 1 {
		t.Errorf("Wrong accepted set: got %v, want {0}", accepted)
	}
	if !violating[1] || len(violating) != 1 {
		t.Errorf("Wrong violating set: got %v, want {1}", violating)
	}
}

func TestBridgePass(t *testing.T) {
	rs := newReadSet(
		read(0, 9, 100, 200), // 0: inside the left block, bridges nothing
		read(0, 5, 200, 300), // 1: connects the two blocks
	)
	positions, posIndex, _ := buildIndexes(rs)
	cov := coverage.NewMonitor(len(positions))

	finder := graph.NewComponentFinder(positions)
	finder.Merge(100, 200)
	finder.Merge(300, 400)

	undecided := map[int]bool{0: true, 1: true}
	accepted, violating := bridgePass(buildQueue(rs, undecided, posIndex), cov, 2, rs, posIndex, finder)

	if !accepted[1] || len(accepted) != 1 {
		t.Errorf("Wrong accepted set: got %v, want {1}", accepted)
	}
	if len(violating) != 0 {
		t.Errorf("Wrong violating set: got %v, want none", violating)
	}
	if finder.Find(100) != finder.Find(300) {
		t.Error("Blocks not merged by the bridging read")
	}
}

func TestBridgePass_RemovesCapViolators(t *testing.T) {
	rs := newReadSet(
		read(0, 5, 200, 300),
	)
	positions, posIndex, _ := buildIndexes(rs)
	cov := coverage.NewMonitor(len(positions))
	cov.AddRead(0, len(positions))

	finder := graph.NewComponentFinder(positions)

	undecided := map[int]bool{0: true}
	accepted, violating := bridgePass(buildQueue(rs, undecided, posIndex), cov, 1, rs, posIndex, finder)

	if len(accepted) != 0 {
		t.Errorf("Wrong accepted set: got %v, want none", accepted)
	}
	if !violating[0] {
		t.Errorf("Wrong violating set: got %v, want {0}", violating)
	}
}
