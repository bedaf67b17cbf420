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

// Package coverage tracks how many selected reads span each variant
// position.  Positions are identified by their dense index in the sorted
// position universe of one selection run.
package coverage

// Monitor holds one counter per position index.  Counters only ever
// increase within a run.
type Monitor struct {
	counts []int
}

// NewMonitor returns a monitor over n position indices, all with zero
// coverage.
func NewMonitor(n int) *Monitor {
	return &Monitor{counts: make([]int, n)}
}

// MaxInRange returns the maximum coverage count over the half open index
// range [begin, end).
func (m *Monitor) MaxInRange(begin, end int) int {
	max := 0
	for i := begin; i < end; i++ {
		if m.counts[i] > max {
			max = m.counts[i]
		}
	}
	return max
}

// AddRead increments the coverage count of every position index in the half
// open range [begin, end).  The range is the read's full span: a read
// occupies capacity over its whole physical extent, including positions it
// does not directly cover.
func (m *Monitor) AddRead(begin, end int) {
	for i := begin; i < end; i++ {
		m.counts[i]++
	}
}
