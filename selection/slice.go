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
	"github.com/googlegenomics/readselect/internal/coverage"
	"github.com/googlegenomics/readselect/internal/graph"
	"github.com/googlegenomics/readselect/internal/priorityqueue"
	"github.com/googlegenomics/readselect/readset"
)

// indexSpan returns the half open position index range occupied by the
// read's full extent.
func indexSpan(read *readset.Read, posIndex map[int]int) (int, int) {
	begin := posIndex[read.Variants[0].Position]
	end := posIndex[read.Variants[len(read.Variants)-1].Position] + 1
	return begin, end
}

// selectSlice drains pq, accepting one more layer of coverage: each
// accepted read covers at least one position not yet covered within this
// slice, and no acceptance pushes any position over maxCoverage.  Reads
// whose span already sits at the cap are returned as violating and must not
// be reconsidered.  Reads that cover nothing new are silently dropped from
// the slice and stay undecided.
func selectSlice(pq *priorityqueue.Queue, cov *coverage.Monitor, maxCoverage int, rs *readset.ReadSet, posIndex map[int]int, readsAt map[int][]int) (accepted, violating map[int]bool) {
	covered := make(map[int]bool)
	accepted = make(map[int]bool)
	violating = make(map[int]bool)

	for {
		item, _, ok := pq.PopMax()
		if !ok {
			return accepted, violating
		}
		read := rs.Get(item)

		fresh := make(map[int]bool)
		for _, v := range read.Variants {
			if !covered[v.Position] {
				fresh[v.Position] = true
			}
		}

		begin, end := indexSpan(read, posIndex)
		if cov.MaxInRange(begin, end) >= maxCoverage {
			violating[item] = true
			continue
		}
		if len(fresh) == 0 {
			continue
		}

		cov.AddRead(begin, end)
		accepted[item] = true

		// The score of every still queued read sharing a freshly
		// covered position drops by its overlap with those positions.
		update := make(map[int]bool)
		for position := range fresh {
			covered[position] = true
			for _, other := range readsAt[posIndex[position]] {
				if !accepted[other] {
					update[other] = true
				}
			}
		}
		for other := range update {
			score, ok := pq.ScoreOf(other)
			if !ok {
				continue
			}
			pq.DecreaseScore(other, discount(rs.Get(other), score, fresh))
		}
	}
}

// bridgePass drains pq, accepting reads whose covered positions touch two
// or more distinct phase components.  Accepted reads reserve their coverage
// span and merge the components they touch.  Reads at the coverage cap are
// removed for good; reads touching a single component stay undecided.
func bridgePass(pq *priorityqueue.Queue, cov *coverage.Monitor, maxCoverage int, rs *readset.ReadSet, posIndex map[int]int, finder *graph.ComponentFinder) (accepted, violating map[int]bool) {
	accepted = make(map[int]bool)
	violating = make(map[int]bool)

	for {
		item, _, ok := pq.PopMax()
		if !ok {
			return accepted, violating
		}
		read := rs.Get(item)

		begin, end := indexSpan(read, posIndex)
		if cov.MaxInRange(begin, end) >= maxCoverage {
			violating[item] = true
			continue
		}

		components := make(map[int]bool)
		for _, v := range read.Variants {
			components[finder.Find(v.Position)] = true
		}
		if len(components) < 2 {
			continue
		}

		accepted[item] = true
		cov.AddRead(begin, end)
		mergeRead(finder, read)
	}
}
