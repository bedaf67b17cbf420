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
	"github.com/googlegenomics/readselect/internal/priorityqueue"
	"github.com/googlegenomics/readselect/readset"
)

// computeScore ranks a read independently of any coverage state.  The net
// score is the number of indexed positions the read covers minus a gap
// penalty, the count of index slots inside the read's covered span that the
// read does not itself touch.  A read whose covered positions are
// contiguous in index space has no penalty.
func computeScore(read *readset.Read, posIndex map[int]int) priorityqueue.Score {
	var covered []int
	for _, v := range read.Variants {
		if index, ok := posIndex[v.Position]; ok {
			covered = append(covered, index)
		}
	}

	good := len(covered)
	span := covered[len(covered)-1] - covered[0] + 1
	net := good - (span - good)

	return priorityqueue.Score{Net: net, TieBreak: net, MinQuality: read.MinQuality()}
}

// discount lowers a read's score by the number of its positions contained
// in fresh, the set of positions that just became covered.
func discount(read *readset.Read, score priorityqueue.Score, fresh map[int]bool) priorityqueue.Score {
	overlap := 0
	for _, v := range read.Variants {
		if fresh[v.Position] {
			overlap++
		}
	}
	score.Net -= overlap
	score.TieBreak -= overlap
	return score
}

// buildQueue constructs a priority queue over the undecided reads, scored
// from scratch.
func buildQueue(rs *readset.ReadSet, undecided map[int]bool, posIndex map[int]int) *priorityqueue.Queue {
	pq := priorityqueue.New()
	for i := 0; i < rs.Len(); i++ {
		if undecided[i] {
			pq.Push(i, computeScore(rs.Get(i), posIndex))
		}
	}
	return pq
}
