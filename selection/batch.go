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
	"github.com/exascience/pargo/parallel"

	"github.com/googlegenomics/readselect/readset"
)

// SelectBatch runs the selector over independent read sets in parallel.
// Sets typically hold the reads of separate chromosomes, genomic regions or
// pedigree families; they share no mutable state, so each worker owns a
// private index, queue, monitor and component finder.  Results are in input
// order and each one is identical to what a sequential Select would return.
// The first error encountered is returned.
func (s *Selector) SelectBatch(sets []*readset.ReadSet) ([]*Result, error) {
	results := make([]*Result, len(sets))
	errs := make([]error, len(sets))

	parallel.Range(0, len(sets), 0, func(low, high int) {
		for i := low; i < high; i++ {
			worker := &Selector{MaxCoverage: s.MaxCoverage, Bridging: s.Bridging, Log: s.Log}
			results[i], errs[i] = worker.Select(sets[i])
		}
	})

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// SelectBatch is shorthand for configuring a Selector and calling its
// SelectBatch method.
func SelectBatch(sets []*readset.ReadSet, maxCoverage int, bridging bool) ([]*Result, error) {
	return (&Selector{MaxCoverage: maxCoverage, Bridging: bridging}).SelectBatch(sets)
}
