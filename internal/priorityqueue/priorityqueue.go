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

// Package priorityqueue provides a mutable max-priority queue over read
// indices.  Unlike container/heap, the queue keeps an item to slot map so
// that the score of any queued item can be looked up and decreased in place
// in O(log n).
package priorityqueue

// Score is the ranking tuple of a queued read.  Fields are compared
// lexicographically in declaration order, higher values winning.
type Score struct {
	// Net is the number of positions the read covers minus its gap
	// penalty.
	Net int
	// TieBreak starts equal to Net and is only ever decreased as
	// positions covered by the read become redundant.
	TieBreak int
	// MinQuality is the lowest per-position confidence in the read.
	MinQuality int
}

// Less reports whether s orders strictly below t.
func (s Score) Less(t Score) bool {
	if s.Net != t.Net {
		return s.Net < t.Net
	}
	if s.TieBreak != t.TieBreak {
		return s.TieBreak < t.TieBreak
	}
	return s.MinQuality < t.MinQuality
}

type entry struct {
	item  int
	score Score
}

// Queue is a binary max-heap of (item, score) pairs.  Ties between equal
// scores are broken by the smaller item, which makes the pop order a total
// order and selection output reproducible.
type Queue struct {
	entries []entry
	slot    map[int]int
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{slot: make(map[int]int)}
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.entries)
}

// Empty reports whether the queue holds no items.
func (q *Queue) Empty() bool {
	return len(q.entries) == 0
}

// Push inserts item with the given score.  The item must not already be
// present in the queue.
func (q *Queue) Push(item int, score Score) {
	q.entries = append(q.entries, entry{item, score})
	q.slot[item] = len(q.entries) - 1
	q.siftUp(len(q.entries) - 1)
}

// PopMax removes and returns the item with the greatest score.  The second
// return value is false if the queue is empty.
func (q *Queue) PopMax() (int, Score, bool) {
	if len(q.entries) == 0 {
		return 0, Score{}, false
	}
	top := q.entries[0]
	last := len(q.entries) - 1
	q.swap(0, last)
	q.entries = q.entries[:last]
	delete(q.slot, top.item)
	if last > 0 {
		q.siftDown(0)
	}
	return top.item, top.score, true
}

// ScoreOf returns the current score of item.  The second return value is
// false if the item is not in the queue.
func (q *Queue) ScoreOf(item int) (Score, bool) {
	i, ok := q.slot[item]
	if !ok {
		return Score{}, false
	}
	return q.entries[i].score, true
}

// DecreaseScore lowers the score of a queued item in place.  Calls with an
// item that is no longer queued are ignored.
func (q *Queue) DecreaseScore(item int, score Score) {
	i, ok := q.slot[item]
	if !ok {
		return
	}
	q.entries[i].score = score
	q.siftDown(i)
}

// before reports whether the entry at i must order above the entry at j.
func (q *Queue) before(i, j int) bool {
	a, b := q.entries[i], q.entries[j]
	if a.score != b.score {
		return b.score.Less(a.score)
	}
	return a.item < b.item
}

func (q *Queue) swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	q.slot[q.entries[i].item] = i
	q.slot[q.entries[j].item] = j
}

func (q *Queue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !q.before(i, parent) {
			return
		}
		q.swap(i, parent)
		i = parent
	}
}

func (q *Queue) siftDown(i int) {
	n := len(q.entries)
	for {
		first := i
		if left := 2*i + 1; left < n && q.before(left, first) {
			first = left
		}
		if right := 2*i + 2; right < n && q.before(right, first) {
			first = right
		}
		if first == i {
			return
		}
		q.swap(i, first)
		i = first
	}
}
