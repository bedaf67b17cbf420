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

package coverage

import "testing"

func TestMonitor(t *testing.T) {
	m := NewMonitor(6)

	if got := m.MaxInRange(0, 6); got != 0 {
		t.Errorf("Wrong initial maximum: got %d, want 0", got)
	}

	m.AddRead(1, 4)
	m.AddRead(3, 6)

	testCases := []struct {
		name       string
		begin, end int
		want       int
	}{
		{"untouched prefix", 0, 1, 0},
		{"single layer", 1, 3, 1},
		{"overlap position", 3, 4, 2},
		{"whole range", 0, 6, 2},
		{"empty range", 2, 2, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.MaxInRange(tc.begin, tc.end); got != tc.want {
				t.Errorf("MaxInRange(%d, %d): got %d, want %d", tc.begin, tc.end, got, tc.want)
			}
		})
	}
}
