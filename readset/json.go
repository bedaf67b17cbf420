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

package readset

import (
	"encoding/json"
	"fmt"
	"io"
)

// ReadJSON decodes a read set from its JSON interchange form, a single array
// of read objects.  The decoded set is validated before being returned.
func ReadJSON(r io.Reader) (*ReadSet, error) {
	var reads []*Read
	if err := json.NewDecoder(r).Decode(&reads); err != nil {
		return nil, fmt.Errorf("decoding reads: %v", err)
	}

	rs := &ReadSet{reads: reads}
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("validating reads: %v", err)
	}
	return rs, nil
}

// WriteJSON encodes the read set in its JSON interchange form.
func (rs *ReadSet) WriteJSON(w io.Writer) error {
	reads := rs.reads
	if reads == nil {
		reads = []*Read{}
	}
	if err := json.NewEncoder(w).Encode(reads); err != nil {
		return fmt.Errorf("encoding reads: %v", err)
	}
	return nil
}
