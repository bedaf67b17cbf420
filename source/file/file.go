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

// Package file serves read sets from JSON files in a local directory.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/googlegenomics/readselect/source"
)

// Source serves read sets from files named <id>.json under a directory.
type Source struct {
	directory string
}

// NewSource returns a source backed by the given directory.
func NewSource(directory string) *Source {
	return &Source{directory}
}

// Open opens the read set stored under id.  Identifiers containing path
// separators are rejected to keep reads inside the configured directory.
func (s *Source) Open(_ context.Context, id string) (io.ReadCloser, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id != filepath.Base(id) {
		return nil, fmt.Errorf("invalid read set id %q", id)
	}

	f, err := os.Open(filepath.Join(s.directory, id+".json"))
	if os.IsNotExist(err) {
		return nil, source.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("opening read set: %v", err)
	}
	return f, nil
}
