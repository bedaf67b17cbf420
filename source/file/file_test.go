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

package file

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/googlegenomics/readselect/source"
)

func TestSource_Open(t *testing.T) {
	directory, err := ioutil.TempDir("", "readselect")
	if err != nil {
		t.Fatalf("Failed to create temporary directory: %v", err)
	}
	defer os.RemoveAll(directory)

	const content = `[]`
	if err := ioutil.WriteFile(filepath.Join(directory, "sample.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	s := NewSource(directory)

	data, err := s.Open(context.Background(), "sample")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer data.Close()

	got, err := ioutil.ReadAll(data)
	if err != nil {
		t.Fatalf("Failed to read data: %v", err)
	}
	if string(got) != content {
		t.Errorf("Wrong content: got %q, want %q", got, content)
	}
}

func TestSource_Open_Missing(t *testing.T) {
	s := NewSource(os.TempDir())
	if _, err := s.Open(context.Background(), "does-not-exist-readselect"); err != source.ErrNotExist {
		t.Errorf("Wrong error: got %v, want %v", err, source.ErrNotExist)
	}
}

func TestSource_Open_InvalidID(t *testing.T) {
	s := NewSource(os.TempDir())
	for _, id := range []string{"", "../secret", "a/b", `a\b`} {
		if _, err := s.Open(context.Background(), id); err == nil {
			t.Errorf("Unexpected success for id %q", id)
		}
	}
}
