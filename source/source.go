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

// Package source abstracts where stored read sets are loaded from.
package source

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Open when no read set is stored under the
// requested identifier.
var ErrNotExist = errors.New("read set does not exist")

// Source provides access to stored read sets by identifier.
type Source interface {
	// Open returns the JSON encoded read set stored under id.  It
	// returns ErrNotExist if id names nothing.
	Open(ctx context.Context, id string) (io.ReadCloser, error)
}
