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

// Package gcs serves read sets stored as JSON objects in a Google Cloud
// Storage bucket.
package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/googlegenomics/readselect/source"
)

// Source serves read sets from objects named <id>.json in a bucket.
type Source struct {
	bucket string
	client *storage.Client
}

// NewSource returns a source that reads from bucket using the provided
// client options.  With no options the application default credentials are
// used.
func NewSource(ctx context.Context, bucket string, opts ...option.ClientOption) (*Source, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %v", err)
	}
	return &Source{bucket, client}, nil
}

// NewPublicSource returns a source that does not use any form of client
// authorization.  It can only read publicly-readable objects.
func NewPublicSource(ctx context.Context, bucket string) (*Source, error) {
	return NewSource(ctx, bucket, option.WithHTTPClient(http.DefaultClient))
}

// NewSourceFromBearerToken returns a source that authorizes reads from
// bucket with the OAuth2 bearer token in authorization, as supplied in an
// Authorization header.
func NewSourceFromBearerToken(ctx context.Context, bucket, authorization string) (*Source, error) {
	fields := strings.Split(authorization, " ")
	if len(fields) != 2 || fields[0] != "Bearer" {
		return nil, fmt.Errorf("missing or invalid bearer token")
	}

	token := oauth2.Token{
		TokenType:   fields[0],
		AccessToken: fields[1],
	}
	return NewSource(ctx, bucket, option.WithTokenSource(oauth2.StaticTokenSource(&token)))
}

// Open opens the read set stored under id.
func (s *Source) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(id + ".json").NewReader(ctx)
	if err == storage.ErrObjectNotExist {
		return nil, source.ErrNotExist
	}
	if err, ok := err.(*googleapi.Error); ok && err.Code == http.StatusNotFound {
		return nil, source.ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("opening object: %v", err)
	}
	return r, nil
}
