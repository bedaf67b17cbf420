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

package api

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/googlegenomics/readselect/source"
)

// fakeSource serves read set JSON from memory.
type fakeSource map[string]string

func (s fakeSource) Open(_ context.Context, id string) (io.ReadCloser, error) {
	data, ok := s[id]
	if !ok {
		return nil, source.ErrNotExist
	}
	return ioutil.NopCloser(strings.NewReader(data)), nil
}

const storedReads = `[
	{"sourceId": 0, "variants": [
		{"position": 10, "allele": 0, "quality": 5},
		{"position": 20, "allele": 1, "quality": 5}
	]},
	{"sourceId": 0, "variants": [
		{"position": 10, "allele": 0, "quality": 1},
		{"position": 30, "allele": 1, "quality": 1}
	]},
	{"sourceId": 1, "variants": [
		{"position": 20, "allele": 1, "quality": 9},
		{"position": 30, "allele": 1, "quality": 9}
	]}
]`

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewServer(fakeSource{"sample": storedReads}, 15).Export(router)
	return router
}

func TestSelectRoute(t *testing.T) {
	router := setupRouter()

	body := `{"maxCoverage": 2, "reads": ` + storedReads + `}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/select", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SelectResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, []int{0, 2}, response.Selected)
	assert.Equal(t, response.Components[10], response.Components[20])
	assert.Equal(t, response.Components[20], response.Components[30])
	assert.Equal(t, 0, response.Stats.ExcludedUninformative)
}

func TestSelectRoute_InvalidBody(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/select", strings.NewReader(`{"maxCoverage": 2}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectRoute_InvalidReads(t *testing.T) {
	router := setupRouter()

	body := `{"reads": [{"variants": [{"position": 20}, {"position": 10}]}]}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/select", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectByIDRoute(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/select/sample?maxCoverage=1&bridging=false", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response SelectResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, []int{2}, response.Selected)
}

func TestSelectByIDRoute_NotFound(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/select/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSelectByIDRoute_BadQuery(t *testing.T) {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/select/sample?maxCoverage=abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
