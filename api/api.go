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

// Package api implements the read selection HTTP API.
//
// Read sets are either posted inline or loaded by identifier from a
// configured source.  Responses carry the selected read indices, the final
// phase component map and the selection statistics.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/googlegenomics/readselect/internal/analytics"
	"github.com/googlegenomics/readselect/readset"
	"github.com/googlegenomics/readselect/selection"
	"github.com/googlegenomics/readselect/source"
)

const (
	selectPath     = "/v1/select"
	selectByIDPath = "/v1/select/:id"
)

// SelectRequest is the body of a POST select call.
type SelectRequest struct {
	// MaxCoverage caps the coverage at any position.  Zero selects the
	// server default.
	MaxCoverage int `json:"maxCoverage"`
	// Bridging enables the pass that retains component bridging reads.
	// It defaults to true when absent.
	Bridging *bool `json:"bridging"`
	// Reads is the read set to select from.
	Reads []*readset.Read `json:"reads" binding:"required"`
}

// SelectResponse describes the outcome of a selection run.
type SelectResponse struct {
	// Selected holds the retained read indices in increasing order.
	Selected []int `json:"selected"`
	// Components maps each observed position to the representative of
	// its phase component.
	Components map[int]int `json:"components"`
	// Stats carries the aggregate selection counters.
	Stats SelectStats `json:"stats"`
}

// SelectStats mirrors selection.Stats on the wire.
type SelectStats struct {
	ExcludedUninformative int `json:"excludedUninformative"`
}

// Server provides the selection API.  Must be created with NewServer.
type Server struct {
	source             source.Source
	defaultMaxCoverage int
}

// NewServer returns a Server that resolves read set identifiers through src
// and falls back to defaultMaxCoverage when a request does not set its own
// cap.  src may be nil, in which case selection by identifier is disabled.
func NewServer(src source.Source, defaultMaxCoverage int) *Server {
	return &Server{src, defaultMaxCoverage}
}

// Export registers the selection API endpoints with router.
func (server *Server) Export(router *gin.Engine) {
	router.POST(selectPath, server.handleSelect)
	router.GET(selectByIDPath, server.handleSelectByID)
}

func (server *Server) handleSelect(c *gin.Context) {
	track := analytics.TrackerFromContext(c.Request.Context())
	track(analytics.Event("Select", "Select Request Received", "", nil))

	var request SelectRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeError(c, newInvalidInputError("parsing request body", err))
		return
	}

	rs := readset.New()
	for _, read := range request.Reads {
		rs.Add(read)
	}

	server.respond(c, rs, request.MaxCoverage, request.Bridging == nil || *request.Bridging)
}

func (server *Server) handleSelectByID(c *gin.Context) {
	track := analytics.TrackerFromContext(c.Request.Context())
	track(analytics.Event("Select", "Select Request Received", "", nil))

	if server.source == nil {
		writeError(c, newInvalidInputError("resolving read set", fmt.Errorf("no read set source configured")))
		return
	}

	maxCoverage, bridging, err := parseSelectQuery(c)
	if err != nil {
		writeError(c, newInvalidInputError("parsing query", err))
		return
	}

	data, err := server.source.Open(c.Request.Context(), c.Param("id"))
	if err == source.ErrNotExist {
		writeError(c, newNotFoundError("opening read set", err))
		return
	}
	if err != nil {
		writeError(c, newInvalidInputError("opening read set", err))
		return
	}
	defer data.Close()

	rs, err := readset.ReadJSON(data)
	if err != nil {
		writeError(c, newInvalidInputError("reading read set", err))
		return
	}

	server.respond(c, rs, maxCoverage, bridging)
}

func (server *Server) respond(c *gin.Context, rs *readset.ReadSet, maxCoverage int, bridging bool) {
	track := analytics.TrackerFromContext(c.Request.Context())

	if maxCoverage == 0 {
		maxCoverage = server.defaultMaxCoverage
	}

	result, err := selection.Select(rs, maxCoverage, bridging)
	if err != nil {
		writeError(c, newInvalidInputError("selecting reads", err))
		return
	}

	selected := result.Selected
	if selected == nil {
		selected = []int{}
	}
	c.JSON(http.StatusOK, SelectResponse{
		Selected:   selected,
		Components: result.Components,
		Stats:      SelectStats{ExcludedUninformative: result.Stats.Uninformative},
	})

	count := int64(len(result.Selected))
	track(analytics.Event("Select", "Select Response Read Count", "", &count))
	track(analytics.Event("Select", "Select Response Sent", "", nil))
}

func parseSelectQuery(c *gin.Context) (int, bool, error) {
	maxCoverage := 0
	if value := c.Query("maxCoverage"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, false, fmt.Errorf("parsing maxCoverage: %v", err)
		}
		maxCoverage = n
	}

	bridging := true
	if value := c.Query("bridging"); value != "" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return 0, false, fmt.Errorf("parsing bridging: %v", err)
		}
		bridging = b
	}
	return maxCoverage, bridging, nil
}

// apiError is used to capture errors that have a defined response status.
type apiError struct {
	name  string
	code  int
	cause error
}

func (err *apiError) Error() string {
	return fmt.Sprintf("%s (%d): %v", err.name, err.code, err.cause)
}

func newApiError(name string, code int, context string, err error) error {
	return &apiError{name, code, fmt.Errorf("%s: %v", context, err)}
}

func newInvalidInputError(context string, err error) error {
	return newApiError("InvalidInput", http.StatusBadRequest, context, err)
}

func newNotFoundError(context string, err error) error {
	return newApiError("NotFound", http.StatusNotFound, context, err)
}

// writeError writes a JSON object describing err.  Errors without a defined
// name and status are reported as internal server errors.
func writeError(c *gin.Context, err error) {
	if err, ok := err.(*apiError); ok {
		c.JSON(err.code, gin.H{
			"error":   err.name,
			"message": fmt.Sprintf("%s: %v", http.StatusText(err.code), err.cause),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "InternalError",
		"message": fmt.Sprintf("%s: %v", http.StatusText(http.StatusInternalServerError), err),
	})
}
