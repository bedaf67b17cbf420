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

// This binary provides a read selection server backed by read sets stored
// in a local directory or a GCS bucket.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/googlegenomics/readselect/api"
	"github.com/googlegenomics/readselect/internal/analytics"
	"github.com/googlegenomics/readselect/source"
	"github.com/googlegenomics/readselect/source/file"
	"github.com/googlegenomics/readselect/source/gcs"
)

var (
	port        = flag.Int("port", 8080, "HTTP service port")
	maxCoverage = flag.Int("max_coverage", 15, "default per-position coverage cap")

	directory = flag.String("directory", "", "directory that contains read set JSON files")
	bucket    = flag.String("bucket", "", "GCS bucket that contains read set JSON objects")

	secure    = flag.Bool("secure", false, "serve in HTTPS-only mode")
	httpsCert = flag.String("https_cert", "", "HTTPS certificate file")
	httpsKey  = flag.String("https_key", "", "HTTPS key file")

	// Enable or disable anonymous usage tracking.
	//
	// If enabled, anonymous information about requests handled by the
	// server is logged to Google via Google Analytics.
	//
	// This information helps Google determine how well the software is
	// performing and where improvements should be made.  No user
	// identifying information is ever sent to Google.
	trackUsage = flag.Bool("track_usage", false, "anonymous usage tracking")
)

func main() {
	flag.Parse()

	if *secure && (*httpsCert == "" || *httpsKey == "") {
		log.Fatalf("You must specify both -https_cert and -https_key in secure mode.")
	}

	var src source.Source
	switch {
	case *directory != "" && *bucket != "":
		log.Fatalf("Specify only one of -directory and -bucket.")
	case *directory != "":
		src = file.NewSource(*directory)
	case *bucket != "":
		gcsSource, err := gcs.NewSource(context.Background(), *bucket)
		if err != nil {
			log.Fatalf("Failed to create GCS source: %v", err)
		}
		src = gcsSource
	}

	router := gin.Default()
	if *trackUsage {
		log.Printf("Enabling anonymous usage tracking")

		client := analytics.NewClient("UA-103022118-1", uuid.New().String())
		router.Use(analytics.Middleware(func(hits []analytics.Hit) {
			if err := client.Send(hits); err != nil {
				log.Printf("Failed to send %d hits to analytics: %v", len(hits), err)
			}
		}))
	}

	api.NewServer(src, *maxCoverage).Export(router)

	address := fmt.Sprintf(":%d", *port)
	if *secure {
		if err := http.ListenAndServeTLS(address, *httpsCert, *httpsKey, router); err != nil {
			log.Fatalf("HTTPS server returned an error: %v", err)
		}
	} else {
		if err := http.ListenAndServe(address, router); err != nil {
			log.Fatalf("HTTP server returned an error: %v", err)
		}
	}
}
