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

// This binary runs read selection over read set JSON files.  Each input
// file is reduced to the selected reads; independent files are processed in
// parallel.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/googlegenomics/readselect/readset"
	"github.com/googlegenomics/readselect/selection"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "readselect-cli [flags] READSET...",
	Short: "Reduce read sets to a coverage-capped subset for phasing",
	Long: `readselect-cli selects, from each read set given as a JSON file, a subset of
reads that never exceeds the coverage cap at any variant position, covers as
many positions as possible and keeps reads that bridge separate phase
components.  The reduced read set is written next to the input with a
.selected.json suffix unless -o is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run,

	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.IntP("max-coverage", "c", 15, "per-position coverage cap")
	flags.Bool("bridging", true, "keep reads that bridge phase components")
	flags.StringP("output", "o", "", "output file (single input only)")
	flags.Bool("profile", false, "write a CPU profile to the working directory")
	flags.BoolP("verbose", "v", false, "log per-iteration selection progress")

	viper.SetEnvPrefix("readselect")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.BindPFlags(flags)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if viper.GetString("output") != "" && len(args) > 1 {
		return fmt.Errorf("-o cannot be used with multiple inputs")
	}
	if viper.GetBool("profile") {
		defer profile.Start(profile.ProfilePath(".")).Stop()
	}

	sets := make([]*readset.ReadSet, len(args))
	for i, path := range args {
		rs, err := readReadSet(path)
		if err != nil {
			return fmt.Errorf("reading %s: %v", path, err)
		}
		sets[i] = rs
	}

	selector := &selection.Selector{
		MaxCoverage: viper.GetInt("max-coverage"),
		Bridging:    viper.GetBool("bridging"),
	}
	if viper.GetBool("verbose") {
		selector.Log = log
	}

	results, err := selector.SelectBatch(sets)
	if err != nil {
		return fmt.Errorf("selecting reads: %v", err)
	}

	for i, result := range results {
		output := viper.GetString("output")
		if output == "" {
			output = strings.TrimSuffix(args[i], ".json") + ".selected.json"
		}
		if err := writeReadSet(output, sets[i].Subset(result.Selected)); err != nil {
			return fmt.Errorf("writing %s: %v", output, err)
		}

		log.WithFields(logrus.Fields{
			"input":         args[i],
			"selected":      len(result.Selected),
			"total":         sets[i].Len(),
			"uninformative": result.Stats.Uninformative,
			"sources":       readset.FormatSourceStats(sets[i], result.Selected),
		}).Info("selection finished")
	}
	return nil
}

func readReadSet(path string) (*readset.ReadSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readset.ReadJSON(f)
}

func writeReadSet(path string, rs *readset.ReadSet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return rs.WriteJSON(f)
}
