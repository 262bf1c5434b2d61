/*
Copyright © 2026 The n-best Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"time"

	"github.com/luketpeterson/n-best/pkg/importer"
	"github.com/luketpeterson/n-best/pkg/search"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search \"<query>\" [file...]",
	Short: "Print the lines most relevant to a query",
	Long: `Print the lines most relevant to a query, ranked by BM25 relevance.

Whole lines are indexed. --ascending and --locale only order the keys of top
and are ignored here; --numeric, --field and --separator only drop the lines
whose key cannot be parsed.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := capacity()
		if err != nil {
			return err
		}
		im, err := newImporter()
		if err != nil {
			return err
		}

		query, paths := args[0], args[1:]
		if len(paths) == 0 {
			paths = []string{"-"}
		}

		start := time.Now()
		engine := search.NewEngine()
		for _, path := range paths {
			if err := index(cmd, im, engine, path); err != nil {
				return err
			}
		}

		results := engine.Search(query, n)
		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		feelingLucky, _ := cmd.Flags().GetBool("ifl")
		if feelingLucky {
			return open.Run(results[0].Record.Key)
		}

		logger.Info().Int("results", len(results)).Int("lines", engine.NumDocs()).Dur("took", time.Since(start)).Msg("search done")
		for i, r := range results {
			fmt.Fprintf(out, "%d: %v (%.3f)\n", i+1, r.Record.Text, r.Score)
		}
		return nil
	},
}

func index(cmd *cobra.Command, im *importer.Importer, engine *search.Engine, path string) error {
	r := cmd.InOrStdin()
	source := "stdin"
	if path != "-" {
		f, err := importer.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r, source = f, path
	}

	for rec, err := range im.Records(cmd.Context(), r, source) {
		if err != nil {
			return err
		}
		engine.Add(rec)
	}
	return nil
}

func init() {
	searchCmd.Flags().Bool("ifl", false, "Open the key of the best result immediately")
	rootCmd.AddCommand(searchCmd)
}
