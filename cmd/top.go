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
	"context"
	"fmt"
	"io"

	"github.com/luketpeterson/n-best/pkg/importer"
	"github.com/luketpeterson/n-best/pkg/nbest"
	"github.com/luketpeterson/n-best/pkg/record"
	"github.com/pkg/errors"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:   "top [file...]",
	Short: "Print the best lines of the given files, or of standard input",
	RunE: func(cmd *cobra.Command, args []string) error {
		unsorted, _ := cmd.Flags().GetBool("unsorted")
		feelingLucky, _ := cmd.Flags().GetBool("open")
		if unsorted && feelingLucky {
			return errors.New("--open needs the best line and cannot be combined with --unsorted")
		}

		n, err := capacity()
		if err != nil {
			return err
		}
		ordering, im, err := ranking()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = []string{"-"}
		}

		best := nbest.New(n, ordering)
		for _, path := range args {
			if err := collect(cmd.Context(), im, best, path, cmd.InOrStdin()); err != nil {
				return err
			}
		}

		var results []record.Record
		if unsorted {
			results = best.IntoUnsorted()
		} else {
			results = best.IntoSorted()
		}

		if len(results) == 0 {
			logger.Info().Msg("no lines kept")
			return nil
		}

		if feelingLucky {
			return open.Run(results[0].Key)
		}

		ranked, _ := cmd.Flags().GetBool("rank")
		out := cmd.OutOrStdout()
		for i, r := range results {
			if ranked {
				fmt.Fprintf(out, "%d: %v (%v:%d)\n", i+1, r.Text, r.Source, r.LineNo)
			} else {
				fmt.Fprintln(out, r.Text)
			}
		}
		return nil
	},
}

func collect(ctx context.Context, im *importer.Importer, best *nbest.NBest[record.Record], path string, stdin io.Reader) error {
	r := stdin
	source := "stdin"
	if path != "-" {
		f, err := importer.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r, source = f, path
	}

	before := best.Len()
	for rec, err := range im.Records(ctx, r, source) {
		if err != nil {
			return err
		}
		best.Push(rec)
	}
	logger.Debug().Str("source", source).Int("kept", best.Len()-before).Msg("input read")
	return nil
}

func init() {
	topCmd.Flags().BoolP("unsorted", "u", false, "Print the kept lines in no particular order")
	topCmd.Flags().BoolP("rank", "r", false, "Prefix each line with its rank and suffix it with its origin")
	topCmd.Flags().Bool("open", false, "Open the key of the best line (a path or URL) instead of printing; not allowed with --unsorted")
	rootCmd.AddCommand(topCmd)
}
