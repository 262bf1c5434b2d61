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
	"os"
	"os/signal"
	"syscall"

	"github.com/luketpeterson/n-best/pkg/follower"
	"github.com/luketpeterson/n-best/pkg/record"
	"github.com/spf13/cobra"
)

// followCmd represents the follow command
var followCmd = &cobra.Command{
	Use:   "follow <file>",
	Short: "Follow a growing file, printing its best lines whenever they change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := capacity()
		if err != nil {
			return err
		}
		ordering, im, err := ranking()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		f := follower.New(args[0], n, ordering, im, logger)
		f.OnUpdate = func(best []record.Record) {
			fmt.Fprintln(out, "--")
			for i, r := range best {
				fmt.Fprintf(out, "%d: %v\n", i+1, r.Text)
			}
		}

		logger.Info().Str("file", args[0]).Int("num", n).Msg("following")
		return f.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(followCmd)
}
