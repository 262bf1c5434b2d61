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
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")
		if save {
			path := viper.ConfigFileUsed()
			if path == "" {
				return errors.New("no config file to save to: pass --config or set $HOME")
			}
			if err := viper.WriteConfigAs(path); err != nil {
				return err
			}
			logger.Info().Str("config", path).Msg("configuration saved")
		}

		settings := viper.AllSettings()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%v = %v\n", k, settings[k])
		}
		return nil
	},
}

func init() {
	configCmd.Flags().Bool("save", false, "Write the effective configuration to the config file")
	rootCmd.AddCommand(configCmd)
}
