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
	"path/filepath"

	"github.com/luketpeterson/n-best/pkg/importer"
	"github.com/luketpeterson/n-best/pkg/record"
	"github.com/luketpeterson/n-best/tools/blacklist"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var logger zerolog.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nbest",
	Short: "nbest keeps the best N lines of its input",
	Long: `nbest reads lines from files or standard input and keeps only the N best of them,
ranked by the whole line or by one of its columns, as text or as numbers. Memory use
is bounded by N, however long the input.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nbest.json)")
	flags.IntP("num", "n", 10, "The number of lines that will be kept")
	flags.Bool("numeric", false, "Rank by the numeric value of the key")
	flags.BoolP("ascending", "a", false, "Keep the smallest keys instead of the largest")
	flags.IntP("field", "f", 0, "Key column, counted from 1; negative counts from the end, 0 is the whole line")
	flags.StringP("separator", "s", "", "Column separator (default is white space)")
	flags.Bool("normalize", false, "Ignore case, accents and punctuation in text keys")
	flags.String("locale", "und", "BCP 47 locale used to collate text keys")
	flags.StringSlice("exclude", nil, "Regular expression of lines to ignore (repeatable)")
	flags.String("loglevel", "warn", "Log level written to stderr")

	for _, name := range []string{"num", "numeric", "ascending", "field", "separator", "normalize", "locale", "exclude", "loglevel"} {
		viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("num", 10)
	viper.SetDefault("locale", "und")
	viper.SetDefault("loglevel", "warn")
	viper.SetDefault("exclude", []string{})

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.SetConfigFile(filepath.Join(home, ".nbest.json"))
	}

	viper.SetEnvPrefix("nbest")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "could not read config:", err)
		os.Exit(1)
	}
}

func initLogger() {
	level, err := zerolog.ParseLevel(viper.GetString("loglevel"))
	if err != nil {
		level = zerolog.WarnLevel
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug().Str("config", used).Msg("configuration loaded")
	}
}

// ranking builds the record ordering and importer described by the configuration.
func ranking() (func(a, b record.Record) int, *importer.Importer, error) {
	ordering, err := record.Comparator(record.Options{
		Numeric:   viper.GetBool("numeric"),
		Ascending: viper.GetBool("ascending"),
		Locale:    viper.GetString("locale"),
	})
	if err != nil {
		return nil, nil, err
	}

	im, err := newImporter()
	if err != nil {
		return nil, nil, err
	}
	return ordering, im, nil
}

// newImporter builds the importer described by the configuration.
func newImporter() (*importer.Importer, error) {
	skip, err := blacklist.New(viper.GetStringSlice("exclude")...)
	if err != nil {
		return nil, err
	}

	parser := record.Parser{
		Field:     viper.GetInt("field"),
		Separator: viper.GetString("separator"),
		Numeric:   viper.GetBool("numeric"),
		Normalize: viper.GetBool("normalize"),
	}
	return importer.New(parser, skip, logger), nil
}

func capacity() (int, error) {
	n := viper.GetInt("num")
	if n < 0 {
		return 0, errors.Errorf("the number of lines must not be negative, got %d", n)
	}
	return n, nil
}
