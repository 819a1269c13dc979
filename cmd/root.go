/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	cfgFile string
	logger  = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "medtran",
	Short: "Clinical text translator",
	Long: `A CLI and HTTP service that sends clinical and medical text to a hosted
machine-translation model and reports the translation or a diagnostic message.

Each translation is a single request: a model that is still loading is
reported as such and is not polled.

Supported backends: huggingface (default), openai, google

Use "medtran translate --help" for translation options.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		logger = newLogger(viper.GetString("log.level"))
		slog.SetDefault(logger)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.medtran.yaml)")
	flags.String("backend", "huggingface", "Translation backend: huggingface, openai, google")
	flags.String("base-url", "", "Override the backend endpoint root")
	flags.String("model", "", "Model id; for huggingface a template with {source} and {target}")
	flags.Duration("timeout", 0, "Request timeout (0 uses the backend default: 120s openai, 60s otherwise)")
	flags.Bool("check-language", false, "Warn when the translation is not in the target language")
	flags.Bool("history", true, "Record attempt metadata in the history database")
	flags.String("db", "./data/medtran.db", "History database path")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"backend":         "backend",
		"base_url":        "base-url",
		"model":           "model",
		"timeout":         "timeout",
		"check_language":  "check-language",
		"history.enabled": "history",
		"history.db":      "db",
		"log.level":       "log-level",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig loads .env, then the config file, then MEDTRAN_* variables.
// Flags given on the command line win over all of them.
func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".medtran")
	}

	viper.SetEnvPrefix("MEDTRAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
