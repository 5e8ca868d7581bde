// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the markdowngo CLI.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barbaragodoy/markdowngo/internal/logging"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig holds the validated configuration for the running command.
var appConfig = types.DefaultConfig()

// rootCmd is the base command for the markdowngo CLI.
var rootCmd = &cobra.Command{
	Use:   "markdowngo",
	Short: "Convert office documents, CSV, and text to Markdown",
	Long: `markdowngo converts spreadsheets (.xlsx, .xls), Word documents (.docx),
CSV, and plain text files into a single Markdown document.

Files are converted in the order given, up to conversion.max_files per run.
A file that fails does not stop the run; the other files are still
converted and the failure is reported in the event log.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		appConfig = cfg
		logging.Init(cfg.Log)
		if f := viper.ConfigFileUsed(); f != "" {
			slog.Debug("using config file", "path", f)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./markdowngo.yaml or ~/.config/markdowngo/markdowngo.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("markdowngo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "markdowngo"))
		}
	}

	viper.SetEnvPrefix("MARKDOWNGO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
