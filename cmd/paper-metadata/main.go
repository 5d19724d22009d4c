// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-metadata CLI.
// It resolves DOIs and DOI-bearing URLs into metadata records, either
// directly (resolve) or as an MCP tool over stdio (serve).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-metadata/internal/config"
	"github.com/pdiddy/paper-metadata/internal/doi"
	"github.com/pdiddy/paper-metadata/internal/logging"
	"github.com/pdiddy/paper-metadata/internal/resolve"
)

// version is set at build time via ldflags.
var version = "dev"

// annotationNoConfig marks commands that run without a contact address.
const annotationNoConfig = "no-config"

// app holds the dependencies built once at startup by setup.
var app struct {
	resolver *resolve.Resolver
	log      *zap.Logger
}

// rootCmd is the base command for the paper-metadata CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-metadata",
	Short: "Resolve academic paper identifiers into metadata records",
	Long: `paper-metadata turns a DOI, or a URL containing one, into a metadata record
assembled from Unpaywall and Crossref (or OpenAlex), and reports which
retrieval sources are plausibly able to supply the full text.

A contact e-mail address is required by the providers' usage policies. Set it
with --contact, PAPER_METADATA_CONTACT, SCIHUB_CLI_EMAIL, a .env file, the
"contact" key of the config file, or a .secrets/contact file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !needsConfig(cmd) {
			return nil
		}
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-metadata.yaml or ~/.config/paper-metadata/config.yaml)")
	rootCmd.PersistentFlags().String("contact", "", "contact e-mail sent to metadata providers")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag(config.KeyContact, rootCmd.PersistentFlags().Lookup("contact"))
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-metadata")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-metadata"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// needsConfig reports whether cmd resolves identifiers. Help, completion
// and version run without a contact address.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNoConfig] == "true" {
			return false
		}
		if c.Name() == "help" || c.Name() == cobra.ShellCompRequestCmd || c.Name() == "completion" {
			return false
		}
	}
	return true
}

// setup validates configuration and builds the resolver. It runs once per
// process; a configuration error stops the command before any provider
// call is possible.
func setup() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}

	applied, err := config.LoadSecrets(viper.GetViper(), viper.GetString(config.KeySecretsDir))
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", applied)
	}

	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	r, err := resolve.FromConfig(cfg, log)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrConfiguration, err)
	}

	log.Debug("configuration loaded",
		zap.String("fallback_provider", string(cfg.FallbackProvider)),
		zap.Duration("primary_timeout", cfg.Primary.Timeout),
		zap.Duration("fallback_timeout", cfg.Fallback.Timeout))

	app.resolver = r
	app.log = log
	return nil
}

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, config.ErrConfiguration):
		return ExitConfigError
	case errors.Is(err, doi.ErrInvalidIdentifier):
		return ExitInvalidIdentifier
	default:
		return ExitError
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}
