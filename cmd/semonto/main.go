// Package main provides the semonto binary entry point.
// Semonto loads biomedical ontologies from OBO or record files, resolves
// their imports, and converts or queries the resulting term graph.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/c360studio/semonto/config"
	"github.com/c360studio/semonto/loader"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semonto"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	noImports  bool

	cfg    *config.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Biomedical ontology term-graph engine",
		Long: `Semonto loads ontologies written in OBO or as YAML/JSON term records,
follows their imports over HTTP, FTP or the local file system, and merges
everything into one term graph with derived inverse relations.

The graph can be converted to OBO, dereferenced JSON, Turtle or N-Triples,
or queried for terms and their descendants.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.noImports, "no-imports", false, "Do not resolve imports")

	cmd.AddCommand(
		convertCmd(a),
		childrenCmd(a),
		showCmd(a),
		watchCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)

	return cmd
}

// setup configures logging and loads the layered configuration.
func (a *app) setup(cmd *cobra.Command) error {
	bootstrap, err := newLogger(cmd, a.logLevel, "info")
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader(bootstrap).Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.noImports {
		off := false
		cfg.Load.Imports = &off
	}

	logger, err := newLogger(cmd, a.logLevel, cfg.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

// loader builds a loader from the configuration. Import metrics are
// registered on reg when it is non-nil.
func (a *app) loader(reg prometheus.Registerer) (*loader.Loader, error) {
	return loader.FromConfig(a.cfg, a.logger, reg)
}

// newLogger creates a text logger on stderr. The flag level wins over the
// configured one.
func newLogger(cmd *cobra.Command, flagLevel, cfgLevel string) (*slog.Logger, error) {
	name := flagLevel
	if name == "" {
		name = cfgLevel
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", name)
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})), nil
}
