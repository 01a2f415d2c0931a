package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paveg/biocframe"
	"github.com/paveg/biocframe/internal/config"
	"github.com/paveg/biocframe/internal/logging"
	"github.com/paveg/biocframe/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultDemoRows = 6

func main() {
	defer func() { _ = logging.Sync() }()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile, logLevel string

	root := &cobra.Command{
		Use:   "biocframe-cli",
		Short: "BiocFrame - annotated data frames with row names and nested columns",
		Long: `biocframe-cli exercises the BiocFrame library: it builds sample frames,
merges and combines them, and converts them to and from Arrow records.

Settings are read from BIOCFRAME_* environment variables and, when given,
a JSON or YAML file passed with --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(configFile, logLevel)
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a JSON or YAML configuration file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd(), newDemoCmd(), newArrowCmd())
	return root
}

// setup layers environment, file and flag settings, in that order.
func setup(configFile, logLevel string) error {
	cfg := config.LoadFromEnv()
	if configFile != "" {
		fileCfg, err := config.LoadFromFile(configFile)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		cfg = fileCfg
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := biocframe.Configure(cfg); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logging.Debug("configured",
		zap.String("config_file", configFile),
		zap.String("log_level", cfg.LogLevel),
		zap.String("default_join", cfg.DefaultJoin))
	return nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Info()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprint(cmd.OutOrStdout(), info.String())
			fmt.Fprintf(cmd.OutOrStdout(), "Arrow: %s\n", info.Dependency("github.com/apache/arrow-go/v18"))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")
	return cmd
}

func newDemoCmd() *cobra.Command {
	var rows int
	var join string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build sample frames, merge and combine them",
		Example: `  biocframe-cli demo
  biocframe-cli demo --rows 10 --join outer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jt, err := biocframe.ParseJoin(join)
			if err != nil {
				return err
			}
			return runDemo(cmd.OutOrStdout(), rows, jt)
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", defaultDemoRows, "Number of genes in the sample frame")
	cmd.Flags().StringVar(&join, "join", "", "Join used by the merge step (inner, left, right, outer); defaults to the configured join")
	return cmd
}

func newArrowCmd() *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "arrow",
		Short: "Convert a sample frame to an Arrow record and back",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArrow(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", defaultDemoRows, "Number of genes in the sample frame")
	return cmd
}
