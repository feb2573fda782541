// Package main provides the CLI entry point for irareports.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tulumbas/irareports/pkg/irareports"
)

var (
	catalogPath string
	configPath  string
	outputDir   string
	strict      bool
	logLevel    string
	locale      string
	jsonSummary bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "irareports --catalog catalog.xlsx [channel.xlsx ...]",
		Short: "Build monthly airtime certificates per advertising client",
		Long: `irareports reads channel airtime exports, matches every broadcast against the
advertisement catalog and writes one airtime certificate workbook per client.`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&catalogPath, "catalog", "c", "", "Advertisement catalog workbook")
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVarP(&outputDir, "output-dir", "o", "", "Report directory (default: \"справки\" next to the first channel file)")
	flags.BoolVar(&strict, "strict", false, "Abort when a channel file has no usable sheet")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&locale, "locale", "ru", "Locale for client ordering and month names")
	flags.BoolVar(&jsonSummary, "json", false, "Print the batch summary as JSON")
	_ = rootCmd.MarkFlagRequired("catalog")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := irareports.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := irareports.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	result, err := irareports.NewRunner(cfg, logger).Run(catalogPath, args)
	if err != nil {
		return err
	}

	if jsonSummary {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	printSummary(cmd.OutOrStdout(), result)
	return nil
}

// applyFlags overrides configuration values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *irareports.Config) {
	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("strict") {
		cfg.Channel.Strict = strict
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("locale") {
		cfg.Output.Locale = locale
	}
}

func printSummary(w io.Writer, result *irareports.Result) {
	fmt.Fprintf(w, "Загружено роликов: %d\n", result.CatalogSize)
	for _, f := range result.Files {
		fmt.Fprintf(w, "%s: %s, записей %d, сопоставлено %d\n", f.Path, f.Channel, f.Count(), f.Matched())
	}
	for _, path := range result.Skipped {
		fmt.Fprintf(w, "%s: пропущен, нет листа канала\n", path)
	}
	for _, path := range result.Reports {
		fmt.Fprintf(w, "Сохранено: %s\n", path)
	}
	if len(result.Reports) == 0 {
		fmt.Fprintln(w, "Справки не созданы")
	}
}

func writeJSON(w io.Writer, result *irareports.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return nil
}
