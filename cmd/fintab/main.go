// Package main provides the CLI entry point for fintab.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/fintab-go/internal/config"
	"github.com/ukaji3/fintab-go/internal/logging"
	"github.com/ukaji3/fintab-go/pkg/fintab"
	"github.com/ukaji3/fintab-go/pkg/fintab/models"
	"github.com/ukaji3/fintab-go/pkg/fintab/output"
)

type flags struct {
	configPath   string
	outputPath   string
	segmentsDir  string
	pretty       bool
	page         int
	sheet        string
	headerRows   []int
	applyHeaders bool
	groupWidth   int
	format       string
	logLevel     string
	logFormat    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "fintab [input.pdf|input.xlsx]",
		Short: "Extract and clean financial tables from PDF and Excel files",
		Long: `fintab locates the table on a PDF page or Excel sheet, separates title and
unlabeled rows, normalizes row labels, pulls $ and % markers into a unit map
and outputs JSON or xlsx.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args[0])
		},
	}

	fs := rootCmd.Flags()
	fs.StringVar(&f.configPath, "config", "", "YAML config file")
	fs.StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	fs.StringVar(&f.segmentsDir, "segments-dir", "", "Directory for per-segment JSON files")
	fs.BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	fs.IntVar(&f.page, "page", 1, "1-based PDF page holding the table")
	fs.StringVar(&f.sheet, "sheet", "", "Excel sheet holding the table (default: first sheet)")
	fs.IntSliceVar(&f.headerRows, "header-rows", nil, "Raw row positions holding column headers, e.g. 0,1")
	fs.BoolVar(&f.applyHeaders, "apply-headers", false, "Rename value columns with the reconstructed headers")
	fs.IntVar(&f.groupWidth, "group-width", 0, "Split value columns into groups of this width")
	fs.StringVar(&f.format, "format", "json", "Output format: json, xlsx")
	fs.StringVar(&f.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "console", "Log format: console, json")

	return rootCmd
}

func run(cmd *cobra.Command, f *flags, inputPath string) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	if cfg.Extraction.Format == "xlsx" && f.outputPath == "" {
		return fmt.Errorf("xlsx output requires --output")
	}

	opts := cfg.Extraction.Options()
	opts.Logger = logger

	// Extract data
	res, err := fintab.Extract(inputPath, opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	logger.Info("extracted table",
		zap.String("input", inputPath),
		zap.Int("rows", res.Table.NumRows()),
		zap.Int("units", len(res.Units)))

	if err := writeResult(cmd.OutOrStdout(), res, cfg.Extraction, f.outputPath); err != nil {
		return err
	}

	// Write per-segment files
	if f.segmentsDir != "" {
		if err := writeSegmentFiles(res, f.segmentsDir, cfg.Extraction.Pretty); err != nil {
			return fmt.Errorf("failed to write segment files: %w", err)
		}
	}

	return nil
}

// loadConfig reads the config file and environment, then applies the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	fs := cmd.Flags()
	if fs.Changed("pretty") {
		cfg.Extraction.Pretty = f.pretty
	}
	if fs.Changed("page") {
		cfg.Extraction.Page = f.page
	}
	if fs.Changed("sheet") {
		cfg.Extraction.Sheet = f.sheet
	}
	if fs.Changed("header-rows") {
		cfg.Extraction.HeaderRows = f.headerRows
	}
	if fs.Changed("apply-headers") {
		cfg.Extraction.ApplyHeaders = f.applyHeaders
	}
	if fs.Changed("group-width") {
		cfg.Extraction.GroupWidth = f.groupWidth
	}
	if fs.Changed("format") {
		cfg.Extraction.Format = f.format
	}
	if fs.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func writeResult(stdout io.Writer, res *models.Result, cfg config.ExtractionConfig, outputPath string) error {
	if cfg.Format == "xlsx" {
		if err := output.ToXLSX(res, outputPath); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	// Serialize to JSON
	jsonData, err := output.ToJSON(res, cfg.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprintln(stdout, string(jsonData))
	return err
}

func writeSegmentFiles(res *models.Result, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range res.Segments {
		seg := &res.Segments[i]
		jsonData, err := output.SegmentToJSON(seg, pretty)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("segment%d.json", i+1)
		if seg.Year != "" {
			name = fmt.Sprintf("segment%d_%s.json", i+1, seg.Year)
		}
		if err := os.WriteFile(filepath.Join(dir, name), jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
