// Package irareports builds monthly airtime certificates for advertising clients from
// channel airtime exports and the master advertisement catalog.
package irareports

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tulumbas/irareports/pkg/irareports/loader"
	"github.com/tulumbas/irareports/pkg/irareports/models"
	"github.com/tulumbas/irareports/pkg/irareports/report"
)

// ReportWriter renders one client report to path.
type ReportWriter interface {
	Write(r *models.ClientReport, path string) error
}

// Result summarises a batch run.
type Result struct {
	// CatalogSize is the number of distinct catalog codes.
	CatalogSize int `json:"catalog_size"`
	// Files contains the loaded channel sheets in input order.
	Files []*models.SourceFile `json:"files"`
	// Skipped lists channel files without a usable sheet.
	Skipped []string `json:"skipped,omitempty"`
	// OutputDir is the directory reports were written to; empty when nothing was loaded.
	OutputDir string `json:"output_dir,omitempty"`
	// Reports lists the written report paths in client order.
	Reports []string `json:"reports"`
}

// Runner loads the catalog and channel files and writes one report per client.
type Runner struct {
	Config *Config
	Logger *slog.Logger
	// Writer overrides the xlsx report writer.
	Writer ReportWriter
}

// NewRunner creates a Runner. A nil logger falls back to slog.Default().
func NewRunner(cfg *Config, logger *slog.Logger) *Runner {
	return &Runner{Config: cfg, Logger: logger}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// Run processes one batch. Channel paths that do not exist are ignored and repeated
// paths are loaded once. A channel file without a usable sheet is skipped unless
// Config.Channel.Strict is set. Reports already written stay on disk when a later one fails.
func (r *Runner) Run(catalogPath string, channelPaths []string) (*Result, error) {
	cfg := r.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := r.logger()

	format, err := report.NewFormat(cfg.Output.Locale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if _, err := os.Stat(catalogPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewFileError(catalogPath, "catalog", ErrFileNotFound)
		}
		return nil, NewFileError(catalogPath, "catalog", err)
	}
	catalog, err := loader.LoadCatalogFile(catalogPath, cfg.Catalog)
	if err != nil {
		return nil, NewFileError(catalogPath, "catalog", err)
	}
	log.Info("catalog loaded", "path", catalogPath, "entries", len(catalog))

	result := &Result{CatalogSize: len(catalog)}

	for _, path := range uniquePaths(channelPaths) {
		if _, err := os.Stat(path); err != nil {
			log.Debug("channel file not found, skipping", "path", path)
			continue
		}

		file, err := loader.LoadChannelFile(path, catalog, cfg.Channel)
		if err != nil {
			if errors.Is(err, loader.ErrNoUsableSheet) && !cfg.Channel.Strict {
				log.Warn("no usable channel sheet, skipping file", "path", path, "error", err)
				result.Skipped = append(result.Skipped, path)
				continue
			}
			return result, NewFileError(path, "channel", err)
		}

		log.Info("channel sheet loaded",
			"path", path,
			"sheet", file.SheetName,
			"records", file.Count(),
			"matched", file.Matched(),
			"seconds", file.TotalSeconds())
		if unmatched := file.Count() - file.Matched(); unmatched > 0 {
			log.Debug("records without catalog entry", "path", path, "count", unmatched)
		}
		result.Files = append(result.Files, file)
	}

	if len(result.Files) == 0 {
		log.Info("no channel files loaded")
		return result, nil
	}

	reports := report.Aggregate(result.Files, format)
	result.OutputDir = outputDir(cfg.Output.Dir, result.Files[0].Path)
	if len(reports) == 0 {
		log.Info("no records matched the catalog")
		return result, nil
	}
	if err := os.MkdirAll(result.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}

	writer := r.Writer
	if writer == nil {
		writer = report.NewWriter(format)
	}
	for _, rep := range reports {
		path := report.OutputPath(result.OutputDir, rep.Client)
		if err := writer.Write(rep, path); err != nil {
			return result, NewFileError(path, "report", err)
		}
		log.Info("report written",
			"client", rep.Client,
			"path", path,
			"sections", len(rep.Sections),
			"records", rep.RecordCount())
		result.Reports = append(result.Reports, path)
	}

	return result, nil
}

// outputDir returns dir, or the default directory next to firstFile when dir is empty.
func outputDir(dir, firstFile string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(firstFile), DefaultOutputDirName)
}

// uniquePaths drops repeated paths, keeping the first occurrence.
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		key := filepath.Clean(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
