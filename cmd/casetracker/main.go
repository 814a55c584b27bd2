package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/caseflow/casetracker/constants"
	"github.com/caseflow/casetracker/internal/common"
	"github.com/caseflow/casetracker/internal/export"
	"github.com/caseflow/casetracker/internal/pagetext"
	"github.com/caseflow/casetracker/internal/pipeline"
	"github.com/caseflow/casetracker/internal/tabular"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	_ = godotenv.Load()
	cfg := common.LoadConfig()

	var (
		dir       = flag.String("dir", "", "directory of CSV/XLSX/PDF uploads to process (required)")
		rulesPath = flag.String("rules", "", "extraction rules JSON file (optional)")
		out       = flag.String("out", cfg.Export.OutDir, "output directory for exports")
		minAmount = flag.Float64("min-amount", cfg.Pipeline.MinAmount, "drop records below this amount")
		dedupe    = flag.Bool("dedupe", cfg.Pipeline.DedupeOnCase, "dedupe by case number, keeping the highest amount")
		useOCR    = flag.Bool("ocr", cfg.Pipeline.UseOCR, "rasterize and OCR documents instead of reading the text layer")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	rulesJSON := ""
	if *rulesPath != "" {
		b, err := os.ReadFile(*rulesPath)
		if err != nil {
			logger.Error("failed to read rules file", "path", *rulesPath, "error", err)
			os.Exit(1)
		}
		rulesJSON = string(b)
	}

	tabFiles, docs, warnings := collectUploads(*dir, logger)
	if len(tabFiles) == 0 && len(docs) == 0 {
		logger.Error("no CSV/XLSX/PDF files found", "dir", *dir)
		os.Exit(1)
	}

	source := pagetext.NewSource(
		pagetext.FitzRasterizer{DPI: cfg.OCR.DPI, MaxPages: cfg.OCR.MaxPages},
		pagetext.NewTesseractEngine(cfg.OCR.Language),
		pagetext.FitzTextLayer{},
		logger,
	)
	p := pipeline.New(source, logger)

	result := p.Run(context.Background(), tabFiles, docs, pipeline.Options{
		MinAmount:    *minAmount,
		DedupeOnCase: *dedupe,
		UseOCR:       *useOCR,
		RulesJSON:    rulesJSON,
	})
	for _, w := range append(warnings, result.Warnings...) {
		logger.Warn("skipped or degraded input", "detail", w)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", *out, "error", err)
		os.Exit(1)
	}
	if err := writeExports(*out, result, logger); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}

	logger.Info("done",
		"retained", len(result.Result.Records),
		"high_value", len(result.Result.HighValue),
		"pages", len(result.PageTexts),
	)
}

// collectUploads walks root and splits files into tabular and document
// uploads by extension. An unreadable file becomes a warning, not an abort.
func collectUploads(root string, logger *slog.Logger) ([]tabular.File, []pipeline.Document, []string) {
	var tabFiles []tabular.File
	var docs []pipeline.Document
	var warnings []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", path, walkErr))
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !constants.IsTabularExt(ext) && !constants.IsDocumentExt(ext) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("could not read %s: %v", path, err))
			return nil
		}
		name := filepath.Base(path)
		if constants.IsTabularExt(ext) {
			tabFiles = append(tabFiles, tabular.File{Name: name, Data: data})
		} else {
			docs = append(docs, pipeline.Document{Name: name, Data: data})
		}
		return nil
	})
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("walk %s: %v", root, err))
	}

	logger.Info("collected uploads", "tabular", len(tabFiles), "documents", len(docs))
	return tabFiles, docs, warnings
}

func writeExports(outDir string, result pipeline.Output, logger *slog.Logger) error {
	all, err := os.Create(filepath.Join(outDir, "case_data_all.csv"))
	if err != nil {
		return fmt.Errorf("create case_data_all.csv: %w", err)
	}
	defer all.Close()
	if err := export.WriteCSV(all, result.Result.Records); err != nil {
		return fmt.Errorf("write case_data_all.csv: %w", err)
	}

	high, err := os.Create(filepath.Join(outDir, "case_data_over_10k.csv"))
	if err != nil {
		return fmt.Errorf("create case_data_over_10k.csv: %w", err)
	}
	defer high.Close()
	if err := export.WriteCSV(high, result.Result.HighValue); err != nil {
		return fmt.Errorf("write case_data_over_10k.csv: %w", err)
	}

	xlsx, err := export.NewService(logger).CasesXLSX(result.Result.Records)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "case_data.xlsx"), xlsx, 0o644); err != nil {
		return fmt.Errorf("write case_data.xlsx: %w", err)
	}

	if len(result.PageTexts) > 0 {
		zb, err := export.PageTextsZIP(result.PageTexts)
		if err != nil {
			return fmt.Errorf("build texts archive: %w", err)
		}
		if err := os.WriteFile(filepath.Join(outDir, "extracted_texts.zip"), zb, 0o644); err != nil {
			return fmt.Errorf("write extracted_texts.zip: %w", err)
		}
	}
	return nil
}
