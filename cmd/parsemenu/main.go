package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattgrange/winescout/internal/common"
	"github.com/mattgrange/winescout/internal/llm/gemini"
	"github.com/mattgrange/winescout/internal/menu"
	"github.com/mattgrange/winescout/internal/pdf"
)

// parsemenu runs extraction only: PDF -> wine records -> CSV, with the
// optional interactive correction pass. Useful for reviewing the table
// before spending a long enrichment run on it.
func main() {
	var (
		pdfPath = flag.String("pdf", "", "wine-list PDF to parse (required)")
		pages   = flag.Int("pages", 0, "process only the first N pages (0 = all)")
		editor  = flag.Bool("editor", false, "review and correct extracted rows")
		csvOut  = flag.String("csv", "", "output CSV path (default next to input)")
	)
	flag.Parse()

	if *pdfPath == "" {
		if _, err := fmt.Fprintln(os.Stderr, "Error: --pdf is required"); err != nil {
			fmt.Println("Error: --pdf is required")
		}
		os.Exit(1)
	}
	if *csvOut == "" {
		base := strings.TrimSuffix(*pdfPath, filepath.Ext(*pdfPath))
		*csvOut = base + "_menu.csv"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig(logger)
	if *pages > 0 {
		cfg.PDF.MaxPages = *pages
	}

	extractor := pdf.NewExtractor(pdf.Config{
		Pdftotext: cfg.PDF.Pdftotext,
		MaxPages:  cfg.PDF.MaxPages,
	}, logger)
	parser := gemini.NewClient(gemini.Config{
		APIKey:            cfg.LLM.APIKey,
		BaseURL:           cfg.LLM.BaseURL,
		Model:             cfg.LLM.Model,
		Temperature:       cfg.LLM.Temperature,
		Timeout:           cfg.LLM.Timeout,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
	}, logger)
	assembler := menu.NewAssembler(extractor, parser, logger)

	records, err := assembler.BuildMenu(ctx, *pdfPath, cfg.PDF.MaxPages)
	if err != nil {
		logger.Error("menu extraction failed", "error", err)
		os.Exit(1)
	}

	if *editor {
		menu.RunEditor(os.Stdin, os.Stdout, records)
	}

	if err := menu.WriteCSV(*csvOut, records, logger); err != nil {
		logger.Error("menu csv write failed", "error", err)
		os.Exit(1)
	}
}
