package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattgrange/winescout/internal/common"
	"github.com/mattgrange/winescout/internal/enrich"
	"github.com/mattgrange/winescout/internal/entity"
	"github.com/mattgrange/winescout/internal/export"
	"github.com/mattgrange/winescout/internal/llm/gemini"
	"github.com/mattgrange/winescout/internal/market"
	"github.com/mattgrange/winescout/internal/menu"
	"github.com/mattgrange/winescout/internal/pdf"
	"github.com/mattgrange/winescout/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		pdfPath = flag.String("pdf", "", "wine-list PDF to process")
		menuCSV = flag.String("menu-csv", "", "previously saved menu CSV to enrich (skips extraction)")
		pages   = flag.Int("pages", 0, "process only the first N pages (0 = all)")
		editor  = flag.Bool("editor", false, "review and correct extracted rows before enrichment")
		csvOut  = flag.String("csv", "", "output path for the enriched CSV (default next to input)")
		xlsxOut = flag.String("xlsx", "", "output path for the enriched XLSX (optional)")
		dbPath  = flag.String("db", "", "SQLite path for run history (optional; overrides WINESCOUT_DB)")
	)
	flag.Parse()

	if *pdfPath == "" && *menuCSV == "" {
		printError("Error: one of --pdf or --menu-csv is required\n")
		os.Exit(1)
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
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	source := *pdfPath
	if source == "" {
		source = *menuCSV
	}
	if *csvOut == "" {
		base := strings.TrimSuffix(source, filepath.Ext(source))
		*csvOut = base + "_enriched.csv"
	}

	// Stage 1: menu records, either extracted fresh or reloaded from CSV.
	var (
		records []entity.WineRecord
		err     error
	)
	if *pdfPath != "" {
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
		records, err = assembler.BuildMenu(ctx, *pdfPath, cfg.PDF.MaxPages)
		if err != nil {
			logger.Error("menu extraction failed", "error", err)
			os.Exit(1)
		}
	} else {
		records, err = menu.ReadCSV(*menuCSV)
		if err != nil {
			logger.Error("menu csv load failed", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("menu ready", "wines", len(records))

	if *editor {
		menu.RunEditor(os.Stdin, os.Stdout, records)
	}

	// Stage 2: sequential market enrichment.
	client := market.NewClient(market.Config{
		BaseURL:   cfg.Market.BaseURL,
		UserAgent: cfg.Market.UserAgent,
		Timeout:   cfg.Market.Timeout,
	}, logger)
	runner := enrich.NewBatchRunner(client, enrich.Config{
		PacingDelay:  cfg.Enrich.PacingDelay,
		MaxFailures:  cfg.Enrich.MaxFailures,
		CooldownWait: cfg.Enrich.CooldownWait,
	}, logger)

	startedAt := time.Now()
	enriched := runner.Enrich(ctx, records)

	// Stage 3: outputs.
	if err := export.WriteEnrichedCSV(*csvOut, enriched, logger); err != nil {
		logger.Error("csv export failed", "error", err)
		os.Exit(1)
	}
	if *xlsxOut != "" {
		svc := export.NewService(logger)
		data, err := svc.EnrichedXLSX(enriched)
		if err != nil {
			logger.Error("xlsx export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, data, 0644); err != nil {
			logger.Error("xlsx write failed", "path", *xlsxOut, "error", err)
			os.Exit(1)
		}
		logger.Info("xlsx written", "path", *xlsxOut)
	}

	if cfg.DBPath != "" {
		db, err := repository.Open(ctx, cfg.DBPath, logger)
		if err != nil {
			logger.Error("run store open failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		runs := repository.NewRunRepository(db, logger)
		if _, err := runs.SaveRun(ctx, source, startedAt, enriched); err != nil {
			logger.Error("run save failed", "error", err)
			os.Exit(1)
		}
	}
}
