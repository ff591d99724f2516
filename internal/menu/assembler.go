package menu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mattgrange/winescout/internal/entity"
	"github.com/mattgrange/winescout/internal/llm"
)

// PageExtractor is the document-side dependency of the assembler.
type PageExtractor interface {
	ExtractPages(ctx context.Context, path string) (map[int]string, error)
}

// Assembler drives page extraction and per-page wine parsing, merging every
// page's records into one table.
type Assembler struct {
	pages  PageExtractor
	parser llm.WineListParser
	logger *slog.Logger
}

func NewAssembler(pages PageExtractor, parser llm.WineListParser, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{pages: pages, parser: parser, logger: logger}
}

// BuildMenu extracts the document and parses pages 1..maxPages (0 = all) in
// order. A document read error aborts; a page that parses to nothing does
// not. Whitespace-only pages are skipped without calling the model.
func (a *Assembler) BuildMenu(ctx context.Context, path string, maxPages int) ([]entity.WineRecord, error) {
	start := time.Now()

	pages, err := a.pages.ExtractPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract pages: %w", err)
	}

	lastPage := 0
	for n := range pages {
		if n > lastPage {
			lastPage = n
		}
	}
	if maxPages > 0 && maxPages < lastPage {
		lastPage = maxPages
	}

	var records []entity.WineRecord
	for pageNum := 1; pageNum <= lastPage; pageNum++ {
		text := pages[pageNum]
		if strings.TrimSpace(text) == "" {
			a.logger.Info("menu.page.skipped_empty", "page", pageNum)
			continue
		}

		pageRecords := a.parser.ParseWineList(ctx, text)
		a.logger.Info("menu.page.parsed",
			"page", pageNum,
			"of", lastPage,
			"text_len", len(text),
			"wines", len(pageRecords),
		)
		records = append(records, pageRecords...)
	}

	a.logger.Info("menu.build.ok",
		"path", path,
		"pages", lastPage,
		"wines", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}
