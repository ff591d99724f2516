package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ErrUnreadable marks a document-level failure: missing file, corrupt PDF,
// or a pdftotext run that produced nothing. The whole run aborts on it.
var ErrUnreadable = errors.New("unreadable document")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

// Extractor turns a PDF into per-page text via pdftotext.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// WithRunner swaps the command runner; tests use this to avoid exec.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// ExtractPages returns a mapping from 1-based page number to extracted text.
// Fails fast: a read error yields no partial page map.
func (e *Extractor) ExtractPages(ctx context.Context, path string) (map[int]string, error) {
	start := time.Now()

	if _, err := os.Stat(path); err != nil {
		e.logger.Error("pdf.extract.stat_error", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		e.logger.Error("pdf.extract.exec_error",
			"path", path,
			"stderr", truncate(string(errb), 2<<10),
			"error", err,
		)
		return nil, fmt.Errorf("%w: pdftotext: %v", ErrUnreadable, err)
	}

	// A form-feed \f is used as page separator by default.
	raw := strings.Split(string(out), "\f")
	// pdftotext emits a trailing form-feed after the last page.
	if n := len(raw); n > 1 && strings.TrimSpace(raw[n-1]) == "" {
		raw = raw[:n-1]
	}
	if e.cfg.MaxPages > 0 && len(raw) > e.cfg.MaxPages {
		raw = raw[:e.cfg.MaxPages]
	}

	pages := make(map[int]string, len(raw))
	for i, text := range raw {
		pages[i+1] = text
	}

	e.logger.Info("pdf.extract.ok",
		"path", path,
		"pages", len(pages),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return pages, nil
}
