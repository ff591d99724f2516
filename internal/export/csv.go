package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattgrange/winescout/internal/entity"
)

// WriteEnrichedCSV saves the enriched table with the same presentation
// columns as the workbook export.
func WriteEnrichedCSV(path string, records []entity.EnrichedRecord, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(Headers()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, rec := range records {
		if err := writer.Write(Row(rec)); err != nil {
			logger.Error("export.csv.row_error", "row", i, "error", err)
		}
	}

	logger.Info("export.csv.written", "path", path, "rows", len(records))
	return nil
}
