package menu

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattgrange/winescout/internal/entity"
)

// WriteCSV saves the menu table so enrichment can run later against a
// reviewed copy.
func WriteCSV(path string, records []entity.WineRecord, logger *slog.Logger) error {
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

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range records {
		row := make([]string, len(Columns))
		for j, col := range Columns {
			row[j] = fieldValue(r, col)
		}
		if err := writer.Write(row); err != nil {
			logger.Error("menu.csv.row_error", "row", i, "error", err)
		}
	}

	logger.Info("menu.csv.written", "path", path, "rows", len(records))
	return nil
}

// ReadCSV loads a previously saved menu table. Unknown columns are ignored so
// hand-edited files with extra columns still load.
func ReadCSV(path string) ([]entity.WineRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	records := make([]entity.WineRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var r entity.WineRecord
		for j, col := range header {
			if j >= len(row) {
				break
			}
			applyColumn(&r, col, row[j])
		}
		records = append(records, r)
	}
	return records, nil
}

func applyColumn(r *entity.WineRecord, column, value string) {
	tmp := []entity.WineRecord{*r}
	if err := SetField(tmp, 0, column, value); err == nil {
		*r = tmp[0]
	}
}
