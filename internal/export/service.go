package export

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mattgrange/winescout/constants"
	"github.com/mattgrange/winescout/internal/entity"
)

// Headers for the enriched table at the presentation boundary: title-cased,
// underscore-free, with the menu price renamed to distinguish it from the
// scraped market price.
var headers = []string{
	"ID",
	"Producer",
	"Name",
	"Type",
	"Main Type",
	"Region",
	"Country",
	"Vintage",
	"Menu Price",
	"Size",
	"Matched Name",
	"Detail Link",
	"Matched Country",
	"Matched Region",
	"Rating",
	"Num Ratings",
	"Market Price",
	"Price Ratio",
	"Food Pairings",
}

// Service renders enriched record tables to workbook bytes.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// EnrichedXLSX returns an XLSX workbook (as bytes) with one row per enriched
// record, in input order.
func (s *Service) EnrichedXLSX(records []entity.EnrichedRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Wines"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defaultIndex, _ := f.GetSheetIndex("Sheet1"); defaultIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		row := i + 2
		for col, v := range Row(rec) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen the text-heavy columns.
	_ = f.SetColWidth(sheet, "B", "C", 28) // producer, name
	_ = f.SetColWidth(sheet, "K", "K", 32) // matched name
	_ = f.SetColWidth(sheet, "L", "L", 48) // link
	_ = f.SetColWidth(sheet, "S", "S", 40) // pairings

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// Headers returns the presentation column names in order.
func Headers() []string {
	out := make([]string, len(headers))
	copy(out, headers)
	return out
}

// Row flattens one enriched record into presentation order, matching
// Headers.
func Row(rec entity.EnrichedRecord) []string {
	return []string{
		rec.ID,
		rec.Producer,
		rec.Name,
		rec.Type,
		rec.MainType,
		rec.Region,
		rec.Country,
		rec.Vintage,
		rec.Price, // menu price
		rec.Size,
		rec.Match.MatchedName,
		rec.Match.DetailLink,
		rec.Match.MatchedCountry,
		rec.Match.MatchedRegion,
		rec.Match.Rating,
		rec.Match.NumRatings,
		rec.Match.MarketPrice,
		rec.Match.PriceRatio,
		PairingsCell(rec.Match),
	}
}

// PairingsCell joins the pairing labels for tabular output. A not-found row
// keeps the "N/A" marker so the column shape survives failed lookups; a found
// wine with no listed pairings renders empty.
func PairingsCell(m entity.MarketMatch) string {
	if m.MatchedName == constants.NotAvailable {
		return constants.NotAvailable
	}
	return strings.Join(m.FoodPairings, ", ")
}
