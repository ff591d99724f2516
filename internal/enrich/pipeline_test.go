package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattgrange/winescout/internal/entity"
	"github.com/mattgrange/winescout/internal/menu"
)

type fixedPages struct {
	pages map[int]string
}

func (f fixedPages) ExtractPages(context.Context, string) (map[int]string, error) {
	return f.pages, nil
}

type fixedParser struct {
	byText map[string][]entity.WineRecord
}

func (f fixedParser) ParseWineList(_ context.Context, text string) []entity.WineRecord {
	return f.byText[text]
}

type fixedLookup struct{}

func (fixedLookup) Lookup(context.Context, entity.WineRecord) *entity.MarketMatch {
	return &entity.MarketMatch{
		MatchedName: "Acme Red", Rating: "4.2",
		MarketPrice: "20.00", PriceRatio: "2.00",
	}
}

// Two-page document: page 1 yields one wine, page 2 yields none. The merged
// table has one row and enrichment keeps it one row with the computed ratio.
func TestMenuToEnrichmentPipeline(t *testing.T) {
	assembler := menu.NewAssembler(
		fixedPages{pages: map[int]string{1: "page one", 2: "page two"}},
		fixedParser{byText: map[string][]entity.WineRecord{
			"page one": {{Producer: "Acme", Name: "Red", Price: "40"}},
			"page two": {},
		}},
		nil,
	)

	records, err := assembler.BuildMenu(context.Background(), "menu.pdf", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)

	runner := NewBatchRunner(fixedLookup{}, Config{}, nil).WithSleep(func(time.Duration) {})
	enriched := runner.Enrich(context.Background(), records)

	require.Len(t, enriched, 1)
	assert.Equal(t, "Acme", enriched[0].Producer)
	assert.Equal(t, "40", enriched[0].Price)
	assert.Equal(t, "4.2", enriched[0].Match.Rating)
	assert.Equal(t, "2.00", enriched[0].Match.PriceRatio)
}
