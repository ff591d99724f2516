package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattgrange/winescout/internal/entity"
)

func TestSaveAndListRuns(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, "file:runs_test?mode=memory&cache=shared", nil)
	require.NoError(t, err)
	defer db.Close()

	records := []entity.EnrichedRecord{
		{
			WineRecord: entity.WineRecord{Name: "Rosso", Price: "40"},
			Match: entity.MarketMatch{
				MatchedName: "Acme Rosso", Rating: "4.2",
				MarketPrice: "20.00", PriceRatio: "2.00",
				FoodPairings: []string{"Beef"},
			},
		},
		{
			WineRecord: entity.WineRecord{Name: "Blanc"},
			Match:      entity.MarketMatch{MatchedName: "N/A", PriceRatio: "N/A"},
		},
	}

	repo := NewRunRepository(db, nil)
	runID, err := repo.SaveRun(ctx, "menu.pdf", time.Now().Add(-time.Minute), records)
	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", runID.String())

	runs, err := repo.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "menu.pdf", runs[0].SourcePath)
	assert.Equal(t, 2, runs[0].RowCount)

	var position int
	var pairings string
	row := db.QueryRowContext(ctx,
		`SELECT position, food_pairings FROM enriched_wine WHERE run_id = ? AND name = 'Rosso'`,
		runID.String())
	require.NoError(t, row.Scan(&position, &pairings))
	assert.Equal(t, 0, position)
	assert.Equal(t, "Beef", pairings)
}
