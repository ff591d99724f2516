package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mattgrange/winescout/internal/entity"
)

func sampleEnriched() entity.EnrichedRecord {
	return entity.EnrichedRecord{
		WineRecord: entity.WineRecord{
			ID: "7", Producer: "Acme", Name: "Rosso", MainType: "RED",
			Region: "Tuscany", Country: "Italy", Vintage: "2020",
			Price: "40", Size: "bottle",
		},
		Match: entity.MarketMatch{
			MatchedName: "Acme Rosso Riserva", DetailLink: "https://example.com/w/1",
			MatchedCountry: "Italy", MatchedRegion: "Tuscany",
			Rating: "4.2", NumRatings: "1543",
			MarketPrice: "20.00", PriceRatio: "2.00",
			FoodPairings: []string{"Beef", "Pasta"},
		},
	}
}

func TestRowMatchesHeaders(t *testing.T) {
	row := Row(sampleEnriched())
	require.Len(t, row, len(Headers()))

	byHeader := map[string]string{}
	for i, h := range Headers() {
		byHeader[h] = row[i]
	}
	assert.Equal(t, "40", byHeader["Menu Price"], "menu price column renamed from price")
	assert.Equal(t, "20.00", byHeader["Market Price"])
	assert.Equal(t, "2.00", byHeader["Price Ratio"])
	assert.Equal(t, "Beef, Pasta", byHeader["Food Pairings"])
	for _, h := range Headers() {
		assert.NotContains(t, h, "_", "presentation headers are underscore-free")
	}
}

func TestPairingsCell(t *testing.T) {
	m := sampleEnriched().Match
	assert.Equal(t, "Beef, Pasta", PairingsCell(m))

	m.FoodPairings = nil
	assert.Equal(t, "", PairingsCell(m), "found wine with no pairings renders empty")

	m.MatchedName = "N/A"
	assert.Equal(t, "N/A", PairingsCell(m), "not-found row keeps the marker")
}

func TestEnrichedXLSX(t *testing.T) {
	svc := NewService(nil)
	data, err := svc.EnrichedXLSX([]entity.EnrichedRecord{sampleEnriched()})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Wines")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Headers(), rows[0])
	assert.Equal(t, "Acme Rosso Riserva", rows[1][10])
}
