package enrich

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattgrange/winescout/internal/entity"
)

// scriptedLookup returns a canned match or nil per call, in order.
type scriptedLookup struct {
	script []bool // true = hit, false = miss
	calls  int
}

func (s *scriptedLookup) Lookup(_ context.Context, rec entity.WineRecord) *entity.MarketMatch {
	hit := false
	if s.calls < len(s.script) {
		hit = s.script[s.calls]
	}
	s.calls++
	if !hit {
		return nil
	}
	return &entity.MarketMatch{
		MatchedName: "match for " + rec.Name,
		Rating:      "4.2",
		MarketPrice: "20.00",
		PriceRatio:  "2.00",
	}
}

// sleepRecorder captures every wait the runner asks for.
type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.waits = append(s.waits, d)
}

func makeRecords(n int) []entity.WineRecord {
	records := make([]entity.WineRecord, n)
	for i := range records {
		records[i] = entity.WineRecord{Name: fmt.Sprintf("wine-%d", i), Price: "40"}
	}
	return records
}

func TestEnrich_RowCountAndOrderPreserved(t *testing.T) {
	lookup := &scriptedLookup{script: []bool{true, false, true, false, false}}
	rec := &sleepRecorder{}
	runner := NewBatchRunner(lookup, Config{}, nil).WithSleep(rec.sleep)

	records := makeRecords(5)
	enriched := runner.Enrich(context.Background(), records)

	require.Len(t, enriched, 5)
	for i := range enriched {
		assert.Equal(t, records[i].Name, enriched[i].Name, "row %d reordered", i)
	}
	assert.Equal(t, "match for wine-0", enriched[0].Match.MatchedName)
	assert.Equal(t, "N/A", enriched[1].Match.MatchedName)
	assert.Equal(t, "N/A", enriched[1].Match.PriceRatio)
	assert.Nil(t, enriched[1].Match.FoodPairings)
}

func TestEnrich_CooldownFiresOnceAfterFiveConsecutiveMisses(t *testing.T) {
	// calls 1-2 hit, calls 3-7 miss, call 8 hits again
	lookup := &scriptedLookup{script: []bool{true, true, false, false, false, false, false, true}}
	rec := &sleepRecorder{}
	cfg := Config{
		PacingDelay:  500 * time.Millisecond,
		MaxFailures:  5,
		CooldownWait: 3 * time.Minute,
	}
	runner := NewBatchRunner(lookup, cfg, nil).WithSleep(rec.sleep)

	enriched := runner.Enrich(context.Background(), makeRecords(8))
	require.Len(t, enriched, 8)

	cooldowns := 0
	for _, w := range rec.waits {
		if w == cfg.CooldownWait {
			cooldowns++
		}
	}
	assert.Equal(t, 1, cooldowns, "cooldown must fire exactly once")

	// the cooldown happens immediately after the 5th consecutive miss
	// (call 7): 6 pacing waits precede it
	idx := -1
	for i, w := range rec.waits {
		if w == cfg.CooldownWait {
			idx = i
		}
	}
	assert.Equal(t, 6, idx)
}

func TestEnrich_CounterResetsOnSuccess(t *testing.T) {
	// 4 misses, a hit, then 4 more misses: never 5 consecutive, no cooldown
	lookup := &scriptedLookup{script: []bool{false, false, false, false, true, false, false, false, false}}
	rec := &sleepRecorder{}
	cfg := Config{
		PacingDelay:  500 * time.Millisecond,
		MaxFailures:  5,
		CooldownWait: 3 * time.Minute,
	}
	runner := NewBatchRunner(lookup, cfg, nil).WithSleep(rec.sleep)

	runner.Enrich(context.Background(), makeRecords(9))
	for _, w := range rec.waits {
		assert.NotEqual(t, cfg.CooldownWait, w, "no cooldown expected")
	}
}

func TestEnrich_PacingLowerBound(t *testing.T) {
	lookup := &scriptedLookup{script: []bool{true, true, true, true}}
	rec := &sleepRecorder{}
	cfg := Config{PacingDelay: 510 * time.Millisecond, MaxFailures: 5, CooldownWait: time.Minute}
	runner := NewBatchRunner(lookup, cfg, nil).WithSleep(rec.sleep)

	runner.Enrich(context.Background(), makeRecords(4))

	var total time.Duration
	pacingWaits := 0
	for _, w := range rec.waits {
		if w == cfg.PacingDelay {
			pacingWaits++
		}
		total += w
	}
	assert.Equal(t, 4, pacingWaits, "one pacing wait per lookup")
	assert.GreaterOrEqual(t, total, 4*cfg.PacingDelay)
}

func TestEnrich_EmptyInput(t *testing.T) {
	lookup := &scriptedLookup{}
	runner := NewBatchRunner(lookup, Config{}, nil).WithSleep(func(time.Duration) {})

	enriched := runner.Enrich(context.Background(), nil)
	assert.NotNil(t, enriched)
	assert.Empty(t, enriched)
	assert.Zero(t, lookup.calls)
}
