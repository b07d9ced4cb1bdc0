package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxscout/market"
)

func sampleEntry(instrument string) Entry {
	return Entry{
		Instrument:  instrument,
		Direction:   market.Buy,
		EntryPrice:  1.10500,
		StopPrice:   1.10430,
		TargetPrice: 1.10675,
		RewardRatio: 2.5,
		Probability: 85,
		Reason:      "reversal: demand zone retest",
	}
}

func TestJSONFileMissingStoreIsEmpty(t *testing.T) {
	t.Parallel()

	j := NewJSONFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Empty(t, j.Entries())
	assert.Equal(t, 0, j.Stats().Count)
}

func TestJSONFileCorruptStoreIsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	j := NewJSONFile(path)
	assert.Empty(t, j.Entries())
}

func TestJSONFileRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.json")

	j := NewJSONFile(path)
	instruments := []string{"EUR_USD", "GBP_USD", "AUD_USD"}
	for _, in := range instruments {
		require.NoError(t, j.Append(sampleEntry(in)))
	}

	reloaded := NewJSONFile(path)
	got := reloaded.Entries()
	require.Len(t, got, len(instruments))

	for i, in := range instruments {
		assert.Equal(t, in, got[i].Instrument)
		assert.Equal(t, market.Buy, got[i].Direction)
		assert.InDelta(t, 1.10500, got[i].EntryPrice, 1e-9)
		assert.InDelta(t, 2.5, got[i].RewardRatio, 1e-9)
		assert.Equal(t, 85, got[i].Probability)
		assert.NotEmpty(t, got[i].ID)
		assert.False(t, got[i].CreatedAt.IsZero())
	}
}

func TestJSONFileAppendSetsTimestampAndID(t *testing.T) {
	t.Parallel()

	j := NewJSONFile(filepath.Join(t.TempDir(), "journal.json"))
	before := time.Now().UTC()
	require.NoError(t, j.Append(sampleEntry("EUR_USD")))

	got := j.Entries()
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].CreatedAt.Before(before))
}

func TestJSONFileKeepsExistingEntriesOnAppend(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "journal.json")

	j := NewJSONFile(path)
	require.NoError(t, j.Append(sampleEntry("EUR_USD")))

	// A second handle picks up the first entry and appends after it.
	j2 := NewJSONFile(path)
	require.NoError(t, j2.Append(sampleEntry("GBP_USD")))

	got := NewJSONFile(path).Entries()
	require.Len(t, got, 2)
	assert.Equal(t, "EUR_USD", got[0].Instrument)
	assert.Equal(t, "GBP_USD", got[1].Instrument)
}

func TestJSONFileMemoryAuthoritativeOnWriteFailure(t *testing.T) {
	t.Parallel()

	// Point the store at a directory so the rename fails.
	dir := t.TempDir()
	j := NewJSONFile(dir)

	err := j.Append(sampleEntry("EUR_USD"))
	assert.Error(t, err)
	assert.Len(t, j.Entries(), 1)
}

func TestStatsString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "no signals recorded", Stats{}.String())
	assert.Equal(t, "signals recorded: 3", Stats{Count: 3}.String())
}

func TestOpenUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := Open("parquet", "x")
	assert.Error(t, err)
}
