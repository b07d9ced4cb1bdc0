// Package journal keeps a durable, append-only record of trade decisions.
// Entries are never mutated or removed once written; a missing or unreadable
// store reads back as empty so evaluation keeps running.
package journal

import (
	"fmt"
	"time"

	"github.com/rustyeddy/fxscout/market"
)

// Entry is one persisted trade decision.
type Entry struct {
	ID          string           `json:"id"`
	Instrument  string           `json:"instrument"`
	Direction   market.Direction `json:"direction"`
	EntryPrice  float64          `json:"entry"`
	StopPrice   float64          `json:"stop"`
	TargetPrice float64          `json:"target"`
	RewardRatio float64          `json:"reward_ratio"`
	Probability int              `json:"probability"`
	Reason      string           `json:"reason"`
	Duration    int              `json:"duration"` // estimated bars to target, 0 when unset
	CreatedAt   time.Time        `json:"created_at"`
}

// Journal is an append-only record of trade decisions. Append attaches the
// creation timestamp (and an ID when missing) and persists the entry; the
// in-memory sequence stays authoritative even when persistence fails.
// Implementations serialize appends so concurrent instrument scans cannot
// interleave writes.
type Journal interface {
	Append(Entry) error
	Entries() []Entry
	Stats() Stats
	Close() error
}

// Stats summarizes the journal. Win/loss analytics would need execution
// feedback the engine does not receive, so count is all there is.
type Stats struct {
	Count int
}

func (s Stats) String() string {
	if s.Count == 0 {
		return "no signals recorded"
	}
	return fmt.Sprintf("signals recorded: %d", s.Count)
}

// Open returns the journal backend named by kind: "json" or "sqlite".
func Open(kind, path string) (Journal, error) {
	switch kind {
	case "json":
		return NewJSONFile(path), nil
	case "sqlite":
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown journal type %q (supported: json, sqlite)", kind)
	}
}
