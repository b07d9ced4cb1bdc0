package journal

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/fxscout/pkg/id"
)

// SQLite persists the journal in an append-only signals table. The full
// sequence is loaded on open and kept in memory; reads never touch the
// database afterwards.
type SQLite struct {
	mu      sync.Mutex
	db      *sql.DB
	entries []Entry
}

// NewSQLite opens (or creates) the store at path. A corrupt database is set
// aside with a .corrupt suffix and replaced by a fresh empty store, matching
// the load-never-fails contract of the JSON backend.
func NewSQLite(path string) (*SQLite, error) {
	db, err := openSignalDB(path)
	if err != nil {
		// Preserve the unreadable file for inspection, then start clean.
		if renameErr := os.Rename(path, path+".corrupt"); renameErr != nil {
			return nil, fmt.Errorf("open journal db: %w", err)
		}
		if db, err = openSignalDB(path); err != nil {
			return nil, fmt.Errorf("recreate journal db: %w", err)
		}
	}

	j := &SQLite{db: db}
	j.entries = loadSignals(db)
	return j, nil
}

func openSignalDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func loadSignals(db *sql.DB) []Entry {
	rows, err := db.Query(`
		SELECT id, instrument, direction, entry_price, stop_price, target_price,
		       reward_ratio, probability, reason, duration, created_at
		FROM signals ORDER BY rowid`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.Instrument, &e.Direction, &e.EntryPrice, &e.StopPrice,
			&e.TargetPrice, &e.RewardRatio, &e.Probability, &e.Reason,
			&e.Duration, &e.CreatedAt,
		); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

func (j *SQLite) Append(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.ID == "" {
		e.ID = id.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	j.entries = append(j.entries, e)

	_, err := j.db.Exec(`
		INSERT INTO signals
		(id, instrument, direction, entry_price, stop_price, target_price,
		 reward_ratio, probability, reason, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Instrument, string(e.Direction), e.EntryPrice, e.StopPrice,
		e.TargetPrice, e.RewardRatio, e.Probability, e.Reason, e.Duration,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append signal: %w", err)
	}
	return nil
}

func (j *SQLite) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *SQLite) Stats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()

	return Stats{Count: len(j.entries)}
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
