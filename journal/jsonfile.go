package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rustyeddy/fxscout/pkg/id"
)

// JSONFile persists the journal as a single JSON array, rewritten through a
// temp file on every append so a crashed write never corrupts the store.
type JSONFile struct {
	mu      sync.Mutex
	path    string
	entries []Entry
}

// NewJSONFile opens the store at path. A missing or unparseable file reads
// back as an empty journal.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{
		path:    path,
		entries: loadJSON(path),
	}
}

func loadJSON(path string) []Entry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt store reads as empty; decisions must keep flowing.
		return nil
	}
	return entries
}

func (j *JSONFile) Append(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.ID == "" {
		e.ID = id.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	j.entries = append(j.entries, e)

	return j.save()
}

func (j *JSONFile) save() error {
	data, err := json.MarshalIndent(j.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}

	tmp := j.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	if err := os.Rename(tmp, j.path); err != nil {
		return fmt.Errorf("replace journal: %w", err)
	}
	return nil
}

func (j *JSONFile) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *JSONFile) Stats() Stats {
	j.mu.Lock()
	defer j.mu.Unlock()

	return Stats{Count: len(j.entries)}
}

func (j *JSONFile) Close() error { return nil }
