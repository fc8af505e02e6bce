// Package progress implements the durable per-entry translation record
// that makes interrupted runs resumable. Results are keyed by a stable
// identifier derived from the entry's source texts, not by file position,
// so a re-parsed catalog with reordered entries still matches its records.
// The on-disk format is YAML: human-diffable and inspectable.
package progress

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Status is the lifecycle state of a recorded translation.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Result is one recorded translation outcome. Source texts are stored
// alongside the translations so progress files are readable on their own.
type Result struct {
	Singular            string    `yaml:"singular"`
	Plural              string    `yaml:"plural,omitempty"`
	SingularTranslation string    `yaml:"singular_translation,omitempty"`
	PluralTranslation   string    `yaml:"plural_translation,omitempty"`
	Status              Status    `yaml:"status"`
	Attempts            int       `yaml:"attempts,omitempty"`
	Err                 string    `yaml:"error,omitempty"`
	UpdatedAt           time.Time `yaml:"updated_at,omitempty"`
}

// Key derives the stable store identifier for an entry's source texts.
// The NUL separator keeps (a, b) and (ab, "") distinct.
func Key(singular, plural string) string {
	sum := sha256.Sum256([]byte(singular + "\x00" + plural))
	return hex.EncodeToString(sum[:16])
}

// document is the on-disk store layout.
type document struct {
	Version int               `yaml:"version"`
	Entries map[string]Result `yaml:"entries"`
}

// Store is the durable mapping from entry key to Result. Every Put
// persists before returning, so a kill after Put never loses the record.
type Store struct {
	path    string
	results map[string]Result
}

// Load reads the store at path. A missing file yields an empty store;
// an unreadable or malformed file is an error, since resumability can no
// longer be guaranteed.
func Load(path string) (*Store, error) {
	s := &Store{path: path, results: make(map[string]Result)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading progress file %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing progress file %s: %w", path, err)
	}
	if doc.Entries != nil {
		s.results = doc.Entries
	}
	return s, nil
}

// Path returns the store's on-disk location.
func (s *Store) Path() string { return s.path }

// Len returns the number of recorded results.
func (s *Store) Len() int { return len(s.results) }

// Get returns the recorded result for key, if any.
func (s *Store) Get(key string) (Result, bool) {
	r, ok := s.results[key]
	return r, ok
}

// Done reports whether key has a completed result.
func (s *Store) Done(key string) bool {
	r, ok := s.results[key]
	return ok && r.Status == StatusDone
}

// Put records a result and durably persists the store before returning.
// A completed result is never overwritten.
func (s *Store) Put(key string, r Result) error {
	if existing, ok := s.results[key]; ok && existing.Status == StatusDone {
		return nil
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now().UTC()
	}
	s.results[key] = r
	return s.flush()
}

// flush atomically rewrites the store file: the document goes to a temp
// file in the same directory, is synced, then renamed over the target.
// A kill at any point leaves either the old or the new complete file.
func (s *Store) flush() error {
	doc := document{Version: 1, Entries: s.results}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding progress: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".progress-*.yaml")
	if err != nil {
		return fmt.Errorf("writing progress file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing progress file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing progress file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing progress file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing progress file: %w", err)
	}
	return nil
}
