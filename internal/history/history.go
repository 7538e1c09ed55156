// Package history remembers submitted search terms and suggests them back
// while typing. Only the terms are stored, never results.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/lithammer/fuzzysearch/fuzzy"
	bolt "go.etcd.io/bbolt"
)

var bucketQueries = []byte("queries")

const defaultLimit = 50

// Entry is one remembered search term
type Entry struct {
	Query    string    `json:"query"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}

// Store keeps recent queries in BoltDB with an in-memory copy for reads
type Store struct {
	db    *bolt.DB
	limit int
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]Entry // normalized query -> entry
}

// Open opens (or creates) the history database at path. An empty path keeps
// history in memory only.
func Open(path string, limit int) (*Store, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	s := &Store{limit: limit, now: time.Now, entries: make(map[string]Entry)}
	if path == "" {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketQueries)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var e Entry
			if json.Unmarshal(v, &e) == nil {
				s.entries[string(k)] = e
			}
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Record remembers query as just used
func (s *Store) Record(query string) error {
	key := normalize(query)
	if key == "" {
		return nil
	}

	s.mu.Lock()
	e := s.entries[key]
	e.Query = strings.TrimSpace(query)
	e.Count++
	e.LastUsed = s.now()
	s.entries[key] = e
	evicted := s.evictLocked()
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketQueries)
		for _, k := range evicted {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return b.Put([]byte(key), data)
	})
}

// evictLocked drops the least recently used entries beyond the limit
func (s *Store) evictLocked() []string {
	if len(s.entries) <= s.limit {
		return nil
	}
	ordered := s.sortedLocked()
	var evicted []string
	for _, e := range ordered[s.limit:] {
		k := normalize(e.Query)
		delete(s.entries, k)
		evicted = append(evicted, k)
	}
	return evicted
}

// sortedLocked returns entries most recent first
func (s *Store) sortedLocked() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUsed.Equal(out[j].LastUsed) {
			return out[i].LastUsed.After(out[j].LastUsed)
		}
		return out[i].Query < out[j].Query
	})
	return out
}

// Recent returns up to n entries, most recent first
func (s *Store) Recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.sortedLocked()
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Suggest returns up to n remembered queries fuzzily matching input, closest
// first. Recency breaks ties. An exact match of input is left out.
func (s *Store) Suggest(input string, n int) []string {
	needle := normalize(input)
	if needle == "" {
		return nil
	}

	recent := s.Recent(0)
	queries := make([]string, len(recent))
	rank := make(map[string]int, len(recent))
	for i, e := range recent {
		queries[i] = e.Query
		rank[e.Query] = i
	}

	matches := fuzzy.RankFindNormalizedFold(needle, queries)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return rank[matches[i].Target] < rank[matches[j].Target]
	})

	var out []string
	for _, m := range matches {
		if normalize(m.Target) == needle {
			continue
		}
		out = append(out, m.Target)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
