// Package archive keeps a local history of completed generations in a
// Badger key-value store.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alkime/blogsmith/internal/tone"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	keyPrefix = "gen/"
	// idPrefix indexes entry IDs to their time-ordered keys.
	idPrefix = "id/"
)

// ErrNotFound is returned by Get for unknown entry IDs.
var ErrNotFound = errors.New("archive entry not found")

// Entry is one archived post.
type Entry struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Topic       string    `json:"topic"`
	Tone        tone.Tone `json:"tone"`
	Content     string    `json:"content"`
	WordCount   int       `json:"wordCount"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Store is a Badger-backed archive. Keys sort by generation time, so
// iteration order is chronological.
type Store struct {
	db *badger.DB
}

// Open opens or creates an archive in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLoggingLevel(badger.ERROR)

	return open(opts)
}

// OpenInMemory opens an archive that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR)

	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func entryKey(e Entry) []byte {
	return fmt.Appendf(nil, "%s%020d/%s", keyPrefix, e.GeneratedAt.UnixNano(), e.ID)
}

func idKey(id string) []byte {
	return []byte(idPrefix + id)
}

// Put stores e, assigning an ID when it has none. It returns the stored entry.
func (s *Store) Put(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.GeneratedAt.IsZero() {
		e.GeneratedAt = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to marshal archive entry: %w", err)
	}

	key := entryKey(e)
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return err
		}
		return txn.Set(idKey(e.ID), key)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to store archive entry: %w", err)
	}

	return e, nil
}

// List returns up to limit entries, newest first. A non-positive limit
// returns everything. When tones are given only entries in those tones are
// returned.
func (s *Store) List(limit int, tones ...tone.Tone) ([]Entry, error) {
	match := func(e Entry) bool {
		if len(tones) == 0 {
			return true
		}
		for _, t := range tones {
			if e.Tone == t {
				return true
			}
		}
		return false
	}

	var entries []Entry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(keyPrefix)
		opts.PrefetchSize = 10
		if limit > 0 && len(tones) == 0 {
			opts.PrefetchSize = limit
		}

		it := txn.NewIterator(opts)
		defer it.Close()

		seek := append([]byte(keyPrefix), 0xff)
		for it.Seek(seek); it.Valid(); it.Next() {
			e, err := decodeItem(it.Item())
			if err != nil {
				return err
			}
			if !match(e) {
				continue
			}

			entries = append(entries, e)
			if limit > 0 && len(entries) == limit {
				return nil
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Get returns the entry with the given ID.
func (s *Store) Get(id string) (Entry, error) {
	var e Entry

	err := s.db.View(func(txn *badger.Txn) error {
		ref, err := txn.Get(idKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		key, err := ref.ValueCopy(nil)
		if err != nil {
			return err
		}

		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		e, err = decodeItem(item)
		return err
	})
	if err != nil {
		return Entry{}, err
	}

	return e, nil
}

func decodeItem(item *badger.Item) (Entry, error) {
	var e Entry
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &e)
	})
	if err != nil {
		return Entry{}, fmt.Errorf("failed to decode %s: %w", item.Key(), err)
	}

	return e, nil
}
