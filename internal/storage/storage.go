package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/hailam/bitmagic/internal/board"
)

// Storage keys
const (
	keyMagicPrefix = "magic/"
	keySeed        = "seed"
)

// MagicRecord is one magic multiplier found by the offline search.
type MagicRecord struct {
	Slider   board.Slider `json:"slider"`
	Square   board.Square `json:"square"`
	Magic    uint64       `json:"magic"`
	Bits     int          `json:"bits"`
	Attempts int          `json:"attempts"`
	FoundAt  time.Time    `json:"found_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the cache in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the cache in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir).
		WithInMemory(dir == "").
		WithCompression(options.ZSTD)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening magic cache: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func magicKey(slider board.Slider, sq board.Square) []byte {
	return []byte(fmt.Sprintf("%s%s/%02d", keyMagicPrefix, slider, sq))
}

// SaveMagic stores a search result, replacing any earlier one for the same
// slider and square.
func (s *Storage) SaveMagic(rec *MagicRecord) error {
	if rec.FoundAt.IsZero() {
		rec.FoundAt = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(magicKey(rec.Slider, rec.Square), data)
	})
}

// LoadMagic returns the stored result for slider on sq, or nil if the
// square has not been searched yet.
func (s *Storage) LoadMagic(slider board.Slider, sq board.Square) (*MagicRecord, error) {
	var rec *MagicRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(magicKey(slider, sq))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			rec = &MagicRecord{}
			return json.Unmarshal(val, rec)
		})
	})

	return rec, err
}

// Magics returns every stored result, ordered by slider then square.
func (s *Storage) Magics() ([]MagicRecord, error) {
	var recs []MagicRecord
	prefix := []byte(keyMagicPrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec MagicRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			recs = append(recs, rec)
		}
		return nil
	})

	return recs, err
}

// Reset drops every stored result, for example after the seed changed.
func (s *Storage) Reset() error {
	return s.db.DropPrefix([]byte(keyMagicPrefix), []byte(keySeed))
}

// SaveSeed records the PRNG seed the stored results were searched with.
func (s *Storage) SaveSeed(seed uint32) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySeed), []byte(fmt.Sprint(seed)))
	})
}

// LoadSeed returns the recorded seed and whether one was stored.
func (s *Storage) LoadSeed() (uint32, bool, error) {
	var (
		seed  uint32
		found bool
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySeed))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			found = true
			_, err := fmt.Sscan(string(val), &seed)
			return err
		})
	})

	return seed, found, err
}
