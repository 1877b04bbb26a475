// Package persist provides optional on-disk backing for the engine's
// transposition table, keyed by Zobrist position hash.
package persist

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessplay-opponent/internal/board"
	"github.com/hailam/chessplay-opponent/internal/engine"
)

// HashStore wraps a BadgerDB instance used to persist transposition
// table records across engine restarts. It never changes search
// semantics: a loaded record is still subject to the same depth/bound
// rules as one produced in-process this run.
type HashStore struct {
	db *badger.DB
}

// Open opens (creating if absent) the BadgerDB instance at path.
func Open(path string) (*HashStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &HashStore{db: db}, nil
}

// Close closes the underlying database.
func (h *HashStore) Close() error {
	if h.db == nil {
		return nil
	}
	return h.db.Close()
}

// recordSize is the wire size of one persisted TT record: the
// BestMove (uint16), Score (int16), Depth (int8), Flag (uint8), and
// Age (uint8), packed big-endian.
const recordSize = 7

func encodeRecord(e engine.TTEntry) []byte {
	buf := make([]byte, recordSize)
	binary.BigEndian.PutUint16(buf[0:2], uint16(e.BestMove))
	binary.BigEndian.PutUint16(buf[2:4], uint16(e.Score))
	buf[4] = byte(e.Depth)
	buf[5] = byte(e.Flag)
	buf[6] = e.Age
	return buf
}

func decodeRecord(buf []byte) (engine.TTEntry, bool) {
	if len(buf) != recordSize {
		return engine.TTEntry{}, false
	}
	return engine.TTEntry{
		BestMove: board.Move(binary.BigEndian.Uint16(buf[0:2])),
		Score:    int16(binary.BigEndian.Uint16(buf[2:4])),
		Depth:    int8(buf[4]),
		Flag:     engine.TTFlag(buf[5]),
		Age:      buf[6],
	}, true
}

// Save flushes every record in snapshot to disk, keyed by the 8-byte
// big-endian Zobrist key.
func (h *HashStore) Save(snapshot map[uint64]engine.TTEntry) error {
	wb := h.db.NewWriteBatch()
	defer wb.Cancel()

	keyBuf := make([]byte, 8)
	for key, entry := range snapshot {
		binary.BigEndian.PutUint64(keyBuf, key)
		if err := wb.Set(append([]byte(nil), keyBuf...), encodeRecord(entry)); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Load reads every record back from disk into a map keyed the same way
// the in-memory TT is keyed, ready for TranspositionTable.Load.
func (h *HashStore) Load() (map[uint64]engine.TTEntry, error) {
	out := make(map[uint64]engine.TTEntry)

	err := h.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			k := item.Key()
			if len(k) != 8 {
				continue
			}
			key := binary.BigEndian.Uint64(k)

			err := item.Value(func(val []byte) error {
				if entry, ok := decodeRecord(val); ok {
					out[key] = entry
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	return out, err
}
