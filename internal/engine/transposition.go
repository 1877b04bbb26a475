package engine

import (
	"github.com/hailam/chessplay-opponent/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	BestMove board.Move // Best move found, or NoMove
	Score    int16      // Score (bounded by flag)
	Depth    int8       // Remaining plies when stored
	Flag     TTFlag     // Type of bound
	Age      uint8      // Search-number the entry was written during
}

// estimatedEntrySize approximates a map-resident TTEntry's footprint,
// including Go's hash-map bucket overhead, for turning a configured
// megabyte budget into a record-count capacity.
const estimatedEntrySize = 32

// TranspositionTable is a capacity-bounded hash table for storing search
// results, keyed directly by the 64-bit Zobrist key. Unlike a fixed
// direct-mapped array, it tracks its own record count so it can apply
// the age-based bulk eviction the engine's replacement policy requires.
type TranspositionTable struct {
	entries  map[uint64]TTEntry
	capacity int
	age      uint8

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table sized to hold
// roughly sizeMB megabytes of records.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	capacity := (sizeMB * 1024 * 1024) / estimatedEntrySize
	if capacity < 1 {
		capacity = 1
	}
	return &TranspositionTable{
		entries:  make(map[uint64]TTEntry, capacity),
		capacity: capacity,
	}
}

// Probe looks up a position in the transposition table.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++
	entry, ok := tt.entries[hash]
	if ok {
		tt.hits++
	}
	return entry, ok
}

// Store saves a position in the transposition table, evicting stale
// records first if the table is at capacity. Overflow is always
// resolved by eviction; Store never refuses an insertion.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	if _, exists := tt.entries[hash]; !exists && len(tt.entries) >= tt.capacity {
		tt.evictStale()
	}
	tt.entries[hash] = TTEntry{
		BestMove: bestMove,
		Score:    int16(score),
		Depth:    int8(depth),
		Flag:     flag,
		Age:      tt.age,
	}
}

// evictStale drops at least half of the entries whose age is older than
// current_age - 2, per the table's replacement policy. If no entry
// qualifies as stale, the table is left to grow past capacity rather
// than refuse the incoming insert.
func (tt *TranspositionTable) evictStale() {
	threshold := int(tt.age) - 2
	stale := make([]uint64, 0, len(tt.entries)/4)
	for k, e := range tt.entries {
		if int(e.Age) < threshold {
			stale = append(stale, k)
		}
	}
	if len(stale) == 0 {
		return
	}
	numEvict := (len(stale) + 1) / 2
	for i := 0; i < numEvict; i++ {
		delete(tt.entries, stale[i])
	}
}

// NewSearch increments the age counter for a new top-level search.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Clear empties the transposition table.
func (tt *TranspositionTable) Clear() {
	tt.entries = make(map[uint64]TTEntry, tt.capacity)
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of capacity used.
func (tt *TranspositionTable) HashFull() int {
	if tt.capacity == 0 {
		return 0
	}
	full := (len(tt.entries) * 1000) / tt.capacity
	if full > 1000 {
		full = 1000
	}
	return full
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the configured record capacity.
func (tt *TranspositionTable) Size() int {
	return tt.capacity
}

// Age returns the current search generation counter.
func (tt *TranspositionTable) Age() uint8 {
	return tt.age
}

// Snapshot returns a copy of every record currently held, for
// persisting to disk. Callers must not mutate the returned map's
// values (it is a copy, so mutation is harmless but pointless).
func (tt *TranspositionTable) Snapshot() map[uint64]TTEntry {
	out := make(map[uint64]TTEntry, len(tt.entries))
	for k, v := range tt.entries {
		out[k] = v
	}
	return out
}

// Load installs records loaded from disk, keeping existing in-memory
// entries when a key collides (the running search's data is fresher).
func (tt *TranspositionTable) Load(records map[uint64]TTEntry) {
	for k, v := range records {
		if _, exists := tt.entries[k]; !exists {
			tt.entries[k] = v
		}
	}
}

// AdjustScoreFromTT adjusts a score read from the transposition table.
// Mate scores are ply-distance-from-root, so they need adjusting by
// how deep into the tree the probing node is.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT adjusts a score for storage in the transposition table.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
