// Package checkpoint persists periodic interpreter snapshots to an
// on-disk key/value store, so a long-running interpretation can be
// inspected without re-running every prior step. The package has no
// operation that resumes a run from a record, and a Record keeps only the
// RNA word count and the last few words, not the whole RNA log.
//
// Grounded on kortschak-ins's cmd/ins/blast.go (kv.Create/db.Set) and
// cmd/audit-ins-db/audit.go (kv.Open/db.SeekFirst iteration), adapted
// from BLAST-hit records to interpreter run snapshots.
package checkpoint

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"modernc.org/kv"
)

// Record is one saved snapshot of an interpreter run.
type Record struct {
	RunID        string   `json:"run_id"`
	Step         int      `json:"step"`
	SequenceText string   `json:"sequence_text"`
	RNAWordCount int      `json:"rna_word_count"`
	LastRNAWords []string `json:"last_rna_words"`
}

// order matches the store's own big-endian key convention (see
// kortschak-ins's internal/store key encoders).
var order = binary.BigEndian

// Store wraps a modernc.org/kv database keyed by (RunID, Step).
type Store struct {
	db *kv.DB
}

// Create opens (creating if absent) a checkpoint store at path, ordering
// keys by RunID then Step so SeekFirst/Next replay a run's checkpoints in
// step order.
func Create(path string) (*Store, error) {
	db, err := kv.Create(path, &kv.Options{Compare: compareKeys})
	if err != nil {
		db, err = kv.Open(path, &kv.Options{Compare: compareKeys})
	}
	if err != nil {
		return nil, fmt.Errorf("checkpoint: opening store at %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes rec under its (RunID, Step) key, overwriting any existing
// checkpoint at that key.
func (s *Store) Save(rec Record) error {
	key := encodeKey(rec.RunID, rec.Step)
	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("checkpoint: marshaling record: %w", err)
	}
	if err := s.db.Set(key, value); err != nil {
		return fmt.Errorf("checkpoint: writing record: %w", err)
	}
	return nil
}

// Latest returns the highest-step checkpoint recorded for runID, or
// ok=false if none exist.
func (s *Store) Latest(runID string) (rec Record, ok bool, err error) {
	it, seekErr := s.db.SeekFirst()
	if seekErr != nil {
		if seekErr == io.EOF {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("checkpoint: seeking store: %w", seekErr)
	}
	for {
		k, v, nextErr := it.Next()
		if nextErr != nil {
			if nextErr == io.EOF {
				break
			}
			return Record{}, false, fmt.Errorf("checkpoint: iterating store: %w", nextErr)
		}
		gotRunID, _ := decodeKey(k)
		if gotRunID != runID {
			continue
		}
		var candidate Record
		if err := json.Unmarshal(v, &candidate); err != nil {
			return Record{}, false, fmt.Errorf("checkpoint: unmarshaling record: %w", err)
		}
		if !ok || candidate.Step > rec.Step {
			rec, ok = candidate, true
		}
	}
	return rec, ok, nil
}

func encodeKey(runID string, step int) []byte {
	var buf bytes.Buffer
	buf.WriteString(runID)
	buf.WriteByte(0)
	var stepBytes [8]byte
	order.PutUint64(stepBytes[:], uint64(step))
	buf.Write(stepBytes[:])
	return buf.Bytes()
}

func decodeKey(k []byte) (runID string, step int) {
	sep := bytes.IndexByte(k, 0)
	if sep < 0 {
		return "", 0
	}
	runID = string(k[:sep])
	rest := k[sep+1:]
	if len(rest) < 8 {
		return runID, 0
	}
	return runID, int(order.Uint64(rest))
}

func compareKeys(a, b []byte) int {
	return bytes.Compare(a, b)
}
