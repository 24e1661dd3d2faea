package facade

import (
	"encoding/binary"
	"fmt"

	"github.com/jony86s/chainrocks/pkg/kv"
)

// ChainrocksFacade adapts kv.Database to AbstractDatabase for a benchmark
// harness. Keys are encoded big-endian so that the numeric key order
// matches the backend's byte-key order.
type ChainrocksFacade struct {
	db      *kv.Database
	pending map[string][]byte
}

// NewChainrocksFacade wraps db.
func NewChainrocksFacade(db *kv.Database) *ChainrocksFacade {
	return &ChainrocksFacade{db: db, pending: make(map[string][]byte)}
}

func encodeKey(key uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, key)
	return b
}

// Put buffers value under key until Write is called. ctx is accepted to
// satisfy AbstractDatabase but is unused.
func (f *ChainrocksFacade) Put(key uint64, value []byte, ctx any) error {
	f.pending[string(encodeKey(key))] = value
	return nil
}

// Swap atomically exchanges the values stored under two keys, applied
// immediately (not buffered), matching the original benchmark's semantics
// of swap as an eager operation distinct from put.
func (f *ChainrocksFacade) Swap(accountA, accountB uint64) error {
	keyA, keyB := encodeKey(accountA), encodeKey(accountB)

	valueA, err := f.db.Get(keyA)
	if err != nil {
		return fmt.Errorf("facade: swap: read account %d: %w", accountA, err)
	}
	valueB, err := f.db.Get(keyB)
	if err != nil {
		return fmt.Errorf("facade: swap: read account %d: %w", accountB, err)
	}

	return f.db.WriteBatch(map[string][]byte{
		string(keyA): valueB,
		string(keyB): valueA,
	}, nil)
}

// Write flushes every buffered Put as a single atomic write batch.
func (f *ChainrocksFacade) Write() error {
	if len(f.pending) == 0 {
		return nil
	}
	if err := f.db.PutBatch(f.pending); err != nil {
		return err
	}
	f.pending = make(map[string][]byte)
	return nil
}

var _ AbstractDatabase = (*ChainrocksFacade)(nil)
