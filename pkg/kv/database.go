package kv

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jony86s/chainrocks/pkg/backend"
	"github.com/jony86s/chainrocks/pkg/datum"
	"github.com/jony86s/chainrocks/pkg/log"
	"github.com/jony86s/chainrocks/pkg/metrics"
	"github.com/jony86s/chainrocks/pkg/undo"
)

// Database is the transactional undoable key-value store. It owns a
// backend.Backend and an ordered stack of undo.UndoRecord; it is not safe
// for concurrent use by more than one goroutine at a time (see spec §5).
type Database struct {
	id       string
	backend  *backend.Backend
	stack    []*undo.UndoRecord
	revision int64
	log      zerolog.Logger
}

// New wraps b in a Database with an empty session stack. Every log line
// emitted by the returned Database carries its instance id, so that two
// Database values opened in the same process (tests, a benchmark harness
// cycling through data directories) are distinguishable in the log stream.
func New(b *backend.Backend) *Database {
	id := uuid.NewString()
	return &Database{
		id:      id,
		backend: b,
		log:     log.WithDatabase(id).With().Str("component", "kv").Logger(),
	}
}

// Revision returns the database's revision counter: the revision of the
// top-of-stack record while sessions are open, and zero before any session
// has been opened. Commit empties the stack without resetting the counter,
// so after a Commit it keeps the value it had before.
func (db *Database) Revision() int64 {
	return db.revision
}

// Stack returns a read-only snapshot of the current undo stack, oldest
// first.
func (db *Database) Stack() []undo.UndoRecord {
	out := make([]undo.UndoRecord, len(db.stack))
	for i, r := range db.stack {
		c := undo.NewRecord(r.Revision)
		for k := range r.NewKeys {
			c.NewKeys[k] = struct{}{}
		}
		for k, v := range r.ModifiedValues {
			c.ModifiedValues[k] = v
		}
		for k, v := range r.RemovedValues {
			c.RemovedValues[k] = v
		}
		out[i] = *c
	}
	return out
}

func (db *Database) top() *undo.UndoRecord {
	if len(db.stack) == 0 {
		return nil
	}
	return db.stack[len(db.stack)-1]
}

// recordPut tracks key's pre-image in the top record, if one is open and
// the key is not already tracked there.
func (db *Database) recordPut(key []byte) error {
	top := db.top()
	if top == nil {
		return nil
	}
	k := string(key)
	if top.Tracks(k) {
		return nil
	}
	d := datum.NewDatum(key)
	exists, err := db.backend.Exists(d)
	if err != nil {
		return err
	}
	if !exists {
		top.NewKeys[k] = struct{}{}
		return nil
	}
	cur, err := db.backend.Get(d)
	if err != nil {
		return err
	}
	top.ModifiedValues[k] = cur.Bytes()
	return nil
}

// recordRemove tracks key's removal in the top record, if one is open. It
// returns a *SessionLogicError if key was already removed within this
// session.
func (db *Database) recordRemove(key []byte) error {
	top := db.top()
	if top == nil {
		return nil
	}
	k := string(key)
	if top.IsRemoved(k) {
		return newDoubleRemoveError(k)
	}
	if top.IsNew(k) {
		delete(top.NewKeys, k)
		return nil
	}
	if preimage, ok := top.ModifiedValues[k]; ok {
		top.RemovedValues[k] = preimage
		delete(top.ModifiedValues, k)
		return nil
	}
	cur, err := db.backend.Get(datum.NewDatum(key))
	if err != nil {
		if errors.Is(err, backend.ErrKeyNotFound) {
			return nil
		}
		return err
	}
	top.RemovedValues[k] = cur.Bytes()
	return nil
}

// Put writes key/value, recording a reverse-delta in the open session (if
// any) before applying the write.
func (db *Database) Put(key, value []byte) error {
	if err := db.recordPut(key); err != nil {
		return err
	}
	return db.backend.Put(datum.NewDatum(key), datum.NewDatum(value))
}

// Remove deletes key, recording a reverse-delta in the open session (if
// any) before applying the delete. Removing an absent key outside a
// session is a no-op; a double-remove within one session returns
// *SessionLogicError.
func (db *Database) Remove(key []byte) error {
	if err := db.recordRemove(key); err != nil {
		metrics.SessionLogicErrorsTotal.Inc()
		return err
	}
	return db.backend.Remove(datum.NewDatum(key))
}

// PutBatch applies every key/value pair in kv as one atomic write, recording
// reverse-deltas for each key first.
func (db *Database) PutBatch(kv map[string][]byte) error {
	batch := make(map[string]datum.Datum, len(kv))
	for k, v := range kv {
		if err := db.recordPut([]byte(k)); err != nil {
			return err
		}
		batch[k] = datum.NewDatum(v)
	}
	return db.backend.PutBatch(batch)
}

// RemoveBatch deletes every key in keys as one atomic write, recording
// reverse-deltas for each key first.
func (db *Database) RemoveBatch(keys []string) error {
	if top := db.top(); top != nil {
		seen := make(map[string]struct{}, len(keys))
		for _, k := range keys {
			if _, dup := seen[k]; dup || top.IsRemoved(k) {
				metrics.SessionLogicErrorsTotal.Inc()
				return newDoubleRemoveError(k)
			}
			seen[k] = struct{}{}
		}
	}
	batch := make([]datum.Datum, 0, len(keys))
	for _, k := range keys {
		if err := db.recordRemove([]byte(k)); err != nil {
			metrics.SessionLogicErrorsTotal.Inc()
			return err
		}
		batch = append(batch, datum.NewDatumFromString(k))
	}
	return db.backend.RemoveBatch(batch)
}

// WriteBatch applies puts and removes together as one atomic write,
// recording reverse-deltas for both sides first.
func (db *Database) WriteBatch(puts map[string][]byte, removes []string) error {
	if top := db.top(); top != nil {
		seen := make(map[string]struct{}, len(removes))
		for _, k := range removes {
			if _, dup := seen[k]; dup || top.IsRemoved(k) {
				metrics.SessionLogicErrorsTotal.Inc()
				return newDoubleRemoveError(k)
			}
			seen[k] = struct{}{}
		}
	}
	putBatch := make(map[string]datum.Datum, len(puts))
	for k, v := range puts {
		if err := db.recordPut([]byte(k)); err != nil {
			return err
		}
		putBatch[k] = datum.NewDatum(v)
	}
	removeBatch := make([]datum.Datum, 0, len(removes))
	for _, k := range removes {
		if err := db.recordRemove([]byte(k)); err != nil {
			metrics.SessionLogicErrorsTotal.Inc()
			return err
		}
		removeBatch = append(removeBatch, datum.NewDatumFromString(k))
	}
	return db.backend.WriteBatch(putBatch, removeBatch)
}

// Get returns the current value of key, bypassing the undo stack entirely.
func (db *Database) Get(key []byte) ([]byte, error) {
	v, err := db.backend.Get(datum.NewDatum(key))
	if err != nil {
		return nil, err
	}
	return v.Bytes(), nil
}

// Exists reports whether key is currently present, bypassing the undo
// stack entirely.
func (db *Database) Exists(key []byte) (bool, error) {
	return db.backend.Exists(datum.NewDatum(key))
}

// AsMap returns every key/value pair currently live, bypassing the undo
// stack entirely.
func (db *Database) AsMap() (map[string][]byte, error) {
	m, err := db.backend.AsMap()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(m))
	for k, v := range m {
		out[k] = v.Bytes()
	}
	return out, nil
}

// StartSession pushes a new undo record (if enabled) and returns its
// revision and whether it is armed. pkg/session wraps this into the public
// Session handle; Database itself has no notion of "armed" beyond the
// stack depth.
func (db *Database) StartSession(enabled bool) (revision int64, armed bool) {
	metrics.SessionsStartedTotal.Inc()
	if !enabled {
		return -1, false
	}
	db.revision++
	db.stack = append(db.stack, undo.NewRecord(db.revision))
	metrics.SessionsOpen.Set(float64(len(db.stack)))
	db.log.Debug().Int64("revision", db.revision).Msg("session opened")
	return db.revision, true
}

// Undo reverses the top-of-stack record against the backend and pops it.
// It is a no-op when the stack is empty.
func (db *Database) Undo() error {
	if len(db.stack) == 0 {
		return nil
	}
	timer := metrics.NewTimer()
	top := db.stack[len(db.stack)-1]
	kvlog := db.log.With().Int64("revision", top.Revision).Logger()

	for k, v := range top.RemovedValues {
		if err := db.backend.Put(datum.NewDatumFromString(k), datum.NewDatum(v)); err != nil {
			return err
		}
	}
	for k, v := range top.ModifiedValues {
		if err := db.backend.Put(datum.NewDatumFromString(k), datum.NewDatum(v)); err != nil {
			return err
		}
	}
	for k := range top.NewKeys {
		if err := db.backend.Remove(datum.NewDatumFromString(k)); err != nil {
			return err
		}
	}
	db.stack = db.stack[:len(db.stack)-1]
	db.revision--
	metrics.SessionsOpen.Set(float64(len(db.stack)))
	metrics.UndoTotal.Inc()
	timer.ObserveDuration(metrics.UndoDuration)
	kvlog.Debug().Msg("session undone")
	return nil
}

// UndoAll repeatedly undoes sessions until the stack is empty.
func (db *Database) UndoAll() error {
	for len(db.stack) > 0 {
		if err := db.Undo(); err != nil {
			return err
		}
	}
	return nil
}

// Commit discards the entire stack without applying any record. The live
// state is left exactly as it is; the revision counter is left unchanged
// (it is a logical clock, not reset on commit).
func (db *Database) Commit() {
	n := len(db.stack)
	db.stack = db.stack[:0]
	metrics.SessionsOpen.Set(0)
	metrics.CommitTotal.Inc()
	db.log.Debug().Int("sessions", n).Msg("stack committed")
}

// Squash merges the top two records on the stack into one, decrementing
// the revision counter. With a single record on the stack, squash simply
// drops it (there is nothing below to merge into, so its effect becomes
// part of whatever committed the data beneath it); with an empty stack it
// is a no-op. See squash.go for the merge algorithm.
func (db *Database) Squash() error {
	switch len(db.stack) {
	case 0:
		return nil
	case 1:
		db.stack = db.stack[:0]
		db.revision--
		metrics.SessionsOpen.Set(0)
		metrics.SquashTotal.Inc()
		return nil
	}

	timer := metrics.NewTimer()
	n := len(db.stack)
	a, b := db.stack[n-2], db.stack[n-1]
	squashInto(a, b)
	db.stack = db.stack[:n-1]
	db.revision--
	metrics.SessionsOpen.Set(float64(len(db.stack)))
	metrics.SquashTotal.Inc()
	timer.ObserveDuration(metrics.SquashDuration)
	db.log.Debug().Int64("revision", db.revision).Msg("sessions squashed")
	return nil
}
