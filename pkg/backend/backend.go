package backend

import (
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/jony86s/chainrocks/pkg/datum"
	"github.com/jony86s/chainrocks/pkg/log"
	"github.com/jony86s/chainrocks/pkg/metrics"
)

// ErrKeyNotFound is returned by Get when the requested key does not exist.
var ErrKeyNotFound = errors.New("backend: key not found")

// Options configures the underlying badger store. The zero value is a
// reasonable default for local development.
type Options struct {
	// ParanoidChecks verifies value checksums on every read.
	ParanoidChecks bool
	// IncreaseParallelism sets the number of concurrent compactors.
	IncreaseParallelism int
	// WriteBufferBytes bounds the in-memory table size before a flush.
	WriteBufferBytes int64
	// DisableWAL turns off sync-on-write, trading durability for
	// throughput. badger always retains a value log on disk; this only
	// controls whether writes are fsynced before Commit returns.
	DisableWAL bool
}

func (o Options) toBadger(dir string) badger.Options {
	opt := badger.DefaultOptions(dir)
	opt.Logger = nil
	opt.VerifyValueChecksum = o.ParanoidChecks
	if o.IncreaseParallelism > 0 {
		opt.NumCompactors = o.IncreaseParallelism
	}
	if o.WriteBufferBytes > 0 {
		opt.MemTableSize = o.WriteBufferBytes
	}
	opt.SyncWrites = !o.DisableWAL
	return opt
}

// Backend owns a single badger database directory. Every key and value
// crossing its boundary is a datum.Datum, the lossless bytes/text view the
// rest of chainrocks shares; Backend is where that view meets badger's raw
// []byte API.
type Backend struct {
	dir string
	db  *badger.DB
}

// New opens (creating if necessary) the badger store at dir.
func New(dir string, opts Options) (*Backend, error) {
	blog := log.WithComponent("backend")

	db, err := badger.Open(opts.toBadger(dir))
	if err != nil {
		blog.Error().Err(err).Str("dir", dir).Msg("failed to open backend")
		return nil, err
	}
	blog.Info().Str("dir", dir).Msg("backend opened")
	return &Backend{dir: dir, db: db}, nil
}

// Close flushes and closes the underlying database.
func (b *Backend) Close() error {
	err := b.db.Close()
	log.WithComponent("backend").Info().Str("dir", b.dir).Msg("backend closed")
	return err
}

// Get returns the value stored for key, or ErrKeyNotFound if absent.
func (b *Backend) Get(key datum.Datum) (datum.Datum, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.Bytes())
		if err == badger.ErrKeyNotFound {
			return ErrKeyNotFound
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return datum.Datum{}, err
	}
	return datum.NewDatum(value), nil
}

// Exists reports whether key is present in the backend.
func (b *Backend) Exists(key datum.Datum) (bool, error) {
	exists := false
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key.Bytes())
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// Put writes key/value in its own transaction.
func (b *Backend) Put(key, value datum.Datum) error {
	timer := metrics.NewTimer()
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.Bytes(), value.Bytes())
	})
	timer.ObserveDuration(metrics.PutDuration)
	metrics.PutTotal.Inc()
	return err
}

// Remove deletes key in its own transaction. Removing an absent key is not
// an error.
func (b *Backend) Remove(key datum.Datum) error {
	timer := metrics.NewTimer()
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key.Bytes())
	})
	timer.ObserveDuration(metrics.RemoveDuration)
	metrics.RemoveTotal.Inc()
	return err
}

// PutBatch writes every key/value pair in kv as one atomic badger write
// batch: the whole call either all lands or all fails, in a single Flush.
// It has no effect on any other call's batch — Backend holds no write-batch
// state between calls.
func (b *Backend) PutBatch(kv map[string]datum.Datum) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for k, v := range kv {
		if err := wb.Set([]byte(k), v.Bytes()); err != nil {
			return err
		}
	}
	metrics.PutTotal.Add(float64(len(kv)))
	return wb.Flush()
}

// RemoveBatch deletes every key in keys as one atomic badger write batch.
func (b *Backend) RemoveBatch(keys []datum.Datum) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k.Bytes()); err != nil {
			return err
		}
	}
	metrics.RemoveTotal.Add(float64(len(keys)))
	return wb.Flush()
}

// WriteBatch applies puts and removes together as one atomic badger write
// batch, in a single Flush call.
func (b *Backend) WriteBatch(puts map[string]datum.Datum, removes []datum.Datum) error {
	timer := metrics.NewTimer()
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for k, v := range puts {
		if err := wb.Set([]byte(k), v.Bytes()); err != nil {
			return err
		}
	}
	for _, k := range removes {
		if err := wb.Delete(k.Bytes()); err != nil {
			return err
		}
	}
	err := wb.Flush()
	timer.ObserveDuration(metrics.WriteBatchDuration)
	metrics.WriteBatchTotal.Inc()
	return err
}

// KeyCount returns an approximate count of live keys by scanning the
// backend. It is intended for the stats CLI subcommand, not hot paths.
func (b *Backend) KeyCount() (int64, error) {
	var count int64
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// AsMap returns every key/value pair currently in the backend, visited in
// badger's native key order.
func (b *Backend) AsMap() (map[string]datum.Datum, error) {
	result := make(map[string]datum.Datum)
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[string(item.Key())] = datum.NewDatum(value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
