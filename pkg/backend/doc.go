/*
Package backend wraps a badger log-structured merge store as the persistent,
ordered, byte-keyed store that pkg/kv's Database builds transactional undo on
top of. Every key and value crossing the Backend boundary travels as a
datum.Datum, not a bare []byte — Backend is where that lossless bytes/text
view meets badger's raw []byte API.

# Architecture

	┌────────────────────── BACKEND ───────────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │              *badger.DB                     │          │
	│  │  - one process, one data directory          │          │
	│  │  - leveled LSM compaction (always on)       │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │   Get / Put / Remove / Exists                │          │
	│  │   one badger.Txn per call, datum.Datum in/out│          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │   PutBatch / RemoveBatch / WriteBatch        │          │
	│  │   one *badger.WriteBatch built and Flushed   │          │
	│  │   per call — no state persists between calls │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

Backend deliberately exposes no undo/session concept of its own — that is
pkg/kv's job. Backend only answers "what is on disk right now."

PutBatch, RemoveBatch, and WriteBatch are each a single atomic bulk
operation, not an enqueue step paired with a separate flush call: every call
builds its own *badger.WriteBatch and Flushes it before returning. There is
no persistent "current batch" a later call appends to. Callers that want to
accumulate writes across multiple logical steps before committing them
atomically do that buffering themselves and pass the final map/slice in one
call — see pkg/facade.ChainrocksFacade, which buffers pending puts and
flushes them in one PutBatch call from Write.

# Options

Options maps the option model onto badger.Options:

  - ParanoidChecks -> VerifyValueChecksum
  - IncreaseParallelism -> NumCompactors
  - WriteBufferBytes -> MemTableSize
  - DisableWAL -> SyncWrites = false (badger always keeps a value log on
    disk; disabling sync trades the same durability-for-throughput this
    option asks for)

create_if_missing and level_style_compaction have no corresponding knob:
badger always creates its data directory on Open, and its LSM tree is always
leveled, so both are implicit.
*/
package backend
