package undo

// UndoRecord is the reverse-delta for one open session: everything needed to
// restore the live state to what it was before the session began.
//
// The three collections are pairwise disjoint for the lifetime of a single
// record: a key is either newly created, modified with a recorded
// pre-image, or removed with a recorded pre-image, never more than one of
// these at once.
type UndoRecord struct {
	// NewKeys holds keys that did not exist in the live state at session
	// start and were created by this session.
	NewKeys map[string]struct{}
	// ModifiedValues maps a key to the value it held at the moment this
	// session first touched it.
	ModifiedValues map[string][]byte
	// RemovedValues maps a key to the value it held at the moment it was
	// removed during this session.
	RemovedValues map[string][]byte
	// Revision is a strictly positive, unique, monotonically increasing
	// identifier for the session that produced this record.
	Revision int64
}

// NewRecord returns an empty UndoRecord tagged with revision.
func NewRecord(revision int64) *UndoRecord {
	return &UndoRecord{
		NewKeys:        make(map[string]struct{}),
		ModifiedValues: make(map[string][]byte),
		RemovedValues:  make(map[string][]byte),
		Revision:       revision,
	}
}

// Tracks reports whether key is already recorded in any of the three
// collections.
func (r *UndoRecord) Tracks(key string) bool {
	if _, ok := r.NewKeys[key]; ok {
		return true
	}
	if _, ok := r.ModifiedValues[key]; ok {
		return true
	}
	if _, ok := r.RemovedValues[key]; ok {
		return true
	}
	return false
}

// IsRemoved reports whether key is recorded as removed in this session.
func (r *UndoRecord) IsRemoved(key string) bool {
	_, ok := r.RemovedValues[key]
	return ok
}

// IsNew reports whether key is recorded as newly created in this session.
func (r *UndoRecord) IsNew(key string) bool {
	_, ok := r.NewKeys[key]
	return ok
}

// IsModified reports whether key is recorded as modified (with a stored
// pre-image) in this session.
func (r *UndoRecord) IsModified(key string) bool {
	_, ok := r.ModifiedValues[key]
	return ok
}

// Empty reports whether the record has no tracked changes at all.
func (r *UndoRecord) Empty() bool {
	return len(r.NewKeys) == 0 && len(r.ModifiedValues) == 0 && len(r.RemovedValues) == 0
}
