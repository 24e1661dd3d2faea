package session

import (
	"runtime"

	"github.com/jony86s/chainrocks/pkg/log"
)

// Database is the subset of kv.Database that a Session needs. kv.Database
// satisfies this interface structurally; pkg/session does not import
// pkg/kv to avoid a import cycle (kv's doc references session, but no Go
// package imports run the other way).
type Database interface {
	StartSession(enabled bool) (revision int64, armed bool)
	Undo() error
	Squash() error
}

// Session is the scoped, move-only handle returned by Start. It is armed
// for its whole life except after Push, Undo, Squash, or a finalizer-driven
// release have run.
//
// Session is not safe for concurrent use, and must not be copied: copying
// it would let two values independently attempt to release the same
// session. There is no Go compiler enforcement of this (Go has no move
// semantics); callers must treat a *Session as single-owner by convention,
// the same discipline other examples in this codebase apply to *badger.Txn.
type Session struct {
	db       Database
	revision int64
	armed    bool
}

// Start begins an undo session on db. If enabled is false, the returned
// Session is disarmed and carries revision -1; no record is pushed.
func Start(db Database, enabled bool) *Session {
	revision, armed := db.StartSession(enabled)
	s := &Session{db: db, revision: revision, armed: armed}
	if armed {
		runtime.SetFinalizer(s, finalizeSession)
	}
	return s
}

func finalizeSession(s *Session) {
	if !s.armed {
		return
	}
	log.WithComponent("session").Warn().
		Int64("revision", s.revision).
		Msg("session garbage collected while still armed; undoing as a backstop")
	_ = s.db.Undo()
	s.armed = false
}

// Revision returns the revision this session was minted with, or -1 if it
// was started disabled.
func (s *Session) Revision() int64 {
	return s.revision
}

// Armed reports whether the session will still undo on Close.
func (s *Session) Armed() bool {
	return s.armed
}

// Push disarms the session without undoing: its effect becomes permanent,
// at least until an enclosing session later squashes or undoes it.
func (s *Session) Push() {
	if !s.armed {
		return
	}
	s.armed = false
	runtime.SetFinalizer(s, nil)
}

// Undo reverses this session's effect and disarms it. A no-op if the
// session is already disarmed.
func (s *Session) Undo() error {
	if !s.armed {
		return nil
	}
	err := s.db.Undo()
	s.armed = false
	runtime.SetFinalizer(s, nil)
	return err
}

// Squash merges this session into the one below it on the stack and
// disarms it. A no-op if the session is already disarmed.
func (s *Session) Squash() error {
	if !s.armed {
		return nil
	}
	err := s.db.Squash()
	s.armed = false
	runtime.SetFinalizer(s, nil)
	return err
}

// Close is the RAII-equivalent release: if still armed, it undoes. Callers
// should `defer session.Close()` immediately after Start, the same way
// this codebase defers a badger.Txn.Discard().
func (s *Session) Close() error {
	if !s.armed {
		return nil
	}
	return s.Undo()
}
