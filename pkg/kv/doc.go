/*
Package kv implements Database, the transactional undoable key-value store
at the heart of chainrocks.

Database owns a backend.Backend and a stack of undo.UndoRecord. Every
mutating call first records a reverse-delta into the top-of-stack record (if
a session is open) and then forwards the effect to the backend; reads always
go straight to the backend and never consult the stack.

# Architecture

	┌───────────────────────── DATABASE ────────────────────────┐
	│                                                              │
	│   Mutators (Put/Remove/batched) ──► record into top record   │
	│                         │                    (if stack open) │
	│                         ▼                                    │
	│                   backend.Backend                             │
	│                         ▲                                    │
	│   Readers (Get/Exists/AsMap) ────────────────────────────────┘
	│                                                                │
	│   Stack: [ rev=1 ][ rev=2 ][ rev=3 ]  ◄── top, newest          │
	│            bottom,  oldest                                    │
	│                                                                │
	│   Session API: StartSession / Undo / UndoAll / Commit / Squash  │
	└────────────────────────────────────────────────────────────────┘

# Session lifecycle

`StartSession(true)` increments the revision counter and pushes an
empty undo.UndoRecord tagged with the new revision; pkg/session.Start
wraps the returned (revision, armed) pair into an armed *session.Session.
Every Put/Remove that runs while that record is on top accumulates into
it. The session is retired by exactly one of: Undo (reverses the record
against the backend), Commit (drops the entire stack without applying
anything), Push (the record survives, owned by whatever session is now
on top), or Squash (merges it into the record below).

# Squash

Squash is the one place this package departs from a literal line-by-line
port of the reference implementation's call order; see the package-level
comment on squashInto in squash.go and DESIGN.md for why.
*/
package kv
