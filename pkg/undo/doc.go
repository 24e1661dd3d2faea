// Package undo defines UndoRecord, the in-memory record of everything a
// single undo session changed: which keys it created, which it modified
// (along with their pre-images), and which it removed (along with their
// pre-images). UndoRecord holds no reference to a backend and performs no
// I/O; pkg/kv is the only package that interprets it.
package undo
