/*
Package session implements Session, the scoped handle returned by starting
an undo session on a Database.

Go has no destructors, so the reference implementation's RAII binding (an
armed session auto-undoes on scope exit) is approximated two ways:

 1. Close, which the caller is expected to defer immediately after
    obtaining a Session, exactly like deferring a badger.Txn.Discard().
 2. A runtime.SetFinalizer backstop registered at construction, which logs
    a warning and undoes if a Session is garbage-collected while still
    armed - catching the "forgot the defer" case, not relying on it, since
    finalizers run at an unpredictable time (or never, under GC pressure).

WithSession is the explicit scoped-with block for callers who want
guaranteed synchronous release without trusting defer discipline at all.
*/
package session
