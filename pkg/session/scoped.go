package session

// WithSession is the explicit scoped-with block spec calls for in
// environments without deterministic destructors: it starts a session,
// runs fn, and guarantees Close runs on the way out regardless of how fn
// returns, undoing fn's changes unless fn itself called Push, Undo, or
// Squash on the session it was given.
func WithSession(db Database, enabled bool, fn func(*Session) error) error {
	s := Start(db, enabled)
	defer s.Close()
	return fn(s)
}
