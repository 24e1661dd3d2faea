/*
Package log provides structured logging for chainrocks using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper
functions for common logging patterns. All logs include timestamps and
support filtering by severity level for production debugging.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Component Loggers                   │          │
	│  │  - WithComponent("kv")                      │          │
	│  │  - WithComponent("backend")                 │          │
	│  │  - WithRevision(42)                         │          │
	│  │  - WithSession("a1b2c3")                    │          │
	│  │  - WithDatabase(db.id)                      │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                       │          │
	│  │  JSON: {"level":"info","component":"kv",    │          │
	│  │         "revision":3,"message":"committed"} │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance, initialized once via log.Init()
  - Accessible from pkg/kv, pkg/backend, pkg/session, cmd/chainrocks

Context Loggers:
  - WithComponent: tags logs with the owning package ("kv", "backend", "session")
  - WithRevision: tags logs with the database's current revision number
  - WithSession: tags logs with a session's identifier, for tracing a single
    undo session's open/undo/commit/squash across log lines
  - WithDatabase: tags logs with a Database instance's id, so log lines from
    two Databases opened in the same process (tests, a benchmark harness
    cycling through data directories) stay distinguishable; kv.New builds
    one of these per Database and stores it for every subsequent log call

# Usage

	log.Init(log.Config{Level: log.InfoLevel, JSONOutput: true, Output: os.Stdout})

	kvLog := log.WithComponent("kv")
	kvLog.Info().Int64("revision", db.Revision()).Msg("session committed")

	sessLog := log.WithComponent("session").With().Str("session_id", id).Logger()
	sessLog.Warn().Msg("session garbage collected while still armed")

# Integration Points

  - pkg/kv: logs session lifecycle (open/undo/commit/squash) at Debug
  - pkg/backend: logs backend open/close, and a failed open at Error
  - pkg/session: logs the finalizer backstop when a Session leaks
  - cmd/chainrocks: wires log.Init from --log-level/--log-json flags, or
    from pkg/config.Config's LogLevelValue()/LogJSON when --config is given
    and those two flags were left at their defaults

# Design Patterns

Global Logger Pattern: a single package-level Logger, initialized once at
startup, avoids threading a logger through every constructor.

Context Logger Pattern: child loggers carry fixed fields (component,
revision, session ID) so call sites don't repeat them field-by-field.

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
*/
package log
