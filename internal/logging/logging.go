// Package logging builds the slog loggers used by the numhash CLI.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Config selects the logger output.
type Config struct {
	// Out receives log lines. Nil means stderr.
	Out io.Writer

	Level slog.Level
	JSON  bool // true => JSON output, false => text
}

// New creates a configured *slog.Logger.
func New(cfg Config) *slog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// LevelFor maps the CLI verbosity flags to a level.
func LevelFor(verbose, debug bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

type nopHandler struct{}

func (h nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (h nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (h nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h nopHandler) WithGroup(string) slog.Handler             { return h }

// Nop returns a logger that discards everything.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

// ============================================================
// Context helpers
// ============================================================

type ctxKey struct{}

// WithLogger stores lg on ctx.
func WithLogger(ctx context.Context, lg *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, lg)
}

// FromContext returns the logger stored on ctx. Without one it returns a
// Nop logger, so code reached outside the CLI stays silent.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if lg, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && lg != nil {
			return lg
		}
	}
	return Nop()
}

// ============================================================
// Capture handler for tests
// ============================================================

// Entry is a captured log record.
type Entry struct {
	Level slog.Level
	Msg   string
	Attrs map[string]any
}

// Capture records every log entry. It is safe for concurrent use.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
	attrs   []slog.Attr
	parent  *Capture
}

// NewCapture returns a logger backed by a Capture.
func NewCapture() (*slog.Logger, *Capture) {
	c := &Capture{}
	return slog.New(c), c
}

func (c *Capture) root() *Capture {
	if c.parent != nil {
		return c.parent.root()
	}
	return c
}

func (c *Capture) Enabled(context.Context, slog.Level) bool { return true }

func (c *Capture) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Level: r.Level, Msg: r.Message, Attrs: map[string]any{}}
	for _, a := range c.attrs {
		e.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.Any()
		return true
	})

	root := c.root()
	root.mu.Lock()
	root.entries = append(root.entries, e)
	root.mu.Unlock()
	return nil
}

func (c *Capture) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Capture{attrs: append(append([]slog.Attr(nil), c.attrs...), attrs...), parent: c.root()}
}

func (c *Capture) WithGroup(string) slog.Handler { return c }

// Entries returns a copy of the captured entries.
func (c *Capture) Entries() []Entry {
	root := c.root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return append([]Entry(nil), root.entries...)
}

var (
	_ slog.Handler = nopHandler{}
	_ slog.Handler = (*Capture)(nil)
)
