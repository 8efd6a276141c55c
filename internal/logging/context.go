package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey string

const manuscriptIDKey contextKey = "manuscript_id"

// WithManuscriptID adds a manuscript id to the context.
func WithManuscriptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, manuscriptIDKey, id)
}

// GetManuscriptID returns the manuscript id in ctx, or "".
func GetManuscriptID(ctx context.Context) string {
	if id, ok := ctx.Value(manuscriptIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextHook copies the manuscript id of an event's context into the event.
type ContextHook struct{}

func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}
	if id := GetManuscriptID(ctx); id != "" {
		e.Str("manuscript_id", id)
	}
}
