package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey ctxKey = "run_id"
)

// NewRunID returns a fresh random run identifier.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// WithRunID stores the run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// RunIDString returns the run ID as a string, or "" if absent.
func RunIDString(ctx context.Context) string {
	id, ok := RunIDFromCtx(ctx)
	if !ok {
		return ""
	}
	return id.String()
}
