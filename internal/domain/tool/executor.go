package tool

import (
	"context"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/organizer"
)

// ToolExecutor is the runtime contract for executable tools. svc is bound to
// the request's unit of work; the executor performs exactly one operation.
type ToolExecutor interface {
	Execute(ctx context.Context, svc *organizer.Service, args Arguments) (any, error)
}

// ExecutorFunc adapts a function to ToolExecutor.
type ExecutorFunc func(ctx context.Context, svc *organizer.Service, args Arguments) (any, error)

func (f ExecutorFunc) Execute(ctx context.Context, svc *organizer.Service, args Arguments) (any, error) {
	return f(ctx, svc, args)
}
