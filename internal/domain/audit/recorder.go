package audit

import (
	"context"
	"log/slog"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/eventbus"
)

// Recorder consumes tool.TopicCallCompleted events and persists them.
type Recorder struct {
	svc    *Service
	logger *slog.Logger
}

func NewRecorder(svc *Service, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recorder{svc: svc, logger: logger}
}

// Start subscribes to bus and records events until ctx is done or the bus is
// closed. It blocks; run it in its own goroutine.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	r.Run(ctx, bus.Subscribe(tool.TopicCallCompleted))
}

// Run records events from an existing subscription.
func (r *Recorder) Run(ctx context.Context, events <-chan eventbus.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			r.handle(ctx, evt)
		}
	}
}

func (r *Recorder) handle(ctx context.Context, evt eventbus.Event) {
	payload, ok := evt.Payload.(tool.CallCompleted)
	if !ok {
		r.logger.Warn("audit: unexpected payload", "topic", evt.Topic)
		return
	}
	if _, err := r.svc.Record(ctx, payload); err != nil {
		r.logger.Error("audit: record tool call", "tool", payload.ToolName, "tool_call_id", payload.ToolCallID, "err", err)
	}
}
