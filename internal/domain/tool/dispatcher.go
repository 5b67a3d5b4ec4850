package tool

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/organizer"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/eventbus"
)

// TopicCallCompleted is published once per dispatched call, whatever the outcome.
const TopicCallCompleted = "toolcall.completed"

// Outcome of a dispatched call.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// CallCompleted is the payload of TopicCallCompleted.
type CallCompleted struct {
	ToolCallID string
	ToolName   string
	Outcome    string
	ErrorKind  Kind
	Error      string
	Duration   time.Duration
	At         time.Time
}

// Runner opens the per-request unit of work. *organizer.UnitOfWork satisfies it.
type Runner interface {
	Do(ctx context.Context, fn func(*organizer.Service) error) error
}

// Dispatcher resolves a request's tool call against the registry and runs it.
// It holds no per-request state.
type Dispatcher struct {
	registry *ToolRegistry
	runner   Runner
	style    EnvelopeStyle
	bus      eventbus.EventBus
	logger   *slog.Logger
	now      func() time.Time
}

// NewDispatcher wires a dispatcher. bus and logger may be nil.
func NewDispatcher(registry *ToolRegistry, runner Runner, style EnvelopeStyle, bus eventbus.EventBus, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		registry: registry,
		runner:   runner,
		style:    style,
		bus:      bus,
		logger:   logger,
		now:      time.Now,
	}
}

// Registry exposes the tools this dispatcher can run.
func (d *Dispatcher) Registry() *ToolRegistry { return d.registry }

// Dispatch runs the first call in req named toolName.
// Only that call is processed; other calls in the envelope are ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, toolName string, req *Request) (*Response, error) {
	if req == nil {
		return nil, invalidRequest("invalid request: empty body")
	}
	call, ok := req.Message.FindCall(toolName)
	if !ok {
		err := invalidRequest("invalid request: no tool call named %s", toolName)
		d.publish(Call{Function: Function{Name: toolName}}, time.Duration(0), err)
		return nil, err
	}
	return d.run(ctx, call)
}

// DispatchFirst runs the first call in req whose name is registered.
func (d *Dispatcher) DispatchFirst(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, invalidRequest("invalid request: empty body")
	}
	calls := req.Message.Calls()
	for _, call := range calls {
		if _, ok := d.registry.Definition(call.Function.Name); ok {
			return d.run(ctx, call)
		}
	}
	err := invalidRequest("invalid request: no registered tool call in envelope")
	var first Call
	if len(calls) > 0 {
		first = calls[0]
	}
	d.publish(first, time.Duration(0), err)
	return nil, err
}

func (d *Dispatcher) run(ctx context.Context, call Call) (*Response, error) {
	start := d.now()
	result, err := d.execute(ctx, call)
	elapsed := d.now().Sub(start)
	d.publish(call, elapsed, err)

	if err != nil {
		if _, rejected := AsCallError(err); rejected {
			d.logger.Info("tool call rejected", "tool", call.Function.Name, "tool_call_id", call.ID, "err", err)
		} else {
			d.logger.Error("tool call failed", "tool", call.Function.Name, "tool_call_id", call.ID, "err", err)
		}
		return nil, err
	}

	def, _ := d.registry.Definition(call.Function.Name)
	d.logger.Debug("tool call completed", "tool", call.Function.Name, "tool_call_id", call.ID, "duration", elapsed)
	return &Response{
		Key:     d.style.keyFor(def.Family),
		Results: []CallResult{{ToolCallID: call.ID, Result: result}},
	}, nil
}

func (d *Dispatcher) execute(ctx context.Context, call Call) (any, error) {
	executor, err := d.registry.Get(call.Function.Name)
	if err != nil {
		return nil, invalidRequest("invalid request: unknown tool %s", call.Function.Name)
	}
	args, err := ParseArguments(call.Function.Arguments)
	if err != nil {
		return nil, err
	}

	var result any
	err = d.runner.Do(ctx, func(svc *organizer.Service) error {
		out, execErr := executor.Execute(ctx, svc, args)
		if execErr != nil {
			return execErr
		}
		result = out
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

// classify turns storage not-found errors into CallErrors; others pass through.
func classify(err error) error {
	if _, ok := AsCallError(err); ok {
		return err
	}
	if errors.Is(err, organizer.ErrNotFound) {
		return &CallError{Kind: KindNotFound, Message: err.Error(), Err: err}
	}
	return err
}

func (d *Dispatcher) publish(call Call, elapsed time.Duration, err error) {
	if d.bus == nil {
		return
	}
	evt := CallCompleted{
		ToolCallID: call.ID,
		ToolName:   call.Function.Name,
		Outcome:    OutcomeSuccess,
		Duration:   elapsed,
		At:         d.now().UTC(),
	}
	if err != nil {
		evt.Error = err.Error()
		evt.Outcome = OutcomeError
		if ce, ok := AsCallError(err); ok {
			evt.Outcome = OutcomeRejected
			evt.ErrorKind = ce.Kind
		}
	}
	d.bus.Publish(TopicCallCompleted, evt)
}
