package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
)

// ToolCallHandler serves the Vapi tool-call webhooks.
type ToolCallHandler struct {
	dispatcher *tool.Dispatcher
	logger     *slog.Logger
}

func NewToolCallHandler(dispatcher *tool.Dispatcher, logger *slog.Logger) *ToolCallHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ToolCallHandler{dispatcher: dispatcher, logger: logger}
}

// ForTool returns the endpoint bound to one tool name.
func (h *ToolCallHandler) ForTool(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decode(w, r)
		if !ok {
			return
		}
		resp, err := h.dispatcher.Dispatch(r.Context(), name, req)
		h.respond(w, resp, err)
	}
}

// CallFirst runs the first registered tool call in the envelope, whatever its name.
func (h *ToolCallHandler) CallFirst(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	resp, err := h.dispatcher.DispatchFirst(r.Context(), req)
	h.respond(w, resp, err)
}

func (h *ToolCallHandler) decode(w http.ResponseWriter, r *http.Request) (*tool.Request, bool) {
	var req tool.Request
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeBadRequest, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return nil, false
	}
	return &req, true
}

func (h *ToolCallHandler) respond(w http.ResponseWriter, resp *tool.Response, err error) {
	if err != nil {
		h.writeCallError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ToolCallHandler) writeCallError(w http.ResponseWriter, err error) {
	if ce, ok := tool.AsCallError(err); ok {
		writeJSON(w, statusForKind(ce.Kind), errorResponse{Error: ce.Error(), Code: string(ce.Kind), Field: ce.Field})
		return
	}
	// Storage details stay in the log.
	h.logger.Error("tool call internal error", "err", err)
	writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
}
