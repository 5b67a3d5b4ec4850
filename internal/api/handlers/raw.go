package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/matiasleandrokruk/voicedesk/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/voicedesk/internal/api/middleware"
)

const redacted = "[redacted]"

// sensitiveHeaders are logged by name only.
var sensitiveHeaders = []string{middleware.WebhookSecretHeader, "Authorization", "Cookie"}

// RawHandler logs whatever the voice platform sends. It is a debugging aid
// for wiring new assistants and never touches storage.
type RawHandler struct {
	logger *slog.Logger
}

func NewRawHandler(logger *slog.Logger) *RawHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RawHandler{logger: logger}
}

type rawResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *RawHandler) Capture(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "could not read request body")
		return
	}

	_, authenticated := ctxkeys.String(r.Context(), ctxkeys.WebhookAuthenticated)
	attrs := []any{"method", r.Method, "path", r.URL.Path, "authenticated", authenticated, "headers", loggableHeaders(r.Header), "body", string(body)}
	if gjson.ValidBytes(body) {
		parsed := gjson.ParseBytes(body)
		attrs = append(attrs,
			"message_type", parsed.Get("message.type").String(),
			"tool_calls", parsed.Get("message.toolCalls.#").Int(),
			"tool_names", parsed.Get("message.toolCalls.#.function.name").String(),
		)
	} else {
		attrs = append(attrs, "json", false)
	}
	h.logger.Info("raw webhook request", attrs...)

	writeJSON(w, http.StatusOK, rawResponse{Status: "received", Message: "Check server logs for request details"})
}

func loggableHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	for _, k := range sensitiveHeaders {
		if _, ok := out[http.CanonicalHeaderKey(k)]; ok {
			out[http.CanonicalHeaderKey(k)] = redacted
		}
	}
	return out
}
