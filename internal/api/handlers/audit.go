package handlers

import (
	"log/slog"
	"net/http"

	"github.com/matiasleandrokruk/voicedesk/internal/api/ctxkeys"
	"github.com/matiasleandrokruk/voicedesk/internal/domain/audit"
)

// AuditHandler pages through the tool-call log.
type AuditHandler struct {
	svc    *audit.Service
	logger *slog.Logger
}

func NewAuditHandler(svc *audit.Service, logger *slog.Logger) *AuditHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuditHandler{svc: svc, logger: logger}
}

type listMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func (h *AuditHandler) ListToolCalls(w http.ResponseWriter, r *http.Request) {
	page := parsePaginationParams(r)
	subject, _ := ctxkeys.String(r.Context(), ctxkeys.Subject)

	entries, total, err := h.svc.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		h.logger.Error("list tool calls", "subject", subject, "err", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "failed to list tool calls")
		return
	}
	h.logger.Info("tool calls listed", "subject", subject, "limit", page.Limit, "offset", page.Offset, "returned", len(entries))
	writeJSON(w, http.StatusOK, map[string]any{
		"data": entries,
		"meta": listMeta{Total: total, Limit: page.Limit, Offset: page.Offset},
	})
}
