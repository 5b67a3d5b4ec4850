package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a2aproject/a2a-go/a2asrv"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matiasleandrokruk/voicedesk/internal/api/handlers"
	"github.com/matiasleandrokruk/voicedesk/internal/api/mcpserver"
	apmiddleware "github.com/matiasleandrokruk/voicedesk/internal/api/middleware"
	"github.com/matiasleandrokruk/voicedesk/internal/domain/audit"
	"github.com/matiasleandrokruk/voicedesk/internal/domain/organizer"
	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/config"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/eventbus"
)

const (
	toolCallTimeout = 30 * time.Second
	// ToolCallsPath is the admin audit listing.
	ToolCallsPath = "/admin/tool-calls"
)

// NewRouter creates and configures a new chi router with all routes.
// bus may be nil, in which case no tool-call events are published.
func NewRouter(db *sql.DB, cfg config.Config, bus eventbus.EventBus, logger *slog.Logger) (*chi.Mux, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry, err := tool.NewBuiltInRegistry()
	if err != nil {
		return nil, fmt.Errorf("api.NewRouter: %w", err)
	}
	dispatcher := tool.NewDispatcher(registry, organizer.NewUnitOfWork(db), EnvelopeStyle(cfg.Webhook.Envelope), bus, logger)

	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// ===== PUBLIC ROUTES (no auth required) =====

	// Health check, used by load balancers and the voice platform's probes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	r.Get("/tools", handlers.NewToolHandler(registry).ListTools)
	r.Method(http.MethodGet, a2asrv.WellKnownAgentCardPath,
		a2asrv.NewStaticAgentCardHandler(handlers.NewAgentCard(registry.Definitions(), cfg.Server.PublicURL)))

	// ===== WEBHOOK ROUTES (X-Vapi-Secret when configured) =====

	if cfg.Webhook.SecretHash == "" {
		logger.Warn("webhook secret not configured; tool endpoints are open")
	}
	toolCalls := handlers.NewToolCallHandler(dispatcher, logger)
	raw := handlers.NewRawHandler(logger)
	mcpHandler := mcpserver.NewHandler(mcpserver.New(dispatcher))

	r.Group(func(r chi.Router) {
		r.Use(apmiddleware.WebhookSecret(cfg.Webhook.SecretHash, logger))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(toolCallTimeout))
			for _, def := range registry.Definitions() {
				postWithAndWithoutSlash(r, def.Path, toolCalls.ForTool(def.Name))
			}
			r.Post("/tools/call", toolCalls.CallFirst)
			postWithAndWithoutSlash(r, "/vapi_raw/", raw.Capture)
		})

		// MCP keeps long-lived streams; no request timeout here.
		r.Handle("/mcp", mcpHandler)
	})

	// ===== ADMIN ROUTES (JWT required) =====

	if cfg.Admin.JWTSecret != "" {
		auditHandler := handlers.NewAuditHandler(audit.NewService(db), logger)
		r.Group(func(r chi.Router) {
			r.Use(apmiddleware.AdminAuth([]byte(cfg.Admin.JWTSecret)))
			r.Get(ToolCallsPath, auditHandler.ListToolCalls)
		})
	}

	return r, nil
}

func postWithAndWithoutSlash(r chi.Router, path string, h http.HandlerFunc) {
	r.Post(path, h)
	if trimmed := strings.TrimSuffix(path, "/"); trimmed != path && trimmed != "" {
		r.Post(trimmed, h)
	}
}

// EnvelopeStyle maps the configured envelope name to the dispatcher's style.
func EnvelopeStyle(name string) tool.EnvelopeStyle {
	if name == config.EnvelopeLegacy {
		return tool.EnvelopeLegacy
	}
	return tool.EnvelopeResults
}
