package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/organizer"
	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
	"github.com/matiasleandrokruk/voicedesk/internal/infra/sqlite"
)

func mustOpenDBWithMigrations(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.OpenMigrated(sqlite.MemoryPath)
	if err != nil {
		t.Fatalf("sqlite.OpenMigrated: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustBuiltInRegistry(t *testing.T) *tool.ToolRegistry {
	t.Helper()
	registry, err := tool.NewBuiltInRegistry()
	if err != nil {
		t.Fatalf("NewBuiltInRegistry: %v", err)
	}
	return registry
}

func newTestToolCallHandler(t *testing.T, style tool.EnvelopeStyle) *ToolCallHandler {
	t.Helper()
	db := mustOpenDBWithMigrations(t)
	d := tool.NewDispatcher(mustBuiltInRegistry(t), organizer.NewUnitOfWork(db), style, nil, nil)
	return NewToolCallHandler(d, nil)
}

func TestParsePaginationParams(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", defaultPaginationLimit, 0},
		{"?limit=10&offset=5", 10, 5},
		{"?limit=1000", maxPaginationLimit, 0},
		{"?limit=-1&offset=-3", defaultPaginationLimit, 0},
		{"?limit=abc&offset=xyz", defaultPaginationLimit, 0},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/admin/tool-calls"+tc.query, nil)
		got := parsePaginationParams(r)
		if got.Limit != tc.wantLimit || got.Offset != tc.wantOffset {
			t.Errorf("parsePaginationParams(%q) = %+v; want limit %d offset %d", tc.query, got, tc.wantLimit, tc.wantOffset)
		}
	}
}
