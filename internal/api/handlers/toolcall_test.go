package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matiasleandrokruk/voicedesk/internal/domain/tool"
)

func envelope(name, id string, args any) []byte {
	body := map[string]any{
		"message": map[string]any{
			"type": "tool-calls",
			"toolCalls": []any{map[string]any{
				"id":       id,
				"type":     "function",
				"function": map[string]any{"name": name, "arguments": args},
			}},
		},
	}
	raw, _ := json.Marshal(body)
	return raw
}

func post(t *testing.T, h http.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rr.Body.String(), err)
	}
	return out
}

// firstResult returns results[0] under key.
func firstResult(t *testing.T, rr *httptest.ResponseRecorder, key string) map[string]any {
	t.Helper()
	body := decodeMap(t, rr)
	list, ok := body[key].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("body %s has no single-entry %q list", rr.Body.String(), key)
	}
	return list[0].(map[string]any)
}

func TestToolCallHandler_CreateTodo(t *testing.T) {
	t.Parallel()

	h := newTestToolCallHandler(t, tool.EnvelopeResults)
	rr := post(t, h.ForTool(tool.BuiltinCreateTodo), envelope(tool.BuiltinCreateTodo, "call_1", map[string]any{"title": "Buy milk"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want=%d body=%s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	entry := firstResult(t, rr, "results")
	if entry["toolCallId"] != "call_1" {
		t.Errorf("toolCallId = %v", entry["toolCallId"])
	}
	todo := entry["result"].(map[string]any)
	if todo["title"] != "Buy milk" || todo["description"] != nil || todo["completed"] != false {
		t.Errorf("todo = %v", todo)
	}
}

func TestToolCallHandler_LegacyEnvelope(t *testing.T) {
	t.Parallel()

	h := newTestToolCallHandler(t, tool.EnvelopeLegacy)
	rr := post(t, h.ForTool(tool.BuiltinAddReminder), envelope(tool.BuiltinAddReminder, "r1", map[string]any{"reminder_text": "Dentist", "importance": "high"}))
	reminder := firstResult(t, rr, "result")["result"].(map[string]any)
	if reminder["reminder_text"] != "Dentist" {
		t.Fatalf("reminder = %v", reminder)
	}

	id := int64(reminder["id"].(float64))
	rr = post(t, h.ForTool(tool.BuiltinDeleteReminder), envelope(tool.BuiltinDeleteReminder, "r2", map[string]any{"id": id}))
	deleted := firstResult(t, rr, "results")["result"].(map[string]any)
	if deleted["deleted"] != true || int64(deleted["id"].(float64)) != id {
		t.Errorf("delete result = %v", deleted)
	}
}

func TestToolCallHandler_Errors(t *testing.T) {
	t.Parallel()

	h := newTestToolCallHandler(t, tool.EnvelopeResults)

	cases := []struct {
		name      string
		tool      string
		body      []byte
		wantCode  int
		wantKind  string
		wantField string
	}{
		{"malformed json", tool.BuiltinGetTodos, []byte(`{"message":`), http.StatusBadRequest, "invalid_request", ""},
		{"no matching call", tool.BuiltinGetTodos, envelope(tool.BuiltinCreateTodo, "c", map[string]any{}), http.StatusBadRequest, "invalid_request", ""},
		{"missing title", tool.BuiltinCreateTodo, envelope(tool.BuiltinCreateTodo, "c", map[string]any{}), http.StatusBadRequest, "missing_field", "title"},
		{"bad id", tool.BuiltinCompleteTodo, envelope(tool.BuiltinCompleteTodo, "c", map[string]any{"id": "abc"}), http.StatusBadRequest, "invalid_format", "id"},
		{"unknown todo", tool.BuiltinCompleteTodo, envelope(tool.BuiltinCompleteTodo, "c", map[string]any{"id": 77}), http.StatusNotFound, "not_found", ""},
		{"bad event_to", tool.BuiltinAddCalendarEntry, envelope(tool.BuiltinAddCalendarEntry, "c", map[string]any{
			"title": "x", "event_from": "2024-01-01T10:00:00", "event_to": "later",
		}), http.StatusBadRequest, "invalid_format", "event_to"},
		{"missing event_from", tool.BuiltinAddCalendarEntry, envelope(tool.BuiltinAddCalendarEntry, "c", map[string]any{
			"title": "x", "event_to": "later",
		}), http.StatusBadRequest, "missing_field", "event_from"},
		{"missing reminder_text", tool.BuiltinAddReminder, envelope(tool.BuiltinAddReminder, "c", map[string]any{"importance": "high"}), http.StatusBadRequest, "missing_field", "reminder_text"},
		{"missing importance", tool.BuiltinAddReminder, envelope(tool.BuiltinAddReminder, "c", map[string]any{"reminder_text": "Dentist"}), http.StatusBadRequest, "missing_field", "importance"},
		{"unknown todo delete", tool.BuiltinDeleteTodo, envelope(tool.BuiltinDeleteTodo, "c", map[string]any{"id": 88}), http.StatusNotFound, "not_found", ""},
		{"unknown calendar delete", tool.BuiltinDeleteCalendarEntry, envelope(tool.BuiltinDeleteCalendarEntry, "c", map[string]any{"id": "99"}), http.StatusNotFound, "not_found", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := post(t, h.ForTool(tc.tool), tc.body)
			if rr.Code != tc.wantCode {
				t.Fatalf("status=%d want=%d body=%s", rr.Code, tc.wantCode, rr.Body.String())
			}
			body := decodeMap(t, rr)
			if body["code"] != tc.wantKind {
				t.Errorf("code = %v; want %s", body["code"], tc.wantKind)
			}
			if field, _ := body["field"].(string); field != tc.wantField {
				t.Errorf("field = %q; want %q", field, tc.wantField)
			}
			if msg, _ := body["error"].(string); msg == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestToolCallHandler_CompleteTodoRoundTrip(t *testing.T) {
	t.Parallel()

	h := newTestToolCallHandler(t, tool.EnvelopeResults)
	created := firstResult(t, post(t, h.ForTool(tool.BuiltinCreateTodo),
		envelope(tool.BuiltinCreateTodo, "c1", `{"title":"Laundry"}`)), "results")["result"].(map[string]any)
	id := int64(created["id"].(float64))

	rr := post(t, h.ForTool(tool.BuiltinCompleteTodo), envelope(tool.BuiltinCompleteTodo, "c2", map[string]any{"id": fmt.Sprint(id)}))
	if rr.Code != http.StatusOK {
		t.Fatalf("complete status=%d body=%s", rr.Code, rr.Body.String())
	}

	todos := firstResult(t, post(t, h.ForTool(tool.BuiltinGetTodos), envelope(tool.BuiltinGetTodos, "c3", nil)), "results")["result"].([]any)
	if len(todos) != 1 || todos[0].(map[string]any)["completed"] != true {
		t.Fatalf("todos = %v", todos)
	}
}

func TestToolCallHandler_DeleteTodoAndCalendarEntry(t *testing.T) {
	t.Parallel()

	h := newTestToolCallHandler(t, tool.EnvelopeResults)
	todo := firstResult(t, post(t, h.ForTool(tool.BuiltinCreateTodo),
		envelope(tool.BuiltinCreateTodo, "c1", map[string]any{"title": "Trash"})), "results")["result"].(map[string]any)
	event := firstResult(t, post(t, h.ForTool(tool.BuiltinAddCalendarEntry),
		envelope(tool.BuiltinAddCalendarEntry, "c2", map[string]any{
			"title": "Standup", "event_from": "2024-01-01T09:00:00", "event_to": "2024-01-01T09:15:00",
		})), "results")["result"].(map[string]any)

	cases := []struct {
		tool string
		id   int64
	}{
		{tool.BuiltinDeleteTodo, int64(todo["id"].(float64))},
		{tool.BuiltinDeleteCalendarEntry, int64(event["id"].(float64))},
	}
	for _, tc := range cases {
		body := envelope(tc.tool, "del", map[string]any{"id": tc.id})

		rr := post(t, h.ForTool(tc.tool), body)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d body=%s", tc.tool, rr.Code, rr.Body.String())
		}
		want := fmt.Sprintf(`{"results":[{"toolCallId":"del","result":{"id":%d,"deleted":true}}]}`, tc.id)
		if got := strings.TrimSpace(rr.Body.String()); got != want {
			t.Errorf("%s body = %s; want %s", tc.tool, got, want)
		}

		rr = post(t, h.ForTool(tc.tool), body)
		if rr.Code != http.StatusNotFound {
			t.Errorf("%s second delete status=%d body=%s", tc.tool, rr.Code, rr.Body.String())
		}
	}
}

func TestToolCallHandler_CallFirst(t *testing.T) {
	t.Parallel()

	h := newTestToolCallHandler(t, tool.EnvelopeResults)
	rr := post(t, h.CallFirst, envelope(tool.BuiltinGetCalendarEntries, "cal", map[string]any{}))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	entry := firstResult(t, rr, "results")
	if list, ok := entry["result"].([]any); !ok || len(list) != 0 {
		t.Errorf("result = %v; want empty list", entry["result"])
	}

	rr = post(t, h.CallFirst, envelope("notATool", "x", map[string]any{}))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("unknown tool status=%d", rr.Code)
	}
}

func TestToolCallHandler_BodyTooLarge(t *testing.T) {
	t.Parallel()

	h := newTestToolCallHandler(t, tool.EnvelopeResults)
	huge := `{"message":{"toolCalls":[{"id":"x","function":{"name":"createTodo","arguments":{"title":"` +
		strings.Repeat("a", maxBodyBytes) + `"}}}]}}`
	rr := post(t, h.ForTool(tool.BuiltinCreateTodo), []byte(huge))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status=%d want=%d", rr.Code, http.StatusRequestEntityTooLarge)
	}
}
