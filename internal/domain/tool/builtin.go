package tool

import "encoding/json"

// Built-in tool names, as configured on the voice assistant.
const (
	BuiltinCreateTodo          = "createTodo"
	BuiltinGetTodos            = "getTodos"
	BuiltinCompleteTodo        = "completeTodo"
	BuiltinDeleteTodo          = "deleteTodo"
	BuiltinAddReminder         = "addReminder"
	BuiltinGetReminders        = "getReminders"
	BuiltinDeleteReminder      = "deleteReminder"
	BuiltinAddCalendarEntry    = "addCalendarEntry"
	BuiltinGetCalendarEntries  = "getCalendarEntries"
	BuiltinDeleteCalendarEntry = "deleteCalendarEntry"
)

const (
	recordTodo     = "todo"
	recordReminder = "reminder"
	recordCalendar = "calendar_event"
)

const (
	schemaEmpty = `{"type":"object","properties":{}}`
	schemaID    = `{"type":"object","required":["id"],"properties":{"id":{"type":["integer","string"],"description":"Record id"}}}`
)

// BuiltInToolDefinitions returns the definitions of every built-in tool.
func BuiltInToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        BuiltinCreateTodo,
			Description: "Create a todo item",
			Path:        "/create_todo/",
			Family:      FamilyCreate,
			RecordKind:  recordTodo,
			InputSchema: json.RawMessage(`{"type":"object","required":["title"],"properties":{"title":{"type":"string"},"description":{"type":"string"}}}`),
		},
		{Name: BuiltinGetTodos, Description: "List all todo items", Path: "/get_todos/", Family: FamilyRead, RecordKind: recordTodo, InputSchema: json.RawMessage(schemaEmpty)},
		{Name: BuiltinCompleteTodo, Description: "Mark a todo item as completed", Path: "/complete_todo/", Family: FamilyUpdate, RecordKind: recordTodo, InputSchema: json.RawMessage(schemaID)},
		{Name: BuiltinDeleteTodo, Description: "Delete a todo item", Path: "/delete_todo/", Family: FamilyDelete, RecordKind: recordTodo, InputSchema: json.RawMessage(schemaID)},
		{
			Name:        BuiltinAddReminder,
			Description: "Add a reminder with an importance level",
			Path:        "/add_reminder/",
			Family:      FamilyCreate,
			RecordKind:  recordReminder,
			InputSchema: json.RawMessage(`{"type":"object","required":["reminder_text","importance"],"properties":{"reminder_text":{"type":"string"},"importance":{"type":"string"}}}`),
		},
		{Name: BuiltinGetReminders, Description: "List all reminders", Path: "/get_reminders/", Family: FamilyRead, RecordKind: recordReminder, InputSchema: json.RawMessage(schemaEmpty)},
		{Name: BuiltinDeleteReminder, Description: "Delete a reminder", Path: "/delete_reminder/", Family: FamilyDelete, RecordKind: recordReminder, InputSchema: json.RawMessage(schemaID)},
		{
			Name:        BuiltinAddCalendarEntry,
			Description: "Add a calendar entry; event_from and event_to are ISO 8601 timestamps",
			Path:        "/add_calendar_entry/",
			Family:      FamilyCreate,
			RecordKind:  recordCalendar,
			InputSchema: json.RawMessage(`{"type":"object","required":["title","event_from","event_to"],"properties":{"title":{"type":"string"},"description":{"type":"string"},"event_from":{"type":"string","format":"date-time"},"event_to":{"type":"string","format":"date-time"}}}`),
		},
		{Name: BuiltinGetCalendarEntries, Description: "List all calendar entries", Path: "/get_calendar_entries/", Family: FamilyRead, RecordKind: recordCalendar, InputSchema: json.RawMessage(schemaEmpty)},
		{Name: BuiltinDeleteCalendarEntry, Description: "Delete a calendar entry", Path: "/delete_calendar_entry/", Family: FamilyDelete, RecordKind: recordCalendar, InputSchema: json.RawMessage(schemaID)},
	}
}

// RegisterBuiltInExecutors registers every built-in tool on registry.
func RegisterBuiltInExecutors(registry *ToolRegistry) error {
	executors := map[string]ToolExecutor{
		BuiltinCreateTodo:          ExecutorFunc(createTodo),
		BuiltinGetTodos:            ExecutorFunc(getTodos),
		BuiltinCompleteTodo:        ExecutorFunc(completeTodo),
		BuiltinDeleteTodo:          ExecutorFunc(deleteTodo),
		BuiltinAddReminder:         ExecutorFunc(addReminder),
		BuiltinGetReminders:        ExecutorFunc(getReminders),
		BuiltinDeleteReminder:      ExecutorFunc(deleteReminder),
		BuiltinAddCalendarEntry:    ExecutorFunc(addCalendarEntry),
		BuiltinGetCalendarEntries:  ExecutorFunc(getCalendarEntries),
		BuiltinDeleteCalendarEntry: ExecutorFunc(deleteCalendarEntry),
	}
	for _, def := range BuiltInToolDefinitions() {
		if err := registry.Register(def, executors[def.Name]); err != nil {
			return err
		}
	}
	return nil
}

// NewBuiltInRegistry returns a registry holding every built-in tool.
func NewBuiltInRegistry() (*ToolRegistry, error) {
	r := NewToolRegistry()
	if err := RegisterBuiltInExecutors(r); err != nil {
		return nil, err
	}
	return r, nil
}
