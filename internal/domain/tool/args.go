package tool

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Arguments is the argument object of one tool call. Lookups are done with
// gjson so loosely typed values can be coerced per field.
type Arguments struct {
	raw []byte
}

// ParseArguments accepts a JSON object, a JSON string containing an object,
// or nothing at all (treated as {}).
func ParseArguments(raw json.RawMessage) (Arguments, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Arguments{raw: []byte("{}")}, nil
	}
	if !gjson.ValidBytes(trimmed) {
		return Arguments{}, invalidFormat("arguments", "not valid JSON")
	}

	parsed := gjson.ParseBytes(trimmed)
	if parsed.Type == gjson.String {
		inner := strings.TrimSpace(parsed.Str)
		if inner == "" {
			return Arguments{raw: []byte("{}")}, nil
		}
		if !gjson.Valid(inner) {
			return Arguments{}, invalidFormat("arguments", "string does not hold valid JSON")
		}
		trimmed = []byte(inner)
		parsed = gjson.Parse(inner)
	}
	if !parsed.IsObject() {
		return Arguments{}, invalidFormat("arguments", "must be an object")
	}
	return Arguments{raw: trimmed}, nil
}

// MustArguments builds Arguments from a Go map; it panics on marshal failure.
func MustArguments(m map[string]any) Arguments {
	raw, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return Arguments{raw: raw}
}

// Raw returns the normalised argument object.
func (a Arguments) Raw() json.RawMessage {
	if len(a.raw) == 0 {
		return json.RawMessage("{}")
	}
	return json.RawMessage(a.raw)
}

func (a Arguments) get(field string) gjson.Result {
	return gjson.GetBytes(a.raw, field)
}

// text returns the field as text. Numbers and booleans are coerced; objects
// and arrays are rejected. present is false for absent and null fields.
func (a Arguments) text(field string) (value string, present bool, err error) {
	r := a.get(field)
	switch r.Type {
	case gjson.Null:
		return "", false, nil
	case gjson.String:
		return r.Str, true, nil
	case gjson.Number, gjson.True, gjson.False:
		return r.Raw, true, nil
	default:
		return "", false, invalidFormat(field, "expected text")
	}
}

// RequiredString returns a non-blank text field.
func (a Arguments) RequiredString(field string) (string, error) {
	v, present, err := a.text(field)
	if err != nil {
		return "", err
	}
	if !present || strings.TrimSpace(v) == "" {
		return "", missingField(field)
	}
	return v, nil
}

// OptionalString returns nil for absent, null or empty fields.
func (a Arguments) OptionalString(field string) (*string, error) {
	v, present, err := a.text(field)
	if err != nil {
		return nil, err
	}
	if !present || v == "" {
		return nil, nil
	}
	return &v, nil
}

// RequiredID returns a positive record id given as a JSON integer or a
// decimal string. Zero counts as missing.
func (a Arguments) RequiredID(field string) (int64, error) {
	r := a.get(field)
	var id int64
	switch r.Type {
	case gjson.Null:
		return 0, missingField(field)
	case gjson.Number:
		if r.Num != math.Trunc(r.Num) || math.Abs(r.Num) > math.MaxInt64/2 {
			return 0, invalidFormat(field, "expected an integer id")
		}
		n, err := strconv.ParseInt(r.Raw, 10, 64)
		if err != nil {
			n = int64(r.Num)
		}
		id = n
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		if s == "" {
			return 0, missingField(field)
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, invalidFormat(field, "expected an integer id")
		}
		id = n
	default:
		return 0, invalidFormat(field, "expected an integer id")
	}

	if id == 0 {
		return 0, missingField(field)
	}
	if id < 0 {
		return 0, invalidFormat(field, "id must be positive")
	}
	return id, nil
}

// RequiredTime returns a required ISO-8601 timestamp.
func (a Arguments) RequiredTime(field string) (time.Time, error) {
	v, err := a.RequiredString(field)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := ParseTimestamp(v)
	if !ok {
		return time.Time{}, invalidFormat(field, "use ISO 8601, e.g. 2024-01-01T10:00:00")
	}
	return t, nil
}

// isoLayouts are tried in order. Timestamps without an offset are read as UTC.
// Fractional seconds are accepted after any layout with seconds.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses the ISO-8601 forms a voice assistant is likely to emit.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
