package tool

import (
	"encoding/json"
)

// Request is the webhook body sent by the voice platform. Only the tool
// calls are read; assistant, call and artifact metadata are ignored.
type Request struct {
	Message Message `json:"message"`
}

type Message struct {
	Type      string `json:"type,omitempty"`
	ToolCalls []Call `json:"toolCalls"`
	// ToolCallList mirrors ToolCalls in newer payloads; used when ToolCalls is empty.
	ToolCallList []Call `json:"toolCallList,omitempty"`
}

type Call struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type Function struct {
	Name string `json:"name"`
	// Arguments is an object, or a string holding a JSON object.
	Arguments json.RawMessage `json:"arguments"`
}

// Calls returns the tool calls in request order.
func (m Message) Calls() []Call {
	if len(m.ToolCalls) > 0 {
		return m.ToolCalls
	}
	return m.ToolCallList
}

// FindCall returns the first call named name.
func (m Message) FindCall(name string) (Call, bool) {
	for _, c := range m.Calls() {
		if c.Function.Name == name {
			return c, true
		}
	}
	return Call{}, false
}

// CallResult pairs one tool call id with its result payload.
type CallResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     any    `json:"result"`
}

// Response serialises as {Key: Results}.
type Response struct {
	Key     string
	Results []CallResult
}

func (r Response) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]CallResult{r.Key: r.Results})
}

// Deletion is the result body of every delete tool.
type Deletion struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

// Response keys.
const (
	KeyResults = "results"
	KeyResult  = "result"
)

// EnvelopeStyle selects the key of non-delete responses.
type EnvelopeStyle int

const (
	// EnvelopeResults uses "results" for every operation.
	EnvelopeResults EnvelopeStyle = iota
	// EnvelopeLegacy uses "result" for create/read/update and "results" for delete.
	EnvelopeLegacy
)

func (s EnvelopeStyle) keyFor(f Family) string {
	if f == FamilyDelete || s == EnvelopeResults {
		return KeyResults
	}
	return KeyResult
}
