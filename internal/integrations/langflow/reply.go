package langflow

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse means the upstream body was not valid JSON.
	ErrMalformedResponse = errors.New("langflow: response is not valid JSON")
	// ErrUnexpectedShape means the body was JSON but no known path held reply text.
	ErrUnexpectedShape = errors.New("langflow: unexpected response format")
)

// Reply is the normalized upstream answer.
type Reply struct {
	Text      string
	SessionID string
	// Shape names the accessor path that produced Text.
	Shape string
}

// replyPath is one known location of the reply text. Elements are object
// keys (string) or array indices (int).
type replyPath struct {
	shape string
	steps []any
}

// Checked in order; the first non-empty string wins.
var replyPaths = []replyPath{
	{shape: "results.message.text", steps: []any{"outputs", 0, "outputs", 0, "results", "message", "text"}},
	{shape: "outputs.message.message", steps: []any{"outputs", 0, "outputs", 0, "outputs", "message", "message"}},
	{shape: "messages.message", steps: []any{"outputs", 0, "outputs", 0, "messages", 0, "message"}},
}

// ExtractReply decodes a run-flow response body and pulls out the reply text
// and the upstream session id.
func ExtractReply(body []byte) (Reply, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for _, p := range replyPaths {
		text, ok := lookupString(doc, p.steps)
		if !ok {
			continue
		}
		sessionID, _ := lookupString(doc, []any{"session_id"})
		return Reply{Text: text, SessionID: sessionID, Shape: p.shape}, nil
	}
	return Reply{}, ErrUnexpectedShape
}

// lookupString walks steps through a decoded JSON document and reports the
// value found there if it is a non-empty string.
func lookupString(doc any, steps []any) (string, bool) {
	cur := doc
	for _, step := range steps {
		switch s := step.(type) {
		case string:
			obj, ok := cur.(map[string]any)
			if !ok {
				return "", false
			}
			if cur, ok = obj[s]; !ok {
				return "", false
			}
		case int:
			arr, ok := cur.([]any)
			if !ok || s < 0 || s >= len(arr) {
				return "", false
			}
			cur = arr[s]
		default:
			return "", false
		}
	}
	str, ok := cur.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}
