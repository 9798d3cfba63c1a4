package ask

import (
	"bytes"
	"encoding/json"
)

// Request is the body POSTed to the ask endpoint.
type Request struct {
	Query string `json:"query"`
}

// Response is the body returned by the ask endpoint.
type Response struct {
	Response json.RawMessage `json:"response"`
}

// Text returns the response field as display text. A JSON string is returned
// as-is, a missing or null field is empty, and any other value is returned as
// its raw JSON text.
func (r Response) Text() string {
	raw := bytes.TrimSpace(r.Response)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
