package types

// Message statuses reported by the ImaginePro API
const (
	StatusProcessing = "PROCESSING"
	StatusQueued     = "QUEUED"
	StatusDone       = "DONE"
	StatusFail       = "FAIL"
)

// IsTerminal reports whether polling should stop at the given status.
// FAIL is terminal but not an error; callers inspect Message.Error.
func IsTerminal(status string) bool {
	return status == StatusDone || status == StatusFail
}

// TaskResponse is the acceptance response returned by the imagine and
// button endpoints. It acknowledges the created task; completion is
// observed separately by fetching the message.
type TaskResponse struct {
	MessageID string `json:"messageId"`
	Success   bool   `json:"success"`
	CreatedAt string `json:"createdAt,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Message is a snapshot of one generation task as reported by the API.
// The library never mutates messages locally.
type Message struct {
	MessageID            string   `json:"messageId"`
	Prompt               string   `json:"prompt,omitempty"`
	OriginalURL          string   `json:"originalUrl,omitempty"`
	URI                  string   `json:"uri,omitempty"`
	Progress             int      `json:"progress"`
	Status               string   `json:"status"`
	CreatedAt            string   `json:"createdAt,omitempty"`
	UpdatedAt            string   `json:"updatedAt,omitempty"`
	Buttons              []string `json:"buttons,omitempty"`
	OriginatingMessageID string   `json:"originatingMessageId,omitempty"`
	Ref                  string   `json:"ref,omitempty"`
	Error                string   `json:"error,omitempty"`
}

// String returns a pointer to v, for filling optional parameter fields.
func String(v string) *string { return &v }

// Int returns a pointer to v, for filling optional parameter fields.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for filling optional parameter fields.
func Bool(v bool) *bool { return &v }
