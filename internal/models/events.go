// internal/models/events.go
package models

// Stream event types. A stream carries exactly one start event, any number
// of content events, and exactly one terminal event (complete or error).
const (
	EventStart    = "start"
	EventContent  = "content"
	EventComplete = "complete"
	EventError    = "error"
)

// StreamEvent is the wire-level event relayed to the caller while a plan
// is being generated.
type StreamEvent struct {
	Type    string       `json:"type"`
	Content string       `json:"content,omitempty"`
	PlanID  string       `json:"plan_id,omitempty"`
	Summary *PlanSummary `json:"summary,omitempty"`
	Code    string       `json:"code,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// StartEvent opens a stream.
func StartEvent() StreamEvent {
	return StreamEvent{Type: EventStart}
}

// ContentEvent carries one text delta. Deltas are never empty.
func ContentEvent(delta string) StreamEvent {
	return StreamEvent{Type: EventContent, Content: delta}
}

// CompleteEvent closes a stream after a successful persist.
func CompleteEvent(planID string, summary PlanSummary) StreamEvent {
	return StreamEvent{Type: EventComplete, PlanID: planID, Summary: &summary}
}

// ErrorEvent closes a stream after a failure. The code distinguishes a
// model stream failure from a persistence failure.
func ErrorEvent(code, message string) StreamEvent {
	return StreamEvent{Type: EventError, Code: code, Error: message}
}
