package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrInvalidEventType       = goerr.New("invalid event type")
	ErrInvalidImportanceScore = goerr.New("importance score must be between 0.0 and 1.0")
)

// EventType identifies what kind of experience an event captures. The wire
// representation is always the dotted lowercase form.
type EventType string

const (
	EventTypeMessageIn  EventType = "message.in"
	EventTypeMessageOut EventType = "message.out"
	EventTypeToolCall   EventType = "tool.call"
	EventTypeToolResult EventType = "tool.result"
	EventTypeSystem     EventType = "system"
)

// EventTypes lists all valid event types in wire order.
var EventTypes = []EventType{
	EventTypeMessageIn,
	EventTypeMessageOut,
	EventTypeToolCall,
	EventTypeToolResult,
	EventTypeSystem,
}

// Validate checks if the event type is the canonical dotted form
func (t EventType) Validate() error {
	for _, v := range EventTypes {
		if t == v {
			return nil
		}
	}
	return invalidEventTypeError(string(t))
}

// ResolveEventType canonicalizes a user-supplied event type spelling into the
// dotted wire form. Accepted spellings are the dotted values themselves and
// underscore variants in any case ("MESSAGE_IN", "Tool_Call", "message_in").
// Anything else fails, including prefix matches like "TOOL_CALL_EXTRA".
func ResolveEventType(input string) (EventType, error) {
	s := strings.ToLower(input)
	if t := EventType(s); t.Validate() == nil {
		return t, nil
	}
	if t := EventType(strings.ReplaceAll(s, "_", ".")); t.Validate() == nil {
		return t, nil
	}
	return "", invalidEventTypeError(input)
}

func invalidEventTypeError(input string) error {
	valid := make([]string, len(EventTypes))
	for i, v := range EventTypes {
		valid[i] = string(v)
	}
	msg := fmt.Sprintf("invalid event type %q, valid values are: %s. Hint: use the dotted form, e.g. %q",
		input, strings.Join(valid, ", "), EventTypeMessageIn)
	return goerr.Wrap(ErrInvalidEventType, msg, goerr.V("input", input))
}

// Event is the atomic unit of experience (message, tool call, etc.) as
// returned by the backend.
type Event struct {
	ID              uuid.UUID      `json:"id"`
	AnimaID         uuid.UUID      `json:"anima_id"`
	EventType       EventType      `json:"event_type"`
	Role            string         `json:"role,omitempty"`
	Author          string         `json:"author,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	Content         string         `json:"content"`
	OccurredAt      *time.Time     `json:"occurred_at,omitempty"`
	SessionID       string         `json:"session_id,omitempty"`
	Meta            map[string]any `json:"meta"`
	SourceURI       string         `json:"source_uri,omitempty"`
	DedupeKey       string         `json:"dedupe_key,omitempty"`
	ImportanceScore *float64       `json:"importance_score,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// EventCreate is the payload for recording an Event. OccurredAt defaults to
// "now" on the server when absent. Meta is always present on the wire, empty
// by default.
type EventCreate struct {
	AnimaID         uuid.UUID      `json:"anima_id"`
	EventType       EventType      `json:"event_type"`
	Content         string         `json:"content"`
	Role            string         `json:"role,omitempty"`
	Author          string         `json:"author,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	OccurredAt      *time.Time     `json:"occurred_at,omitempty"`
	SessionID       string         `json:"session_id,omitempty"`
	Meta            map[string]any `json:"meta"`
	SourceURI       string         `json:"source_uri,omitempty"`
	DedupeKey       string         `json:"dedupe_key,omitempty"`
	ImportanceScore *float64       `json:"importance_score,omitempty"`
}

// Validate is the safety net before an event payload goes on the wire. It
// accepts only the canonical dotted event type, so a hand-built payload
// cannot bypass ResolveEventType.
func (e *EventCreate) Validate() error {
	if e.AnimaID == uuid.Nil {
		return goerr.New("anima_id is required")
	}
	if err := e.EventType.Validate(); err != nil {
		return err
	}
	if e.Content == "" {
		return goerr.New("event content is empty")
	}
	if e.ImportanceScore != nil {
		if s := *e.ImportanceScore; s < 0.0 || s > 1.0 {
			return goerr.Wrap(ErrInvalidImportanceScore, "importance score out of range", goerr.V("importance_score", s))
		}
	}
	return nil
}
