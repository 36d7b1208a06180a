package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var ErrInvalidMemoryState = goerr.New("invalid memory state")

// MemoryState is the lifecycle state of a memory for recall and curation.
type MemoryState string

const (
	MemoryStateActive   MemoryState = "active"
	MemoryStateDecaying MemoryState = "decaying"
	MemoryStateArchived MemoryState = "archived"
)

// Validate checks if the memory state is valid
func (s MemoryState) Validate() error {
	switch s {
	case MemoryStateActive, MemoryStateDecaying, MemoryStateArchived:
		return nil
	default:
		return goerr.Wrap(ErrInvalidMemoryState, "unknown state", goerr.V("state", s))
	}
}

// Memory is the backend's subjective interpretation of events. The client
// only ever reads these; synthesis happens server-side.
type Memory struct {
	ID           uuid.UUID      `json:"id"`
	AnimaID      uuid.UUID      `json:"anima_id"`
	Content      string         `json:"content,omitempty"`
	Summary      string         `json:"summary,omitempty"`
	Importance   *float64       `json:"importance,omitempty"`
	Confidence   *float64       `json:"confidence,omitempty"`
	State        MemoryState    `json:"state,omitempty"`
	RecencyScore *float64       `json:"recency_score,omitempty"`
	DecayScore   *float64       `json:"decay_score,omitempty"`
	TimeStart    *time.Time     `json:"time_start,omitempty"`
	TimeEnd      *time.Time     `json:"time_end,omitempty"`
	Meta         map[string]any `json:"meta"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
