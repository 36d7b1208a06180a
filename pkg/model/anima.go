package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const maxAnimaNameLength = 255

// Anima is the agent entity that owns memories and events. It is created by
// the backend; the client treats a received Anima as immutable.
type Anima struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
	UserID      *uuid.UUID     `json:"user_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AnimaCreate is the payload for creating an Anima.
type AnimaCreate struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Validate checks the creation payload before it is sent
func (a *AnimaCreate) Validate() error {
	if a.Name == "" {
		return goerr.New("anima name is empty")
	}
	if len(a.Name) > maxAnimaNameLength {
		return goerr.New("anima name is too long", goerr.V("length", len(a.Name)), goerr.V("max", maxAnimaNameLength))
	}
	return nil
}
