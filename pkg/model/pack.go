package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// MemoryPack is a compiled memory pack for LLM context injection.
//
// Content holds the nested sections as the backend compiled them. The count
// fields are advisory summaries; they are not guaranteed to match the actual
// nested arrays, so the accessors always re-check presence in Content
// instead of trusting the counters.
type MemoryPack struct {
	ID                  uuid.UUID      `json:"id"`
	AnimaID             uuid.UUID      `json:"anima_id"`
	Query               string         `json:"query,omitempty"`
	PresetName          string         `json:"preset_name,omitempty"`
	SessionMemoryCount  int            `json:"session_memory_count"`
	KnowledgeCount      int            `json:"knowledge_count"`
	LongTermMemoryCount int            `json:"long_term_memory_count"`
	HasIdentity         bool           `json:"has_identity"`
	TokenCount          int            `json:"token_count"`
	MaxTokens           int            `json:"max_tokens"`
	Content             map[string]any `json:"content"`
	CompiledAt          time.Time      `json:"compiled_at"`
	CreatedAt           time.Time      `json:"created_at"`
}

// ScoredMemory is a memory with its scoring breakdown from pack compilation.
// It is a read-only view over pack content, not a persisted entity.
type ScoredMemory struct {
	ID         uuid.UUID          `json:"id"`
	Summary    string             `json:"summary,omitempty"`
	Score      float64            `json:"score"`
	Reason     string             `json:"reason,omitempty"`
	Breakdown  map[string]float64 `json:"breakdown,omitempty"`
	Similarity *float64           `json:"similarity,omitempty"`
}

// ScoredKnowledge is a knowledge item with its similarity score from pack
// compilation.
type ScoredKnowledge struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	Score      float64   `json:"score"`
	Similarity *float64  `json:"similarity,omitempty"`
}

// IdentityContext is the identity layer section of a pack.
type IdentityContext struct {
	PersonalityType    string         `json:"personality_type,omitempty"`
	CommunicationStyle string         `json:"communication_style,omitempty"`
	SelfReflection     map[string]any `json:"self_reflection,omitempty"`
	Prose              string         `json:"prose,omitempty"`
}

// TemporalContext is the temporal awareness section of a pack, used to
// bridge gaps between sessions.
type TemporalContext struct {
	LastEventAt   time.Time `json:"last_event_at"`
	HoursAgo      float64   `json:"hours_ago"`
	MemorySummary string    `json:"memory_summary,omitempty"`
	Formatted     string    `json:"formatted"`
}

// AsPrompt returns the pre-formatted context string for LLM injection.
func (p *MemoryPack) AsPrompt() string {
	s, _ := p.Content["context"].(string)
	return s
}

// Identity returns the identity section, or nil if the pack has none.
// HasIdentity is advisory only; presence in Content decides.
func (p *MemoryPack) Identity() (*IdentityContext, error) {
	return decodeSection[IdentityContext](p.Content, "identity")
}

// SessionMemories returns the scored session memories in the pack.
func (p *MemoryPack) SessionMemories() ([]ScoredMemory, error) {
	return decodeItems[ScoredMemory](p.Content, "session_memories")
}

// Knowledge returns the scored knowledge items in the pack.
func (p *MemoryPack) Knowledge() ([]ScoredKnowledge, error) {
	return decodeItems[ScoredKnowledge](p.Content, "knowledge")
}

// LongTermMemories returns the scored long-term memories in the pack.
func (p *MemoryPack) LongTermMemories() ([]ScoredMemory, error) {
	return decodeItems[ScoredMemory](p.Content, "long_term_memories")
}

// Temporal returns the temporal context section, or nil if absent.
func (p *MemoryPack) Temporal() (*TemporalContext, error) {
	return decodeSection[TemporalContext](p.Content, "temporal_context")
}

// decodeSection extracts an optional nested object from pack content.
// Missing or null sections yield nil, not an error.
func decodeSection[T any](content map[string]any, key string) (*T, error) {
	raw, ok := content[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var out T
	if err := reencode(raw, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode pack section", goerr.V("section", key))
	}
	return &out, nil
}

// decodeItems extracts an optional nested array from pack content.
func decodeItems[T any](content map[string]any, key string) ([]T, error) {
	raw, ok := content[key]
	if !ok || raw == nil {
		return nil, nil
	}
	var out []T
	if err := reencode(raw, &out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode pack section", goerr.V("section", key))
	}
	return out, nil
}

// reencode converts a decoded-from-JSON value into a typed struct by a JSON
// round trip. Pack content stays loosely typed until a view is requested.
func reencode(raw any, out any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
