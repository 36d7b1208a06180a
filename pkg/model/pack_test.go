package model_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/elephantasm/elephantasm-go/pkg/model"
)

const packFixture = `{
	"id": "3f0b87f6-41f4-4f3c-9d52-6a2f2a4b8f01",
	"anima_id": "7f9c8a4e-0f3a-4f4e-8f2f-0a1b2c3d4e5f",
	"preset_name": "conversational",
	"session_memory_count": 2,
	"knowledge_count": 3,
	"long_term_memory_count": 1,
	"has_identity": true,
	"token_count": 1500,
	"max_tokens": 4000,
	"content": {
		"context": "You have memories of past conversations with this user.",
		"identity": {
			"personality_type": "INTJ",
			"communication_style": "direct",
			"self_reflection": {"core_values": ["accuracy", "efficiency"]},
			"prose": "You are a thoughtful assistant."
		},
		"session_memories": [
			{
				"id": "11111111-1111-1111-1111-111111111111",
				"summary": "User asked about weather",
				"score": 0.9,
				"reason": "Recent and relevant",
				"breakdown": {"recency": 0.95, "importance": 0.85}
			}
		],
		"knowledge": [
			{
				"id": "22222222-2222-2222-2222-222222222222",
				"content": "User prefers concise responses",
				"type": "preference",
				"score": 0.85,
				"similarity": 0.78
			}
		],
		"long_term_memories": [
			{
				"id": "33333333-3333-3333-3333-333333333333",
				"summary": "User works in tech",
				"score": 0.75,
				"reason": "Background context",
				"breakdown": {"importance": 0.8, "confidence": 0.7},
				"similarity": 0.65
			}
		],
		"temporal_context": {
			"last_event_at": "2025-06-01T10:00:00Z",
			"hours_ago": 2.5,
			"memory_summary": "discussing project plans",
			"formatted": "Your last conversation was 2.5 hours ago about project plans."
		}
	},
	"compiled_at": "2025-06-01T12:30:00Z",
	"created_at": "2025-06-01T12:30:00Z"
}`

func loadPack(t *testing.T) *model.MemoryPack {
	t.Helper()
	var pack model.MemoryPack
	gt.NoError(t, json.Unmarshal([]byte(packFixture), &pack))
	return &pack
}

func TestMemoryPackAsPrompt(t *testing.T) {
	pack := loadPack(t)
	gt.S(t, pack.AsPrompt()).Contains("memories of past conversations")

	empty := &model.MemoryPack{}
	gt.Equal(t, empty.AsPrompt(), "")
}

func TestMemoryPackIdentity(t *testing.T) {
	pack := loadPack(t)

	identity, err := pack.Identity()
	gt.NoError(t, err)
	gt.NotNil(t, identity)
	gt.Equal(t, identity.PersonalityType, "INTJ")
	gt.Equal(t, identity.CommunicationStyle, "direct")
	gt.NotEqual(t, identity.Prose, "")
}

func TestMemoryPackIdentityAbsent(t *testing.T) {
	pack := loadPack(t)

	// HasIdentity is advisory only: with the section removed from content,
	// the accessor reports absence regardless of the counter.
	delete(pack.Content, "identity")
	gt.True(t, pack.HasIdentity)

	identity, err := pack.Identity()
	gt.NoError(t, err)
	gt.True(t, identity == nil)
}

func TestMemoryPackSessionMemories(t *testing.T) {
	pack := loadPack(t)

	memories, err := pack.SessionMemories()
	gt.NoError(t, err)
	gt.Equal(t, len(memories), 1)
	gt.Equal(t, memories[0].Score, 0.9)
	gt.Equal(t, memories[0].Summary, "User asked about weather")
	gt.Equal(t, memories[0].Breakdown["recency"], 0.95)

	// The declared count does not bind the accessor.
	gt.Equal(t, pack.SessionMemoryCount, 2)
}

func TestMemoryPackKnowledge(t *testing.T) {
	pack := loadPack(t)

	knowledge, err := pack.Knowledge()
	gt.NoError(t, err)
	gt.Equal(t, len(knowledge), 1)
	gt.Equal(t, knowledge[0].Type, "preference")
	gt.Equal(t, knowledge[0].Score, 0.85)
	gt.NotNil(t, knowledge[0].Similarity)
	gt.Equal(t, *knowledge[0].Similarity, 0.78)
}

func TestMemoryPackLongTermMemories(t *testing.T) {
	pack := loadPack(t)

	memories, err := pack.LongTermMemories()
	gt.NoError(t, err)
	gt.Equal(t, len(memories), 1)
	gt.Equal(t, memories[0].Score, 0.75)
	gt.NotNil(t, memories[0].Similarity)
}

func TestMemoryPackTemporal(t *testing.T) {
	pack := loadPack(t)

	temporal, err := pack.Temporal()
	gt.NoError(t, err)
	gt.NotNil(t, temporal)
	gt.Equal(t, temporal.HoursAgo, 2.5)
	gt.S(t, temporal.Formatted).Contains("2.5 hours ago")

	delete(pack.Content, "temporal_context")
	temporal, err = pack.Temporal()
	gt.NoError(t, err)
	gt.True(t, temporal == nil)
}

func TestMemoryPackMissingSections(t *testing.T) {
	pack := &model.MemoryPack{Content: map[string]any{}}

	memories, err := pack.SessionMemories()
	gt.NoError(t, err)
	gt.Equal(t, len(memories), 0)

	knowledge, err := pack.Knowledge()
	gt.NoError(t, err)
	gt.Equal(t, len(knowledge), 0)

	identity, err := pack.Identity()
	gt.NoError(t, err)
	gt.True(t, identity == nil)
}

func TestMemoryPackMalformedSection(t *testing.T) {
	pack := &model.MemoryPack{Content: map[string]any{
		"session_memories": "not an array",
	}}

	_, err := pack.SessionMemories()
	gt.Error(t, err)
}
