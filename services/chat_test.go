package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ascent-labs/ascent_api/dto"
)

func TestChatFallbackMatching(t *testing.T) {
	svc := &ChatService{}

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{
			name:     "system design before generic interview",
			message:  "How should I approach a system design interview?",
			contains: "system design",
		},
		{
			name:     "behavioral interview guidance",
			message:  "Any tips for behavioral rounds?",
			contains: "STAR",
		},
		{
			name:     "resume keyword",
			message:  "Can you review my RESUME bullets?",
			contains: "report card",
		},
		{
			name:     "coding practice",
			message:  "I keep failing leetcode mediums",
			contains: "streak",
		},
		{
			name:     "streak question",
			message:  "how does my streak work?",
			contains: "calendar day",
		},
		{
			name:     "no keyword falls back to default",
			message:  "hello there",
			contains: "Small consistent steps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := svc.fallback(dto.ChatRequest{Message: tt.message})

			assert.True(t, resp.Fallback)
			assert.Equal(t, "fallback", resp.Source)
			assert.Contains(t, resp.Reply, tt.contains)
		})
	}
}

func TestChatWithoutProviderUsesFallback(t *testing.T) {
	svc := &ChatService{}

	resp, err := svc.Chat("u1", dto.ChatRequest{Message: "what should my goal roadmap look like?"})

	assert.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Contains(t, resp.Reply, "milestones")
}
