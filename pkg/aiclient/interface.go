// Package aiclient defines interfaces and data types used to exchange chat
// completions with a backing language-model provider.
package aiclient

import (
	"context"
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single message of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chunk is one incremental piece of a streamed completion.
type Chunk struct {
	Content string
}

// Stream delivers a completion incrementally. Recv returns io.EOF once the
// provider signals completion; Close releases the underlying connection and
// must always be called.
type Stream interface {
	Recv() (Chunk, error)
	Close() error
}

// Client is the abstraction for chat-completion providers. Implementations
// talk to a concrete model API.
type Client interface {
	// Chat sends the conversation and returns the complete assistant reply.
	Chat(ctx context.Context, messages []Message) (string, error)
	// ChatStream sends the conversation and returns the assistant reply as a
	// stream of chunks.
	ChatStream(ctx context.Context, messages []Message) (Stream, error)
}
