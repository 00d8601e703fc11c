// Package assistant implements the navigation chat assistant: it answers
// questions about the user's collection with a streamed model reply and turns
// the reply's recommendation markers into concrete website suggestions.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"navhub/internal/catalog"
	"navhub/pkg/aiclient"
	"navhub/pkg/domain"
	"navhub/pkg/metrics"
	"navhub/pkg/serrors"
	"navhub/pkg/storage"
)

// Event is one streamed piece of an assistant reply: either display text or,
// once the reply is complete, the resolved website recommendations.
type Event struct {
	Content         string
	Recommendations []domain.Website
}

// Assistant streams chat replies about the user's website collection.
type Assistant interface {
	// Chat streams the reply to a conversation through emit. messages is the
	// user/assistant history, newest last. Recommendation markers are stripped
	// from the text events; after the reply completes, a final event carries
	// the resolved recommendations when there are any. An emit error aborts
	// the stream and is returned as-is.
	Chat(ctx context.Context, messages []aiclient.Message, emit func(Event) error) error
}

type service struct {
	ai      aiclient.Client
	catalog catalog.Catalog
}

// New returns an Assistant backed by the given model client and catalog.
func New(ai aiclient.Client, cat catalog.Catalog) Assistant {
	return &service{ai: ai, catalog: cat}
}

// Ensure service conforms to the Assistant interface at compile time.
var _ Assistant = (*service)(nil)

func (s *service) Chat(ctx context.Context, messages []aiclient.Message, emit func(Event) error) error {
	conversation, err := conversationMessages(messages)
	if err != nil {
		return err
	}

	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return err
	}
	websites, err := s.catalog.Websites(ctx, storage.WebsiteFilter{})
	if err != nil {
		return err
	}

	prompt := []aiclient.Message{{Role: aiclient.RoleSystem, Content: chatSystemPrompt(categories, websites)}}
	prompt = append(prompt, conversation...)

	stream, err := s.ai.ChatStream(ctx, prompt)
	if err != nil {
		return fmt.Errorf("could not start chat stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	metrics.ChatStreamsTotal.Inc()

	var reply strings.Builder
	var filter markerFilter
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("could not receive chat chunk: %w", err)
		}

		reply.WriteString(chunk.Content)
		if text := filter.feed(chunk.Content); text != "" {
			if err := emit(Event{Content: text}); err != nil {
				return err
			}
		}
	}
	if text := filter.flush(); text != "" {
		if err := emit(Event{Content: text}); err != nil {
			return err
		}
	}

	recommendations := extractRecommendations(reply.String(), websites)
	if len(recommendations) == 0 {
		return nil
	}
	metrics.ChatRecommendationsTotal.Add(float64(len(recommendations)))

	return emit(Event{Recommendations: recommendations})
}

// conversationMessages validates the incoming history: system turns are
// rejected (the persona prompt is built server-side), empty turns are
// dropped, and the conversation must end with a non-empty user message.
func conversationMessages(messages []aiclient.Message) ([]aiclient.Message, error) {
	conversation := make([]aiclient.Message, 0, len(messages))
	for _, message := range messages {
		if message.Role == aiclient.RoleSystem {
			return nil, serrors.With(serrors.ErrBadRequest, "system messages are not accepted")
		}
		if message.Role != aiclient.RoleUser && message.Role != aiclient.RoleAssistant {
			return nil, serrors.With(serrors.ErrBadRequest, "unknown message role %q", message.Role)
		}
		if strings.TrimSpace(message.Content) == "" {
			continue
		}
		conversation = append(conversation, message)
	}

	if len(conversation) == 0 || conversation[len(conversation)-1].Role != aiclient.RoleUser {
		return nil, serrors.With(serrors.ErrBadRequest, "conversation must end with a user message")
	}

	return conversation, nil
}
