package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"navhub/internal/assistant"
	"navhub/pkg/aiclient"
	"navhub/pkg/domain"
	"navhub/pkg/logger"
)

type analyzeWebsiteRequest struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Messages []aiclient.Message `json:"messages"`
}

// chatContentEvent is one streamed text delta of a chat reply.
type chatContentEvent struct {
	Content string `json:"content"`
}

// chatRecommendationsEvent carries the resolved recommendations once the
// reply is complete.
type chatRecommendationsEvent struct {
	Content         string           `json:"content"`
	Recommendations []domain.Website `json:"recommendations"`
}

type chatErrorEvent struct {
	Error string `json:"error"`
}

func (h *handler) analyzeWebsite(c *gin.Context) {
	var req analyzeWebsiteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})

		return
	}

	analysis, err := h.deps.Analyzer.Analyze(c.Request.Context(), req.URL)
	if err != nil {
		abortWithError(c, err)

		return
	}

	c.JSON(http.StatusOK, analysis)
}

// chat streams the assistant reply as server-sent events: one
// `data: {"content":...}` event per text delta, one
// `data: {"recommendations":[...]}` event when the reply recommended
// websites, and a final `data: [DONE]`. Errors before the first event are
// plain JSON responses; later ones become a terminal error event.
func (h *handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming unavailable"})

		return
	}

	started := false
	startStream := func() {
		if started {
			return
		}
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
		started = true
	}
	writeEvent := func(payload any) error {
		startStream()

		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("could not marshal event: %w", err)
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", data); err != nil {
			return fmt.Errorf("could not write event: %w", err)
		}
		flusher.Flush()

		return nil
	}

	err := h.deps.Assistant.Chat(c.Request.Context(), req.Messages, func(event assistant.Event) error {
		if len(event.Recommendations) > 0 {
			return writeEvent(chatRecommendationsEvent{Recommendations: event.Recommendations})
		}

		return writeEvent(chatContentEvent{Content: event.Content})
	})
	if err != nil {
		if !started {
			abortWithError(c, err)

			return
		}
		logger.Warn(c.Request.Context(), "chat stream failed", zap.Error(err))
		_ = writeEvent(chatErrorEvent{Error: "chat failed"})
	}

	startStream()
	_, _ = fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}
