package handlers

import (
	"context"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gemma3n-site/backend/internal/chat"
	"github.com/gemma3n-site/backend/pkg/logger"
)

// WebSocketHandler streams demo completions word by word, the way the
// in-page chat renders them.
type WebSocketHandler struct {
	generator chat.Generator
}

func NewWebSocketHandler(generator chat.Generator) *WebSocketHandler {
	return &WebSocketHandler{
		generator: generator,
	}
}

func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")

	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg struct {
			Type        string  `json:"type"`
			Prompt      string  `json:"prompt"`
			Temperature float32 `json:"temperature"`
			MaxTokens   int     `json:"max_tokens"`
		}

		err := c.ReadJSON(&msg)
		if err != nil {
			logger.Error("Failed to read WebSocket message", zap.Error(err))
			break
		}

		if msg.Type != "generate" || msg.Prompt == "" {
			continue
		}

		logger.Info("Processing WebSocket generation", zap.Int("prompt_len", len(msg.Prompt)))

		params := chat.Params{
			Prompt:      msg.Prompt,
			Temperature: msg.Temperature,
			MaxTokens:   msg.MaxTokens,
		}

		err = h.streamResponse(c, params)
		if err != nil {
			logger.Error("Failed to stream response", zap.Error(err))
			h.sendError(c, "Failed to generate response")
		}
	}
}

func (h *WebSocketHandler) streamResponse(c *websocket.Conn, params chat.Params) error {
	ctx := context.Background()

	h.sendChunk(c, "status", "Generating...")

	result, err := h.generator.Generate(ctx, params)
	if err != nil {
		return err
	}

	words := splitIntoWords(result.Content)
	for i, word := range words {
		chunk := word
		if i < len(words)-1 {
			chunk += " "
		}

		err := h.sendChunk(c, "chunk", chunk)
		if err != nil {
			return err
		}
	}

	return h.sendComplete(c, result)
}

func (h *WebSocketHandler) sendChunk(c *websocket.Conn, msgType, content string) error {
	msg := map[string]interface{}{
		"type":    msgType,
		"content": content,
	}

	return c.WriteJSON(msg)
}

func (h *WebSocketHandler) sendComplete(c *websocket.Conn, result *chat.Result) error {
	msg := map[string]interface{}{
		"type":          "complete",
		"message_id":    uuid.New().String(),
		"usage":         result.Usage,
		"finish_reason": result.FinishReason,
	}

	return c.WriteJSON(msg)
}

func (h *WebSocketHandler) sendError(c *websocket.Conn, errorMsg string) {
	msg := map[string]interface{}{
		"type":  "error",
		"error": errorMsg,
	}

	c.WriteJSON(msg)
}

func splitIntoWords(text string) []string {
	words := []string{}
	currentWord := ""

	for _, char := range text {
		if char == ' ' || char == '\n' {
			if currentWord != "" {
				words = append(words, currentWord)
				currentWord = ""
			}
			if char == '\n' {
				words = append(words, "\n")
			}
		} else {
			currentWord += string(char)
		}
	}

	if currentWord != "" {
		words = append(words, currentWord)
	}

	return words
}
