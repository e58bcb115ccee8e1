package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"oabstudy/internal/models"
)

// ChatClient talks to the assistant service, which lives apart from the main
// backend and authenticates with a static API key instead of the student token.
type ChatClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// ChatInput is one message typed by the student.
type ChatInput struct {
	UserName    string
	Message     string
	ContextType string
}

func NewChatClient(baseURL, apiKey string, httpClient *http.Client) *ChatClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    httpClient,
	}
}

// Send posts the message to /api/chat and returns the assistant's reply.
func (c *ChatClient) Send(ctx context.Context, in ChatInput) (*models.ChatReply, error) {
	if in.ContextType == "" {
		in.ContextType = DefaultContextType
	}

	payload, err := json.Marshal(models.ChatRequest{
		UserName:    in.UserName,
		Message:     in.Message,
		ContextType: in.ContextType,
	})
	if err != nil {
		return nil, fmt.Errorf("encode chat message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	raw, err := do(c.http, req)
	if err != nil {
		return nil, err
	}

	var reply models.ChatReply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, &APIError{Kind: KindDecode, Message: fmt.Sprintf("decode chat reply: %v", err), Err: err}
	}
	return &reply, nil
}
