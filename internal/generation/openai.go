package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"task-planner/internal/config"
	"task-planner/internal/errors"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint (Groq by default)
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	client      *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewOpenAIClient creates a new client from generation config
func NewOpenAIClient(cfg config.GenerationConfig) *OpenAIClient {
	return &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{},
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *OpenAIClient) WithHTTPClient(client *http.Client) *OpenAIClient {
	c.client = client
	return c
}

// Complete sends one chat completion request. No retries are attempted.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	if c.apiKey == "" {
		return "", errors.NewGenerationError("API key is not configured", nil)
	}

	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}
	if opts.JSONMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", errors.NewGenerationError("failed to marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.NewGenerationError("failed to create request", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", errors.NewGenerationError("HTTP request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewGenerationError("failed to read response body", err)
	}

	log.WithFields(log.Fields{
		"model":    c.model,
		"status":   resp.StatusCode,
		"duration": time.Since(started),
	}).Debug("chat completion finished")

	if resp.StatusCode != http.StatusOK {
		var providerErr apiError
		if json.Unmarshal(respBody, &providerErr) == nil && providerErr.Error.Message != "" {
			return "", errors.NewGenerationError(
				fmt.Sprintf("provider error (%d): %s", resp.StatusCode, providerErr.Error.Message), nil).
				WithContext("status", resp.StatusCode)
		}
		return "", errors.NewGenerationError(
			fmt.Sprintf("provider error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody))), nil).
			WithContext("status", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", errors.NewGenerationError("failed to decode response", err)
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", errors.NewGenerationError("AI response content was empty", nil)
	}

	return chatResp.Choices[0].Message.Content, nil
}
