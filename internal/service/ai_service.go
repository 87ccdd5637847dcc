package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"guidly_backend/internal/config"
	"guidly_backend/pkg/monitoring"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
)

// ErrAIDisabled is returned without touching the network when the backend is
// switched off. Callers treat it like any other miss and fall through.
var ErrAIDisabled = errors.New("generative backend disabled")

// TextCompleter is the consumer-side contract for the generative backend:
// one prompt in, plain text out, bounded by the context. Implementations may
// fail or return garbage at any time; every caller owns a non-generative
// fallback.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// AIService talks to an OpenAI-compatible chat-completions endpoint. The
// config is explicit state, not ambient globals, so tests substitute a fake
// and the disable switch is a deterministic branch.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{},
	}
}

// UpdateConfig swaps the backend settings at runtime (config hot reload).
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []AIChatMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends one prompt and returns the trimmed completion text. Each
// call carries its own timeout; there are no retries, callers fall through
// to a cheaper strategy instead.
func (s *AIService) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	if !cfg.Enabled {
		monitoring.AICallCounter.WithLabelValues("disabled").Inc()
		return "", ErrAIDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout())
	defer cancel()

	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	if cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		monitoring.AICallCounter.WithLabelValues("error").Inc()
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		monitoring.AICallCounter.WithLabelValues("error").Inc()
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		monitoring.AICallCounter.WithLabelValues("error").Inc()
		return "", err
	}

	if len(result.Choices) == 0 {
		monitoring.AICallCounter.WithLabelValues("error").Inc()
		return "", fmt.Errorf("AI returned no choices")
	}

	monitoring.AICallCounter.WithLabelValues("ok").Inc()
	return strings.TrimSpace(result.Choices[0].Message.Content), nil
}

// jsonObjectRe grabs the first {...} block, tolerating prose or code fences
// around the model's JSON.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// extractJSONObject defensively pulls a JSON object out of free-form model
// output and unmarshals it into dst.
func extractJSONObject(raw string, dst interface{}) bool {
	match := jsonObjectRe.FindString(raw)
	if match == "" {
		return false
	}
	return json.Unmarshal([]byte(match), dst) == nil
}

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

func extractJSONArray(raw string, dst interface{}) bool {
	match := jsonArrayRe.FindString(raw)
	if match == "" {
		return false
	}
	return json.Unmarshal([]byte(match), dst) == nil
}
