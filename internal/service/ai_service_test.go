package service

import (
	"context"
	"encoding/json"
	"guidly_backend/internal/config"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAIService(baseURL string) *AIService {
	return NewAIService(config.AIConfig{
		BaseURL:        baseURL,
		Model:          "test-model",
		Enabled:        true,
		TimeoutSeconds: 5,
	})
}

func TestCompleteDisabled(t *testing.T) {
	svc := NewAIService(config.AIConfig{Enabled: false})

	_, err := svc.Complete(context.Background(), "anything", 50)
	assert.ErrorIs(t, err, ErrAIDisabled)
}

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, 120, req.MaxTokens)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "  hello there \n"}},
			},
		})
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)

	out, err := svc.Complete(context.Background(), "say hello", 120)
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
}

func TestCompleteAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{
		BaseURL: server.URL,
		APIKey:  "sk-test",
		Enabled: true,
	})

	_, err := svc.Complete(context.Background(), "x", 10)
	assert.NoError(t, err)
}

func TestCompleteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)

	_, err := svc.Complete(context.Background(), "x", 10)
	assert.Error(t, err)
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	svc := newTestAIService(server.URL)

	_, err := svc.Complete(context.Background(), "x", 10)
	assert.Error(t, err)
}

func TestUpdateConfig(t *testing.T) {
	svc := NewAIService(config.AIConfig{Enabled: true, BaseURL: "http://unused"})
	svc.UpdateConfig(config.AIConfig{Enabled: false})

	_, err := svc.Complete(context.Background(), "x", 10)
	assert.ErrorIs(t, err, ErrAIDisabled)
}

func TestExtractJSONObject(t *testing.T) {
	var out struct {
		Explanation string `json:"explanation"`
	}

	ok := extractJSONObject("Sure! Here you go:\n```json\n{\"explanation\": \"because\"}\n```", &out)
	assert.True(t, ok)
	assert.Equal(t, "because", out.Explanation)

	assert.False(t, extractJSONObject("no json here", &out))
	assert.False(t, extractJSONObject("{broken", &out))
}

func TestExtractJSONArray(t *testing.T) {
	var out []struct {
		QuestionText string `json:"questionText"`
	}

	ok := extractJSONArray("drafts: [{\"questionText\": \"What is 2+2?\"}]", &out)
	assert.True(t, ok)
	assert.Len(t, out, 1)

	assert.False(t, extractJSONArray("nothing", &out))
}
