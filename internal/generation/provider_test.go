package generation

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/config"
	"task-planner/internal/errors"
)

func testConfig(baseURL string) config.GenerationConfig {
	cfg := config.NewConfig().Generation
	cfg.BaseURL = baseURL + "/"
	cfg.APIKey = "gsk-test"
	return cfg
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"subtasks\":[]}"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(testConfig(server.URL))

	content, err := client.Complete(context.Background(), "sys", "user prompt", Options{JSONMode: true})

	require.NoError(t, err)
	assert.Equal(t, `{"subtasks":[]}`, content)
	assert.Equal(t, "mistral-saba-24b", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestOpenAIClient_PlainTextMode(t *testing.T) {
	var raw map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
	}))
	defer server.Close()

	_, err := NewOpenAIClient(testConfig(server.URL)).Complete(context.Background(), "s", "u", Options{})

	require.NoError(t, err)
	_, present := raw["response_format"]
	assert.False(t, present)
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, "AI response content was empty"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "AI response content was empty"},
		{"undecodable body", http.StatusOK, `not json`, "failed to decode response"},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, "provider error (429): slow down"},
		{"unauthorized plain body", http.StatusUnauthorized, "bad key\n", "provider error (401): bad key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewOpenAIClient(testConfig(server.URL)).Complete(context.Background(), "s", "u", Options{JSONMode: true})

			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeGeneration))
			assert.Equal(t, tt.wantMessage, err.(*errors.AppError).Message)
		})
	}
}

func TestOpenAIClient_MissingAPIKey(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.APIKey = ""

	_, err := NewOpenAIClient(cfg).Complete(context.Background(), "s", "u", Options{})

	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeGeneration))
}

func TestOpenAIClient_DeadlineExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewOpenAIClient(testConfig(server.URL)).Complete(ctx, "s", "u", Options{})

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeGeneration))
	assert.True(t, stderrors.Is(err, context.DeadlineExceeded), "deadline must stay visible through the wrapper")
}

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider(`[{"title":"x"}]`)

	content, err := p.Complete(context.Background(), "", "", Options{})
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"x"}]`, content)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Complete(ctx, "", "", Options{})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeGeneration))

	_, err = NewStaticProvider("").Complete(context.Background(), "", "", Options{})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeGeneration))
}

func TestNew(t *testing.T) {
	cfg := config.NewConfig().Generation

	p, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, p)

	cfg.Provider = config.ProviderStatic
	p, err = New(cfg)
	require.NoError(t, err)
	content, err := p.Complete(context.Background(), "", "", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultStaticResponse, content)

	path := filepath.Join(t.TempDir(), "response.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))
	cfg.StaticFile = path
	p, err = New(cfg)
	require.NoError(t, err)
	content, err = p.Complete(context.Background(), "", "", Options{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, content)

	cfg.StaticFile = filepath.Join(t.TempDir(), "missing.json")
	_, err = New(cfg)
	assert.Error(t, err)

	cfg.Provider = "unknown"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestProviderFunc(t *testing.T) {
	var p Provider = ProviderFunc(func(ctx context.Context, system, user string, opts Options) (string, error) {
		return system + "|" + user, nil
	})

	content, err := p.Complete(context.Background(), "a", "b", Options{})

	require.NoError(t, err)
	assert.Equal(t, "a|b", content)
}
