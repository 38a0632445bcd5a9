package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Equal(t, "献立", req.Prompt)
		assert.False(t, req.Stream)

		resp := map[string]interface{}{
			"model":    req.Model,
			"response": "使用食材: 大根、生姜\n",
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	gen := NewGenerator(server.URL+"/", "llama3.2", time.Second)

	text, err := gen.Generate(context.Background(), "献立")
	require.NoError(t, err)
	assert.Equal(t, "使用食材: 大根、生姜", text)
}

func TestOllamaGenerateNetworkError(t *testing.T) {
	gen := NewGenerator("http://localhost:99999", "llama3.2", time.Second)

	_, err := gen.Generate(context.Background(), "献立")
	assert.Error(t, err)
}

func TestOllamaGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewGenerator(server.URL, "llama3.2", time.Second).Generate(context.Background(), "献立")
	assert.Error(t, err)
}

func TestOllamaGenerateEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"   "}`))
	}))
	defer server.Close()

	_, err := NewGenerator(server.URL, "llama3.2", time.Second).Generate(context.Background(), "献立")
	assert.Error(t, err)
}
