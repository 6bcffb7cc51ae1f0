package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"meal-planning-assistant/pkg/gemini"
)

func TestConfig_Validate(t *testing.T) {
	cfg := gemini.Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing API key")
	}

	cfg = gemini.Config{APIKey: "k"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model != gemini.DefaultModel {
		t.Errorf("expected default model, got %q", cfg.Model)
	}
	if cfg.APIURL != gemini.DefaultAPIURL {
		t.Errorf("expected default API URL, got %q", cfg.APIURL)
	}
}

func TestGenerateContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		// Structured output requests must carry the response schema through.
		if strings.Contains(r.URL.Path, "schema-model") {
			gc, ok := body["generationConfig"].(map[string]interface{})
			if !ok || gc["responseMimeType"] != "application/json" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"candidates": [
				{"content": {"role": "model", "parts": [{"text": "mocked response"}]}}
			],
			"usageMetadata": {"promptTokenCount": 10, "candidatesTokenCount": 5, "totalTokenCount": 15}
		}`))
	}))
	defer ts.Close()

	t.Run("success flow", func(t *testing.T) {
		client, err := gemini.New(gemini.Config{APIKey: "test-api-key", Model: "test-model", APIURL: ts.URL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp, err := client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{
				{Role: "user", Parts: []gemini.Part{{Text: "Hello"}}},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resp.Content.Parts) != 1 || resp.Content.Parts[0].Text != "mocked response" {
			t.Errorf("unexpected response content: %+v", resp.Content)
		}
		if resp.Usage.TotalTokens != 15 {
			t.Errorf("expected 15 total tokens, got %d", resp.Usage.TotalTokens)
		}
	})

	t.Run("structured output carries schema", func(t *testing.T) {
		client, err := gemini.New(gemini.Config{APIKey: "test-api-key", Model: "schema-model", APIURL: ts.URL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = client.GenerateContent(context.Background(), &gemini.Request{
			Messages:         []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "classify"}}}},
			ResponseMIMEType: "application/json",
			ResponseSchema: map[string]interface{}{
				"type": "object",
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("bad key returns error", func(t *testing.T) {
		client, err := gemini.New(gemini.Config{APIKey: "wrong", Model: "m", APIURL: ts.URL})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err = client.GenerateContent(context.Background(), &gemini.Request{
			Messages: []gemini.Content{{Role: "user", Parts: []gemini.Part{{Text: "Hello"}}}},
		})
		if err == nil {
			t.Error("expected API error")
		}
	})
}
