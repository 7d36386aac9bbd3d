package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
)

var ajiaco = dto.AIDescriptionRequest{ProductName: "Ajiaco", Category: "Sopas", Ingredients: []string{"papa", "pollo", "guascas"}, Language: "es"}

func TestAnthropic_ParsesMarkdownWrappedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		var body anthropicRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Messages[0].Content, "guascas")
		assert.Contains(t, body.System, "español")

		text := "Aquí va:\n```json\n{\"description\": \"Sopa bogotana de tres papas.\", \"tags\": [\"Típico\", \"\"]}\n```"
		_ = json.NewEncoder(w).Encode(map[string]any{"content": []map[string]string{{"type": "text", "text": text}}})
	}))
	defer srv.Close()

	out, err := NewAnthropicService("k", "claude-test").WithURL(srv.URL).GenerateProductDescription(context.Background(), ajiaco)
	require.NoError(t, err)
	assert.Equal(t, "Sopa bogotana de tres papas.", out.Description)
	assert.Equal(t, []string{"típico"}, out.Tags)
	assert.Equal(t, "anthropic", out.Provider)
}

func TestAnthropic_ErrorsAreReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer srv.Close()

	_, err := NewAnthropicService("k", "m").WithURL(srv.URL).GenerateProductDescription(context.Background(), ajiaco)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")

	_, err = NewAnthropicService("", "m").GenerateProductDescription(context.Background(), ajiaco)
	assert.Error(t, err)
}

func TestGemini_GeneratesDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-test:generateContent"))
		assert.Equal(t, "k", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]string{{"text": `{"description":"Hearty potato soup.","tags":["comfort"]}`}}},
			}},
		})
	}))
	defer srv.Close()

	req := ajiaco
	req.Language = "en"
	out, err := NewGeminiService("k", "gemini-test").WithBaseURL(srv.URL).GenerateProductDescription(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Hearty potato soup.", out.Description)
	assert.Equal(t, "gemini", out.Provider)
}

func TestDecodeDescription_TruncatesAndRejectsEmpty(t *testing.T) {
	long := strings.Repeat("á", 400)
	out, err := decodeDescription(`{"description":"`+long+`","tags":["a","b","c","d","e","f"]}`, "x")
	require.NoError(t, err)
	assert.Len(t, []rune(out.Description), maxDescriptionRunes)
	assert.Len(t, out.Tags, maxTags)

	_, err = decodeDescription(`{"description":"  "}`, "x")
	assert.Error(t, err)
	_, err = decodeDescription(`no json`, "x")
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON(`Respuesta: {"a":1} fin`))
	assert.Equal(t, "", extractJSON("sin objeto"))
}
