package openaitts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

func TestConfig_Validate(t *testing.T) {
	config := &Config{APIKey: "sk-test"}
	require.NoError(t, config.Validate())
	assert.Equal(t, ProductionURL, config.BaseURL)
	assert.Equal(t, "tts-1", config.Model)
	assert.Equal(t, "alloy", config.Voice)

	assert.ErrorIs(t, (&Config{}).Validate(), ErrConfigMissingKey)
}

func TestSynthesizer_Synthesize(t *testing.T) {
	audio := []byte("ID3-fake-mp3-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tts-1", req.Model)
		assert.Equal(t, "Fresh goat cheese, made this morning.", req.Input)
		assert.Equal(t, "nova", req.Voice)
		assert.Equal(t, "mp3", req.ResponseFormat)

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer server.Close()

	s, err := NewSynthesizer(&Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	got, err := s.Synthesize(context.Background(), video.SpeechRequest{
		Text:  "Fresh goat cheese, made this morning.",
		Voice: "nova",
	})
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

func TestSynthesizer_Synthesize_DefaultVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alloy", req.Voice)
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	s, err := NewSynthesizer(&Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), video.SpeechRequest{Text: "hello"})
	require.NoError(t, err)
}

func TestSynthesizer_Synthesize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "requests"}}`))
	}))
	defer server.Close()

	s, err := NewSynthesizer(&Config{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), video.SpeechRequest{Text: "hello"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rate limit reached")
}

func TestSynthesizer_Synthesize_EmptyText(t *testing.T) {
	s, err := NewSynthesizer(&Config{APIKey: "sk-test"})
	require.NoError(t, err)

	_, err = s.Synthesize(context.Background(), video.SpeechRequest{})
	assert.Error(t, err)
}
