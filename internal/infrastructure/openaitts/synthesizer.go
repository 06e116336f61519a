package openaitts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

// maxAudioSize is the maximum accepted audio payload (25MB)
const maxAudioSize = 25 * 1024 * 1024

// Config holds configuration for the OpenAI speech endpoint
type Config struct {
	// APIKey is the OpenAI API key
	APIKey string
	// BaseURL is the API base, normally https://api.openai.com
	BaseURL string
	// Model is the TTS model (tts-1 or tts-1-hd)
	Model string
	// Voice is the default voice when the request does not name one
	Voice string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// ProductionURL is the OpenAI API endpoint
const ProductionURL = "https://api.openai.com"

// ErrConfigMissingKey indicates a missing API key
var ErrConfigMissingKey = errors.New("openaitts: API key is required")

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingKey
	}
	if c.BaseURL == "" {
		c.BaseURL = ProductionURL
	}
	if c.Model == "" {
		c.Model = "tts-1"
	}
	if c.Voice == "" {
		c.Voice = "alloy"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 60
	}
	return nil
}

// speechRequest is the body for POST /v1/audio/speech
type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed,omitempty"`
}

// apiError is the OpenAI error envelope
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Synthesizer implements the video.Synthesizer interface against the OpenAI
// speech endpoint
type Synthesizer struct {
	config     *Config
	httpClient *http.Client
}

// NewSynthesizer creates a new OpenAI TTS synthesizer
func NewSynthesizer(config *Config) (*Synthesizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Synthesizer{
		config:     config,
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
	}, nil
}

// Synthesize renders the text to mp3 audio bytes
func (s *Synthesizer) Synthesize(ctx context.Context, req video.SpeechRequest) ([]byte, error) {
	if req.Text == "" {
		return nil, errors.New("openaitts: text is required")
	}
	voice := req.Voice
	if voice == "" {
		voice = s.config.Voice
	}

	body, err := json.Marshal(speechRequest{
		Model:          s.config.Model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: "mp3",
		Speed:          req.Speed,
	})
	if err != nil {
		return nil, fmt.Errorf("openaitts: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/v1/audio/speech", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openaitts: failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openaitts: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioSize))
	if err != nil {
		return nil, fmt.Errorf("openaitts: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("openaitts: HTTP %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("openaitts: HTTP %d", resp.StatusCode)
	}
	if len(respBody) == 0 {
		return nil, errors.New("openaitts: empty audio response")
	}
	return respBody, nil
}

// Ensure Synthesizer implements the Synthesizer interface
var _ video.Synthesizer = (*Synthesizer)(nil)
