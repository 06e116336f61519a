package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

// maxResponseSize is the maximum allowed response size from the render
// service (10MB)
const maxResponseSize = 10 * 1024 * 1024

// RemoteConfig holds configuration for the remote chunk render service
type RemoteConfig struct {
	// Endpoint is the render service URL
	Endpoint string
	// TimeoutSeconds is the per-chunk render timeout. Renders are slow;
	// this defaults to 10 minutes.
	TimeoutSeconds int
}

// ErrConfigMissingEndpoint indicates a missing render endpoint
var ErrConfigMissingEndpoint = errors.New("render: endpoint is required")

// Validate validates the remote render configuration
func (c *RemoteConfig) Validate() error {
	if c.Endpoint == "" {
		return ErrConfigMissingEndpoint
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 600
	}
	return nil
}

// renderScene is one scene in the render request payload
type renderScene struct {
	Position        int    `json:"position"`
	Prompt          string `json:"prompt"`
	DurationSeconds int    `json:"duration_seconds"`
	Narration       string `json:"narration,omitempty"`
	ClipURL         string `json:"clip_url"`
	AudioURL        string `json:"audio_url,omitempty"`
}

// renderRequest is the body sent to the render service
type renderRequest struct {
	ProjectID   uuid.UUID     `json:"project_id"`
	ChunkIndex  int           `json:"chunk_index"`
	AspectRatio string        `json:"aspect_ratio"`
	Scenes      []renderScene `json:"scenes"`
}

// renderResponse is the render service reply
type renderResponse struct {
	OutputURL string `json:"output_url"`
	Error     string `json:"error"`
}

// RemoteRenderer implements the video.Renderer interface against the
// Lambda-style remote render service
type RemoteRenderer struct {
	config     *RemoteConfig
	httpClient *http.Client
}

// NewRemoteRenderer creates a new remote renderer client
func NewRemoteRenderer(config *RemoteConfig) (*RemoteRenderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &RemoteRenderer{
		config:     config,
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
	}, nil
}

// RenderChunk renders the chunk and returns a URL to download the produced
// video segment
func (r *RemoteRenderer) RenderChunk(ctx context.Context, req video.RenderRequest) (string, error) {
	if len(req.Scenes) == 0 {
		return "", fmt.Errorf("%w: chunk %d has no scenes", video.ErrRenderFailed, req.ChunkIndex)
	}

	payload := renderRequest{
		ProjectID:   req.ProjectID,
		ChunkIndex:  req.ChunkIndex,
		AspectRatio: string(req.AspectRatio),
	}
	for _, s := range req.Scenes {
		if s.ClipURL == "" {
			return "", fmt.Errorf("%w: scene %d has no generated clip", video.ErrRenderFailed, s.Position)
		}
		payload.Scenes = append(payload.Scenes, renderScene{
			Position:        s.Position,
			Prompt:          s.Prompt,
			DurationSeconds: s.DurationSeconds,
			Narration:       s.Narration,
			ClipURL:         s.ClipURL,
			AudioURL:        s.AudioURL,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("render: failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("render: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", video.ErrRenderFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("render: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: HTTP %d", video.ErrRenderFailed, resp.StatusCode)
	}

	var rr renderResponse
	if err := json.Unmarshal(respBody, &rr); err != nil {
		return "", fmt.Errorf("render: failed to parse response: %w", err)
	}
	if rr.Error != "" {
		return "", fmt.Errorf("%w: %s", video.ErrRenderFailed, rr.Error)
	}
	if rr.OutputURL == "" {
		return "", fmt.Errorf("%w: render service returned no output URL", video.ErrRenderFailed)
	}
	return rr.OutputURL, nil
}

// Ensure RemoteRenderer implements the Renderer interface
var _ video.Renderer = (*RemoteRenderer)(nil)
