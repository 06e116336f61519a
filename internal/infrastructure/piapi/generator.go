package piapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

// maxResponseSize is the maximum allowed response size from the PiAPI (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Generator implements the video.Generator interface against PiAPI
type Generator struct {
	config     *Config
	registry   *ModelRegistry
	httpClient *http.Client
}

// NewGenerator creates a new PiAPI generator
func NewGenerator(config *Config, registry *ModelRegistry) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = NewModelRegistry()
	}
	return &Generator{
		config:     config,
		registry:   registry,
		httpClient: &http.Client{Timeout: time.Duration(config.TimeoutSeconds) * time.Second},
	}, nil
}

// Models lists the model names this generator accepts
func (g *Generator) Models() []string {
	return g.registry.Names()
}

// SubmitTask starts a generation task and returns its ID
func (g *Generator) SubmitTask(ctx context.Context, req video.GenerationRequest) (string, error) {
	spec, err := g.registry.Get(req.Model)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(taskRequest{
		Model:    spec.Model,
		TaskType: spec.TaskType,
		Input:    spec.BuildInput(req),
	})
	if err != nil {
		return "", fmt.Errorf("piapi: failed to encode task: %w", err)
	}

	respBody, err := g.doRequest(ctx, http.MethodPost, "/api/v1/task", body)
	if err != nil {
		return "", err
	}

	var envelope taskEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", fmt.Errorf("piapi: failed to parse task response: %w", err)
	}
	if envelope.Code != 200 {
		return "", fmt.Errorf("piapi: task submission rejected: %d %s", envelope.Code, envelope.Message)
	}
	if envelope.Data.TaskID == "" {
		return "", fmt.Errorf("piapi: task submission returned no task ID")
	}
	return envelope.Data.TaskID, nil
}

// GetTask fetches the current state of a task
func (g *Generator) GetTask(ctx context.Context, taskID string) (*video.GenerationTask, error) {
	respBody, err := g.doRequest(ctx, http.MethodGet, "/api/v1/task/"+url.PathEscape(taskID), nil)
	if err != nil {
		return nil, err
	}

	var envelope taskEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, fmt.Errorf("piapi: failed to parse task response: %w", err)
	}
	if envelope.Code != 200 {
		return nil, fmt.Errorf("piapi: task query rejected: %d %s", envelope.Code, envelope.Message)
	}

	task := &video.GenerationTask{
		TaskID: envelope.Data.TaskID,
		Status: mapTaskStatus(envelope.Data.Status),
	}
	switch task.Status {
	case video.TaskStatusCompleted:
		task.VideoURL = envelope.Data.Output.videoURL()
		if task.VideoURL == "" {
			task.Status = video.TaskStatusFailed
			task.Error = "completed task has no video output"
		}
	case video.TaskStatusFailed:
		task.Error = envelope.Data.Error.Message
	}
	return task, nil
}

// WaitForTask polls the task at a fixed interval until it completes, fails,
// or the attempt budget is exhausted
func (g *Generator) WaitForTask(ctx context.Context, taskID string) (*video.GenerationTask, error) {
	ticker := time.NewTicker(g.config.PollInterval)
	defer ticker.Stop()

	for attempt := 0; attempt < g.config.MaxPollAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		task, err := g.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		switch task.Status {
		case video.TaskStatusCompleted:
			return task, nil
		case video.TaskStatusFailed:
			return task, fmt.Errorf("%w: %s", video.ErrGenerationFailed, task.Error)
		}
	}
	return nil, fmt.Errorf("%w: task %s after %d polls", video.ErrGenerationTimeout, taskID, g.config.MaxPollAttempts)
}

// doRequest performs an authenticated HTTP request against the PiAPI
func (g *Generator) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("piapi: failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", g.config.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("piapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("piapi: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("piapi: HTTP %d: %s", resp.StatusCode, truncate(respBody, 200))
	}
	return respBody, nil
}

// mapTaskStatus maps a PiAPI task status to the normalized status
func mapTaskStatus(status string) video.TaskStatus {
	switch status {
	case "pending", "staged":
		return video.TaskStatusPending
	case "processing", "running":
		return video.TaskStatusProcessing
	case "completed", "success", "finished":
		return video.TaskStatusCompleted
	case "failed", "error", "cancelled":
		return video.TaskStatusFailed
	default:
		return video.TaskStatusPending
	}
}

// truncate clips a response body for inclusion in error messages
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Ensure Generator implements the Generator interface
var _ video.Generator = (*Generator)(nil)
