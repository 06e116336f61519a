package piapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

func newTestGenerator(t *testing.T, baseURL string) *Generator {
	t.Helper()
	g, err := NewGenerator(&Config{
		APIKey:          "key",
		BaseURL:         baseURL,
		PollInterval:    5 * time.Millisecond,
		MaxPollAttempts: 5,
	}, nil)
	require.NoError(t, err)
	return g
}

func TestModelRegistry(t *testing.T) {
	registry := NewModelRegistry()

	names := registry.Names()
	assert.Contains(t, names, "kling")
	assert.Contains(t, names, "hailuo")
	assert.Contains(t, names, "luma")

	spec, err := registry.Get("kling")
	require.NoError(t, err)
	input := spec.BuildInput(video.GenerationRequest{
		Prompt:          "goats grazing at sunrise",
		DurationSeconds: 5,
		AspectRatio:     video.AspectLandscape,
	})
	assert.Equal(t, "goats grazing at sunrise", input["prompt"])
	assert.Equal(t, 5, input["duration"])

	_, err = registry.Get("sora")
	assert.ErrorIs(t, err, video.ErrUnknownModel)
}

func TestGenerator_SubmitTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/task", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("x-api-key"))

		var req taskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "kling", req.Model)
		assert.Equal(t, "video_generation", req.TaskType)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": 200, "data": {"task_id": "task-123", "status": "pending"}}`))
	}))
	defer server.Close()

	g := newTestGenerator(t, server.URL)
	taskID, err := g.SubmitTask(context.Background(), video.GenerationRequest{
		Model:           "kling",
		Prompt:          "goats grazing",
		DurationSeconds: 5,
		AspectRatio:     video.AspectLandscape,
	})
	require.NoError(t, err)
	assert.Equal(t, "task-123", taskID)
}

func TestGenerator_SubmitTask_UnknownModel(t *testing.T) {
	g := newTestGenerator(t, "http://unused.invalid")
	_, err := g.SubmitTask(context.Background(), video.GenerationRequest{Model: "sora"})
	assert.ErrorIs(t, err, video.ErrUnknownModel)
}

func TestGenerator_WaitForTask_Completes(t *testing.T) {
	var polls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt64(&polls, 1)
		w.Header().Set("Content-Type", "application/json")
		if n < 3 {
			w.Write([]byte(`{"code": 200, "data": {"task_id": "task-123", "status": "processing"}}`))
			return
		}
		w.Write([]byte(`{"code": 200, "data": {
			"task_id": "task-123",
			"status": "completed",
			"output": {"works": [{"resource": {"resource": "https://cdn.example.com/clip.mp4"}}]}
		}}`))
	}))
	defer server.Close()

	g := newTestGenerator(t, server.URL)
	task, err := g.WaitForTask(context.Background(), "task-123")
	require.NoError(t, err)
	assert.Equal(t, video.TaskStatusCompleted, task.Status)
	assert.Equal(t, "https://cdn.example.com/clip.mp4", task.VideoURL)
	assert.Equal(t, int64(3), atomic.LoadInt64(&polls))
}

func TestGenerator_WaitForTask_Fails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": 200, "data": {
			"task_id": "task-123",
			"status": "failed",
			"error": {"code": 1100, "message": "content policy violation"}
		}}`))
	}))
	defer server.Close()

	g := newTestGenerator(t, server.URL)
	task, err := g.WaitForTask(context.Background(), "task-123")
	assert.ErrorIs(t, err, video.ErrGenerationFailed)
	require.NotNil(t, task)
	assert.Equal(t, "content policy violation", task.Error)
}

func TestGenerator_WaitForTask_TimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": 200, "data": {"task_id": "task-123", "status": "processing"}}`))
	}))
	defer server.Close()

	g := newTestGenerator(t, server.URL)
	_, err := g.WaitForTask(context.Background(), "task-123")
	assert.ErrorIs(t, err, video.ErrGenerationTimeout)
}

func TestTaskOutput_VideoURL(t *testing.T) {
	assert.Equal(t, "a", taskOutput{VideoURL: "a"}.videoURL())
	assert.Equal(t, "b", taskOutput{Video: &taskVideo{URL: "b"}}.videoURL())
	assert.Equal(t, "c", taskOutput{Works: []taskWork{{Resource: taskResource{Resource: "c"}}}}.videoURL())
	assert.Empty(t, taskOutput{}.videoURL())
}
