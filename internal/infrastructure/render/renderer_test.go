package render

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

func TestRemoteRenderer_RenderChunk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req renderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1, req.ChunkIndex)
		assert.Equal(t, "16:9", req.AspectRatio)
		require.Len(t, req.Scenes, 2)
		assert.Equal(t, "https://cdn.example.com/clip-0.mp4", req.Scenes[0].ClipURL)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output_url": "https://renders.example.com/chunk-1.mp4"}`))
	}))
	defer server.Close()

	renderer, err := NewRemoteRenderer(&RemoteConfig{Endpoint: server.URL})
	require.NoError(t, err)

	url, err := renderer.RenderChunk(context.Background(), video.RenderRequest{
		ProjectID:   uuid.New(),
		ChunkIndex:  1,
		AspectRatio: video.AspectLandscape,
		Scenes: []video.Scene{
			{Position: 0, Prompt: "goats", DurationSeconds: 5, ClipURL: "https://cdn.example.com/clip-0.mp4"},
			{Position: 1, Prompt: "cheese", DurationSeconds: 5, ClipURL: "https://cdn.example.com/clip-1.mp4"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://renders.example.com/chunk-1.mp4", url)
}

func TestRemoteRenderer_RenderChunk_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "composition failed on scene 3"}`))
	}))
	defer server.Close()

	renderer, err := NewRemoteRenderer(&RemoteConfig{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = renderer.RenderChunk(context.Background(), video.RenderRequest{
		Scenes: []video.Scene{{Position: 0, ClipURL: "https://cdn.example.com/clip.mp4"}},
	})
	assert.ErrorIs(t, err, video.ErrRenderFailed)
	assert.Contains(t, err.Error(), "composition failed")
}

func TestRemoteRenderer_RenderChunk_MissingClip(t *testing.T) {
	renderer, err := NewRemoteRenderer(&RemoteConfig{Endpoint: "http://unused.invalid"})
	require.NoError(t, err)

	_, err = renderer.RenderChunk(context.Background(), video.RenderRequest{
		Scenes: []video.Scene{{Position: 0}},
	})
	assert.ErrorIs(t, err, video.ErrRenderFailed)
}

func TestConcatenator_SingleChunkSkipsFFmpeg(t *testing.T) {
	content := []byte("fake-mp4")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	c := NewConcatenator("/nonexistent/ffmpeg", t.TempDir())
	path, cleanup, err := c.Concat(context.Background(), "job1", []string{server.URL + "/chunk-0.mp4"})
	require.NoError(t, err)
	defer cleanup()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestConcatenator_DownloadFailureCleansUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	workDir := t.TempDir()
	c := NewConcatenator("ffmpeg", workDir)
	_, _, err := c.Concat(context.Background(), "job1", []string{server.URL + "/missing.mp4"})
	require.Error(t, err)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch dir should be removed on failure")
}

func TestWriteConcatList(t *testing.T) {
	listPath := filepath.Join(t.TempDir(), "concat.txt")
	require.NoError(t, writeConcatList(listPath, []string{"/tmp/a.mp4", "/tmp/it's.mp4"}))

	content, err := os.ReadFile(listPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "file '/tmp/a.mp4'", lines[0])
	assert.Contains(t, lines[1], `it'\''s`)
}
