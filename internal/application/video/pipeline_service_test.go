package video

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/video"
)

// MockRepository is a mock implementation of video.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *video.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *video.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*video.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*video.Project), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*video.Project, int64, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	return args.Get(0).([]*video.Project), args.Get(1).(int64), args.Error(2)
}

// fakeGenerator completes every submitted task with a clip URL derived
// from the task ID, unless failAfter tasks have been submitted.
type fakeGenerator struct {
	mu        sync.Mutex
	submitted int
	failAfter int // 0 means never fail
}

func (g *fakeGenerator) SubmitTask(ctx context.Context, req video.GenerationRequest) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.submitted++
	if g.failAfter > 0 && g.submitted > g.failAfter {
		return "", video.ErrGenerationFailed
	}
	return fmt.Sprintf("task-%d", g.submitted), nil
}

func (g *fakeGenerator) GetTask(ctx context.Context, taskID string) (*video.GenerationTask, error) {
	return g.WaitForTask(ctx, taskID)
}

func (g *fakeGenerator) WaitForTask(ctx context.Context, taskID string) (*video.GenerationTask, error) {
	return &video.GenerationTask{
		TaskID:   taskID,
		Status:   video.TaskStatusCompleted,
		VideoURL: "https://cdn.test/" + taskID + ".mp4",
	}, nil
}

func (g *fakeGenerator) Models() []string {
	return []string{"kling-v1", "hailuo-minimax"}
}

type fakeSynthesizer struct {
	calls int
	err   error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, req video.SpeechRequest) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3:" + req.Text), nil
}

type fakeRenderer struct {
	mu       sync.Mutex
	requests []video.RenderRequest
	err      error
}

func (f *fakeRenderer) RenderChunk(ctx context.Context, req video.RenderRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, req)
	return fmt.Sprintf("https://render.test/chunk-%d.mp4", req.ChunkIndex), nil
}

type fakeConcat struct {
	urls    []string
	cleaned bool
}

func (f *fakeConcat) Concat(ctx context.Context, jobID string, chunkURLs []string) (string, func(), error) {
	f.urls = chunkURLs
	return "/tmp/" + jobID + ".mp4", func() { f.cleaned = true }, nil
}

type fakeStorage struct {
	mu       sync.Mutex
	uploads  map[string][]byte
	files    map[string]string
	uploaded []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		uploads: make(map[string][]byte),
		files:   make(map[string]string),
	}
}

func (f *fakeStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads[key] = data
	f.uploaded = append(f.uploaded, key)
	return nil
}

func (f *fakeStorage) UploadFile(ctx context.Context, key, localPath, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[key] = localPath
	f.uploaded = append(f.uploaded, key)
	return nil
}

func (f *fakeStorage) GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return "https://s3.test/" + key, time.Now().Add(expiresIn), nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, key)
	delete(f.files, key)
	return nil
}

func newDraftProject(t *testing.T, tenantID uuid.UUID, sceneDurations ...int) *video.Project {
	t.Helper()
	p, err := video.NewProject(tenantID, "Spring Soap Launch", video.AspectLandscape, "kling-v1")
	require.NoError(t, err)
	for i, d := range sceneDurations {
		narration := ""
		if i == 0 {
			narration = "Handmade on the farm"
		}
		_, err := p.AddScene(fmt.Sprintf("scene %d", i), narration, d)
		require.NoError(t, err)
	}
	return p
}

func newPipeline(repo video.Repository, gen video.Generator, syn video.Synthesizer, ren video.Renderer, cat Concatenator, st ObjectStorage) *PipelineService {
	cfg := DefaultPipelineConfig()
	cfg.ChunkSeconds = 20
	return NewPipelineService(repo, gen, syn, ren, cat, st, cfg, zap.NewNop())
}

func TestPipeline_Generate_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	gen := &fakeGenerator{}
	syn := &fakeSynthesizer{}
	ren := &fakeRenderer{}
	cat := &fakeConcat{}
	st := newFakeStorage()
	tenantID := uuid.New()

	p := newDraftProject(t, tenantID, 15, 15, 15)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	svc := newPipeline(repo, gen, syn, ren, cat, st)

	v, err := svc.Generate(ctx, tenantID, p.ID)

	require.NoError(t, err)
	assert.Equal(t, string(video.ProjectStatusReady), v.Status)
	assert.Equal(t, "videos/"+tenantID.String()+"/"+p.ID.String()+".mp4", v.FinalVideoKey)

	// Every scene got a clip, only the narrated scene got audio
	for i, s := range v.Scenes {
		assert.NotEmpty(t, s.ClipURL, "scene %d", i)
	}
	assert.NotEmpty(t, v.Scenes[0].AudioURL)
	assert.Empty(t, v.Scenes[1].AudioURL)
	assert.Equal(t, 1, syn.calls)

	// 15s scenes against a 20s chunk limit render one scene per chunk
	require.Len(t, ren.requests, 3)
	assert.Len(t, cat.urls, 3)
	assert.True(t, cat.cleaned, "scratch files should be cleaned up")
	assert.Contains(t, st.files, v.FinalVideoKey)
}

func TestPipeline_Generate_GenerationFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	gen := &fakeGenerator{failAfter: 1}
	tenantID := uuid.New()
	p := newDraftProject(t, tenantID, 10, 10)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	svc := newPipeline(repo, gen, &fakeSynthesizer{}, &fakeRenderer{}, &fakeConcat{}, newFakeStorage())

	_, err := svc.Generate(ctx, tenantID, p.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PIPELINE_FAILED", domainErr.Code)
	assert.Equal(t, video.ProjectStatusFailed, p.Status)
	assert.Contains(t, p.FailureReason, "clip generation")
}

func TestPipeline_Generate_RequiresScenes(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	tenantID := uuid.New()
	p := newDraftProject(t, tenantID)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)

	svc := newPipeline(repo, &fakeGenerator{}, &fakeSynthesizer{}, &fakeRenderer{}, &fakeConcat{}, newFakeStorage())

	_, err := svc.Generate(ctx, tenantID, p.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NO_SCENES", domainErr.Code)
}

func TestPipeline_Generate_RenderFailureMarksFailed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	tenantID := uuid.New()
	p := newDraftProject(t, tenantID, 10)

	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Update", ctx, p).Return(nil)

	svc := newPipeline(repo, &fakeGenerator{}, &fakeSynthesizer{}, &fakeRenderer{err: video.ErrRenderFailed}, &fakeConcat{}, newFakeStorage())

	_, err := svc.Generate(ctx, tenantID, p.ID)

	require.Error(t, err)
	assert.Equal(t, video.ProjectStatusFailed, p.Status)
	assert.Contains(t, p.FailureReason, "render")
}

func TestPipeline_GetDownloadLink(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	tenantID := uuid.New()
	p := newDraftProject(t, tenantID, 10)
	st := newFakeStorage()

	repo.On("FindByID", ctx, p.ID).Return(p, nil)

	svc := newPipeline(repo, &fakeGenerator{}, &fakeSynthesizer{}, &fakeRenderer{}, &fakeConcat{}, st)

	t.Run("not ready", func(t *testing.T) {
		_, err := svc.GetDownloadLink(ctx, tenantID, p.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "VIDEO_NOT_READY", domainErr.Code)
	})

	t.Run("ready", func(t *testing.T) {
		require.NoError(t, p.StartGenerating())
		require.NoError(t, p.SetSceneClip(p.Scenes[0].ID, "https://cdn.test/clip.mp4"))
		require.NoError(t, p.StartRendering())
		require.NoError(t, p.MarkReady("videos/final.mp4"))

		link, err := svc.GetDownloadLink(ctx, tenantID, p.ID)

		require.NoError(t, err)
		assert.Equal(t, "https://s3.test/videos/final.mp4", link.URL)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), link.ExpiresAt, time.Minute)
	})
}

func TestPipeline_StartGeneration_RunsInBackground(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	tenantID := uuid.New()
	p := newDraftProject(t, tenantID, 10)

	var mu sync.Mutex
	var lastStatus video.ProjectStatus
	repo.On("FindByID", ctx, p.ID).Return(p, nil)
	repo.On("Update", mock.Anything, p).Run(func(args mock.Arguments) {
		mu.Lock()
		lastStatus = args.Get(1).(*video.Project).Status
		mu.Unlock()
	}).Return(nil)

	svc := newPipeline(repo, &fakeGenerator{}, &fakeSynthesizer{}, &fakeRenderer{}, &fakeConcat{}, newFakeStorage())

	v, err := svc.StartGeneration(ctx, tenantID, p.ID)

	require.NoError(t, err)
	assert.Equal(t, string(video.ProjectStatusGenerating), v.Status)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return lastStatus == video.ProjectStatusReady
	}, 2*time.Second, 10*time.Millisecond)
}
