package video

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/video"
)

// PipelineConfig holds the generation pipeline settings
type PipelineConfig struct {
	ChunkSeconds int
	Voice        string
	SpeechSpeed  float64
	DownloadTTL  time.Duration
	// PipelineTimeout bounds one full background generation run
	PipelineTimeout time.Duration
}

// DefaultPipelineConfig returns the standard pipeline settings
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		ChunkSeconds:    20,
		Voice:           "alloy",
		SpeechSpeed:     1.0,
		DownloadTTL:     24 * time.Hour,
		PipelineTimeout: 30 * time.Minute,
	}
}

// PipelineService runs the full generation pipeline for a project: scene
// clips from the generation provider, narration audio from text-to-speech,
// chunked remote rendering, local concatenation and the final upload.
type PipelineService struct {
	repo        video.Repository
	generator   video.Generator
	synthesizer video.Synthesizer
	renderer    video.Renderer
	concat      Concatenator
	storage     ObjectStorage
	config      PipelineConfig
	logger      *zap.Logger
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	repo video.Repository,
	generator video.Generator,
	synthesizer video.Synthesizer,
	renderer video.Renderer,
	concat Concatenator,
	storage ObjectStorage,
	config PipelineConfig,
	logger *zap.Logger,
) *PipelineService {
	if config.ChunkSeconds < 1 {
		config.ChunkSeconds = 20
	}
	if config.DownloadTTL <= 0 {
		config.DownloadTTL = 24 * time.Hour
	}
	if config.PipelineTimeout <= 0 {
		config.PipelineTimeout = 30 * time.Minute
	}
	return &PipelineService{
		repo:        repo,
		generator:   generator,
		synthesizer: synthesizer,
		renderer:    renderer,
		concat:      concat,
		storage:     storage,
		config:      config,
		logger:      logger,
	}
}

// StartGeneration validates the project, marks it generating and runs the
// pipeline in the background. Progress is observable through the project
// status.
func (s *PipelineService) StartGeneration(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectView, error) {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.StartGenerating(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update video project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start generation")
	}

	go func() {
		runCtx, cancel := context.WithTimeout(context.Background(), s.config.PipelineTimeout)
		defer cancel()
		if err := s.run(runCtx, p); err != nil {
			s.logger.Error("Video pipeline failed",
				zap.String("project_id", p.ID.String()),
				zap.Error(err))
		}
	}()

	return projectView(p), nil
}

// Generate runs the full pipeline synchronously. The project must already
// be in the generating state.
func (s *PipelineService) Generate(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectView, error) {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if p.Status != video.ProjectStatusGenerating {
		if err := p.StartGenerating(); err != nil {
			return nil, err
		}
		if err := s.repo.Update(ctx, p); err != nil {
			s.logger.Error("Failed to update video project", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start generation")
		}
	}

	if err := s.run(ctx, p); err != nil {
		return nil, err
	}
	return projectView(p), nil
}

// GetDownloadLink presigns a time-limited URL for the finished video
func (s *PipelineService) GetDownloadLink(ctx context.Context, tenantID, projectID uuid.UUID) (*DownloadLink, error) {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	if p.Status != video.ProjectStatusReady || p.FinalVideoURL == "" {
		return nil, shared.NewDomainError("VIDEO_NOT_READY", "Video has not finished rendering")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, p.FinalVideoURL, s.config.DownloadTTL)
	if err != nil {
		s.logger.Error("Failed to presign video download", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create download link")
	}

	return &DownloadLink{URL: url, ExpiresAt: expiresAt}, nil
}

// run drives the pipeline for a project already marked generating. Any
// failure marks the project failed with the reason.
func (s *PipelineService) run(ctx context.Context, p *video.Project) error {
	if err := s.generateClips(ctx, p); err != nil {
		return s.fail(ctx, p, "clip generation", err)
	}
	if err := s.synthesizeNarration(ctx, p); err != nil {
		return s.fail(ctx, p, "narration", err)
	}

	if err := p.StartRendering(); err != nil {
		return s.fail(ctx, p, "render start", err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return s.fail(ctx, p, "render start", err)
	}

	key, err := s.renderAndUpload(ctx, p)
	if err != nil {
		return s.fail(ctx, p, "render", err)
	}

	if err := p.MarkReady(key); err != nil {
		return s.fail(ctx, p, "finish", err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return s.fail(ctx, p, "finish", err)
	}

	s.logger.Info("Video pipeline finished",
		zap.String("project_id", p.ID.String()),
		zap.String("storage_key", key),
		zap.Int("scenes", len(p.Scenes)))
	return nil
}

// generateClips submits one generation task per scene and waits for each
func (s *PipelineService) generateClips(ctx context.Context, p *video.Project) error {
	for _, scene := range p.Scenes {
		taskID, err := s.generator.SubmitTask(ctx, video.GenerationRequest{
			Model:           p.Model,
			Prompt:          scene.Prompt,
			DurationSeconds: scene.DurationSeconds,
			AspectRatio:     p.AspectRatio,
		})
		if err != nil {
			return fmt.Errorf("submit scene %d: %w", scene.Position, err)
		}

		task, err := s.generator.WaitForTask(ctx, taskID)
		if err != nil {
			return fmt.Errorf("scene %d task %s: %w", scene.Position, taskID, err)
		}
		if task.Status != video.TaskStatusCompleted || task.VideoURL == "" {
			return fmt.Errorf("scene %d task %s: %s", scene.Position, taskID, task.Error)
		}

		if err := p.SetSceneClip(scene.ID, task.VideoURL); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}

		s.logger.Info("Scene clip generated",
			zap.String("project_id", p.ID.String()),
			zap.Int("position", scene.Position),
			zap.String("task_id", taskID))
	}
	return nil
}

// synthesizeNarration renders and uploads audio for scenes that carry
// narration text. Scenes without narration are silent.
func (s *PipelineService) synthesizeNarration(ctx context.Context, p *video.Project) error {
	for _, scene := range p.Scenes {
		if scene.Narration == "" {
			continue
		}

		audio, err := s.synthesizer.Synthesize(ctx, video.SpeechRequest{
			Text:  scene.Narration,
			Voice: s.config.Voice,
			Speed: s.config.SpeechSpeed,
		})
		if err != nil {
			return fmt.Errorf("synthesize scene %d: %w", scene.Position, err)
		}

		key := s.audioKey(p, scene.ID)
		if err := s.storage.Upload(ctx, key, audio, "audio/mpeg"); err != nil {
			return fmt.Errorf("upload narration for scene %d: %w", scene.Position, err)
		}

		url, _, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadTTL)
		if err != nil {
			return fmt.Errorf("presign narration for scene %d: %w", scene.Position, err)
		}
		if err := p.SetSceneAudio(scene.ID, url); err != nil {
			return err
		}
	}
	return s.repo.Update(ctx, p)
}

// renderAndUpload renders the project in chunks, concatenates the pieces
// and uploads the result. Returns the storage key of the final video.
func (s *PipelineService) renderAndUpload(ctx context.Context, p *video.Project) (string, error) {
	chunks := video.PlanChunks(p.Scenes, s.config.ChunkSeconds)

	chunkURLs := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		url, err := s.renderer.RenderChunk(ctx, video.RenderRequest{
			ProjectID:   p.ID,
			ChunkIndex:  chunk.Index,
			Scenes:      p.Scenes[chunk.SceneStart:chunk.SceneEnd],
			AspectRatio: p.AspectRatio,
		})
		if err != nil {
			return "", fmt.Errorf("render chunk %d: %w", chunk.Index, err)
		}
		chunkURLs = append(chunkURLs, url)

		s.logger.Info("Chunk rendered",
			zap.String("project_id", p.ID.String()),
			zap.Int("chunk", chunk.Index),
			zap.Int("seconds", chunk.Seconds))
	}

	localPath, cleanup, err := s.concat.Concat(ctx, p.ID.String(), chunkURLs)
	if err != nil {
		return "", fmt.Errorf("concat: %w", err)
	}
	defer cleanup()

	key := s.videoKey(p)
	if err := s.storage.UploadFile(ctx, key, localPath, "video/mp4"); err != nil {
		return "", fmt.Errorf("upload final video: %w", err)
	}
	return key, nil
}

func (s *PipelineService) fail(ctx context.Context, p *video.Project, stage string, cause error) error {
	reason := fmt.Sprintf("%s: %v", stage, cause)
	p.MarkFailed(reason)
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to record pipeline failure",
			zap.String("project_id", p.ID.String()),
			zap.Error(err))
	}
	s.logger.Warn("Video pipeline stage failed",
		zap.String("project_id", p.ID.String()),
		zap.String("stage", stage),
		zap.Error(cause))
	return shared.NewDomainError("PIPELINE_FAILED", reason)
}

func (s *PipelineService) audioKey(p *video.Project, sceneID uuid.UUID) string {
	return fmt.Sprintf("narration/%s/%s/%s.mp3", p.TenantID, p.ID, sceneID)
}

func (s *PipelineService) videoKey(p *video.Project) string {
	return fmt.Sprintf("videos/%s/%s.mp4", p.TenantID, p.ID)
}

func (s *PipelineService) findTenantProject(ctx context.Context, tenantID, projectID uuid.UUID) (*video.Project, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil || p.TenantID != tenantID {
		return nil, shared.NewDomainError("PROJECT_NOT_FOUND", "Project not found")
	}
	return p, nil
}
