package video

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Errors returned by generation and rendering providers
var (
	ErrUnknownModel      = errors.New("video: unknown generation model")
	ErrGenerationFailed  = errors.New("video: generation task failed")
	ErrGenerationTimeout = errors.New("video: generation task timed out")
	ErrRenderFailed      = errors.New("video: render failed")
)

// TaskStatus is the state of a remote generation task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// GenerationRequest asks the generator for one scene clip
type GenerationRequest struct {
	Model           string
	Prompt          string
	DurationSeconds int
	AspectRatio     AspectRatio
}

// GenerationTask is a submitted task awaiting completion
type GenerationTask struct {
	TaskID string
	Status TaskStatus
	// VideoURL is set once Status is completed
	VideoURL string
	// Error holds the provider failure message when Status is failed
	Error string
}

// Generator is the port for the scene clip generation provider.
type Generator interface {
	// SubmitTask starts a generation task and returns its ID
	SubmitTask(ctx context.Context, req GenerationRequest) (string, error)

	// GetTask fetches the current state of a task
	GetTask(ctx context.Context, taskID string) (*GenerationTask, error)

	// WaitForTask polls the task at the provider's configured interval
	// until it completes, fails, or the attempt budget is exhausted
	WaitForTask(ctx context.Context, taskID string) (*GenerationTask, error)

	// Models lists the model names this generator accepts
	Models() []string
}

// SpeechRequest asks for narration audio
type SpeechRequest struct {
	Text  string
	Voice string
	Speed float64
}

// Synthesizer is the port for text-to-speech narration.
type Synthesizer interface {
	// Synthesize renders the text to audio bytes (mp3)
	Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error)
}

// RenderRequest asks the remote renderer for one chunk of the project
type RenderRequest struct {
	ProjectID   uuid.UUID
	ChunkIndex  int
	Scenes      []Scene
	AspectRatio AspectRatio
}

// Renderer is the port for the remote chunk render service.
type Renderer interface {
	// RenderChunk renders the chunk and returns a URL to download the
	// produced video segment
	RenderChunk(ctx context.Context, req RenderRequest) (string, error)
}

// Repository defines the interface for project persistence
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*Project, int64, error)
}
