package video

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// ProjectStatus is the lifecycle of a marketing video project
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusGenerating ProjectStatus = "generating" // Scene clips being generated
	ProjectStatusRendering  ProjectStatus = "rendering"  // Final video being assembled
	ProjectStatusReady      ProjectStatus = "ready"
	ProjectStatusFailed     ProjectStatus = "failed"
)

// AspectRatio of the final video
type AspectRatio string

const (
	AspectLandscape AspectRatio = "16:9"
	AspectPortrait  AspectRatio = "9:16"
	AspectSquare    AspectRatio = "1:1"
)

// IsValid checks the aspect ratio value
func (a AspectRatio) IsValid() bool {
	switch a {
	case AspectLandscape, AspectPortrait, AspectSquare:
		return true
	}
	return false
}

// Scene is one ordered segment of a video project
type Scene struct {
	ID              uuid.UUID
	ProjectID       uuid.UUID
	Position        int
	Prompt          string
	DurationSeconds int
	Narration       string
	ClipURL         string // Set once the generator produced the clip
	AudioURL        string // Set once narration was synthesized
}

// Project is the aggregate root for a marketing video.
type Project struct {
	shared.TenantAggregateRoot
	Title         string
	Description   string
	AspectRatio   AspectRatio
	Model         string // Generation model name, resolved by the generator
	Status        ProjectStatus
	Scenes        []Scene
	FinalVideoURL string
	FailureReason string
}

// NewProject creates a draft project
func NewProject(tenantID uuid.UUID, title string, aspect AspectRatio, model string) (*Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if aspect == "" {
		aspect = AspectLandscape
	}
	if !aspect.IsValid() {
		return nil, shared.NewDomainError("INVALID_ASPECT", "Unknown aspect ratio")
	}

	return &Project{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               title,
		AspectRatio:         aspect,
		Model:               model,
		Status:              ProjectStatusDraft,
	}, nil
}

// AddScene appends a scene. Only legal on a draft project.
func (p *Project) AddScene(prompt, narration string, durationSeconds int) (*Scene, error) {
	if p.Status != ProjectStatusDraft {
		return nil, shared.ErrInvalidState
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, shared.NewDomainError("INVALID_SCENE", "Scene prompt cannot be empty")
	}
	if durationSeconds <= 0 || durationSeconds > 60 {
		return nil, shared.NewDomainError("INVALID_SCENE", "Scene duration must be between 1 and 60 seconds")
	}

	scene := Scene{
		ID:              uuid.New(),
		ProjectID:       p.ID,
		Position:        len(p.Scenes),
		Prompt:          prompt,
		Narration:       narration,
		DurationSeconds: durationSeconds,
	}
	p.Scenes = append(p.Scenes, scene)
	p.touch()

	return &p.Scenes[len(p.Scenes)-1], nil
}

// UpdateScene edits a scene on a draft project
func (p *Project) UpdateScene(sceneID uuid.UUID, prompt, narration string, durationSeconds int) error {
	if p.Status != ProjectStatusDraft {
		return shared.ErrInvalidState
	}
	if durationSeconds <= 0 || durationSeconds > 60 {
		return shared.NewDomainError("INVALID_SCENE", "Scene duration must be between 1 and 60 seconds")
	}

	for i := range p.Scenes {
		if p.Scenes[i].ID == sceneID {
			p.Scenes[i].Prompt = prompt
			p.Scenes[i].Narration = narration
			p.Scenes[i].DurationSeconds = durationSeconds
			p.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveScene deletes a scene and closes the position gap
func (p *Project) RemoveScene(sceneID uuid.UUID) error {
	if p.Status != ProjectStatusDraft {
		return shared.ErrInvalidState
	}

	idx := -1
	for i := range p.Scenes {
		if p.Scenes[i].ID == sceneID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}

	p.Scenes = append(p.Scenes[:idx], p.Scenes[idx+1:]...)
	for i := range p.Scenes {
		p.Scenes[i].Position = i
	}
	p.touch()
	return nil
}

// ReorderScenes applies a new ordering given as scene IDs
func (p *Project) ReorderScenes(order []uuid.UUID) error {
	if p.Status != ProjectStatusDraft {
		return shared.ErrInvalidState
	}
	if len(order) != len(p.Scenes) {
		return shared.NewDomainError("INVALID_ORDER", "Order must list every scene exactly once")
	}

	byID := make(map[uuid.UUID]Scene, len(p.Scenes))
	for _, s := range p.Scenes {
		byID[s.ID] = s
	}

	reordered := make([]Scene, 0, len(order))
	for i, id := range order {
		s, ok := byID[id]
		if !ok {
			return shared.NewDomainError("INVALID_ORDER", "Order references an unknown scene")
		}
		delete(byID, id)
		s.Position = i
		reordered = append(reordered, s)
	}

	p.Scenes = reordered
	p.touch()
	return nil
}

// SetSceneClip records the generated clip URL for a scene
func (p *Project) SetSceneClip(sceneID uuid.UUID, clipURL string) error {
	for i := range p.Scenes {
		if p.Scenes[i].ID == sceneID {
			p.Scenes[i].ClipURL = clipURL
			p.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// SetSceneAudio records the synthesized narration URL for a scene
func (p *Project) SetSceneAudio(sceneID uuid.UUID, audioURL string) error {
	for i := range p.Scenes {
		if p.Scenes[i].ID == sceneID {
			p.Scenes[i].AudioURL = audioURL
			p.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// StartGenerating moves the project into clip generation
func (p *Project) StartGenerating() error {
	if p.Status != ProjectStatusDraft && p.Status != ProjectStatusFailed {
		return shared.ErrInvalidState
	}
	if len(p.Scenes) == 0 {
		return shared.NewDomainError("NO_SCENES", "Project needs at least one scene")
	}
	p.Status = ProjectStatusGenerating
	p.FailureReason = ""
	p.touch()
	return nil
}

// StartRendering moves the project into final assembly. Every scene must
// have a generated clip.
func (p *Project) StartRendering() error {
	if p.Status != ProjectStatusGenerating && p.Status != ProjectStatusFailed {
		return shared.ErrInvalidState
	}
	for _, s := range p.Scenes {
		if s.ClipURL == "" {
			return shared.NewDomainError("MISSING_CLIPS", "Every scene needs a generated clip before rendering")
		}
	}
	p.Status = ProjectStatusRendering
	p.FailureReason = ""
	p.touch()
	return nil
}

// MarkReady records the final video location
func (p *Project) MarkReady(videoURL string) error {
	if p.Status != ProjectStatusRendering {
		return shared.ErrInvalidState
	}
	if videoURL == "" {
		return shared.ErrInvalidInput
	}
	p.Status = ProjectStatusReady
	p.FinalVideoURL = videoURL
	p.touch()
	return nil
}

// MarkFailed records a failure from any in-flight state
func (p *Project) MarkFailed(reason string) {
	p.Status = ProjectStatusFailed
	p.FailureReason = reason
	p.touch()
}

// TotalDuration returns the summed scene durations in seconds
func (p *Project) TotalDuration() int {
	total := 0
	for _, s := range p.Scenes {
		total += s.DurationSeconds
	}
	return total
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
