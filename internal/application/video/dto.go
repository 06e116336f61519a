package video

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

// CreateProjectInput is the request to start a marketing video project
type CreateProjectInput struct {
	TenantID    uuid.UUID
	Title       string
	Description string
	AspectRatio video.AspectRatio
	Model       string
}

// SceneInput is one scene to add or update
type SceneInput struct {
	Prompt          string
	Narration       string
	DurationSeconds int
}

// ReorderInput lists every scene ID in the desired order
type ReorderInput struct {
	TenantID  uuid.UUID
	ProjectID uuid.UUID
	SceneIDs  []uuid.UUID
}

// ProjectView is the outward project representation
type ProjectView struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	AspectRatio   string        `json:"aspect_ratio"`
	Model         string        `json:"model,omitempty"`
	Status        string        `json:"status"`
	Scenes        []SceneView   `json:"scenes"`
	TotalDuration int           `json:"total_duration_seconds"`
	FinalVideoKey string        `json:"final_video_key,omitempty"`
	FailureReason string        `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SceneView is one scene on a project view
type SceneView struct {
	ID              uuid.UUID `json:"id"`
	Position        int       `json:"position"`
	Prompt          string    `json:"prompt"`
	Narration       string    `json:"narration,omitempty"`
	DurationSeconds int       `json:"duration_seconds"`
	ClipURL         string    `json:"clip_url,omitempty"`
	AudioURL        string    `json:"audio_url,omitempty"`
}

// DownloadLink is a time-limited URL to the finished video
type DownloadLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func projectView(p *video.Project) *ProjectView {
	v := &ProjectView{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		AspectRatio:   string(p.AspectRatio),
		Model:         p.Model,
		Status:        string(p.Status),
		TotalDuration: p.TotalDuration(),
		FinalVideoKey: p.FinalVideoURL,
		FailureReason: p.FailureReason,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, s := range p.Scenes {
		v.Scenes = append(v.Scenes, SceneView{
			ID:              s.ID,
			Position:        s.Position,
			Prompt:          s.Prompt,
			Narration:       s.Narration,
			DurationSeconds: s.DurationSeconds,
			ClipURL:         s.ClipURL,
			AudioURL:        s.AudioURL,
		})
	}
	return v
}
