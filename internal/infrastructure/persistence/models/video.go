package models

import (
	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

// VideoProjectModel is the persistence model for the video Project aggregate.
type VideoProjectModel struct {
	TenantAggregateModel
	Title         string              `gorm:"type:varchar(200);not null"`
	Description   string              `gorm:"type:text"`
	AspectRatio   video.AspectRatio   `gorm:"type:varchar(10);not null;default:'16:9'"`
	Model         string              `gorm:"type:varchar(100)"`
	Status        video.ProjectStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	FinalVideoURL string              `gorm:"type:varchar(500)"`
	FailureReason string              `gorm:"type:text"`

	Scenes []VideoSceneModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (VideoProjectModel) TableName() string {
	return "video_projects"
}

// VideoSceneModel is one scene of a video project.
type VideoSceneModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	ProjectID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Position        int       `gorm:"not null;default:0"`
	Prompt          string    `gorm:"type:text;not null"`
	DurationSeconds int       `gorm:"not null;default:5"`
	Narration       string    `gorm:"type:text"`
	ClipURL         string    `gorm:"type:varchar(500)"`
	AudioURL        string    `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (VideoSceneModel) TableName() string {
	return "video_scenes"
}

// ToDomain converts the persistence model to a domain Project.
func (m *VideoProjectModel) ToDomain() *video.Project {
	scenes := make([]video.Scene, len(m.Scenes))
	for i, sm := range m.Scenes {
		scenes[i] = video.Scene{
			ID:              sm.ID,
			ProjectID:       sm.ProjectID,
			Position:        sm.Position,
			Prompt:          sm.Prompt,
			DurationSeconds: sm.DurationSeconds,
			Narration:       sm.Narration,
			ClipURL:         sm.ClipURL,
			AudioURL:        sm.AudioURL,
		}
	}

	p := &video.Project{
		Title:         m.Title,
		Description:   m.Description,
		AspectRatio:   m.AspectRatio,
		Model:         m.Model,
		Status:        m.Status,
		Scenes:        scenes,
		FinalVideoURL: m.FinalVideoURL,
		FailureReason: m.FailureReason,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Project.
func (m *VideoProjectModel) FromDomain(p *video.Project) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Title = p.Title
	m.Description = p.Description
	m.AspectRatio = p.AspectRatio
	m.Model = p.Model
	m.Status = p.Status
	m.FinalVideoURL = p.FinalVideoURL
	m.FailureReason = p.FailureReason

	m.Scenes = make([]VideoSceneModel, len(p.Scenes))
	for i, scene := range p.Scenes {
		m.Scenes[i] = VideoSceneModel{
			ID:              scene.ID,
			ProjectID:       scene.ProjectID,
			Position:        scene.Position,
			Prompt:          scene.Prompt,
			DurationSeconds: scene.DurationSeconds,
			Narration:       scene.Narration,
			ClipURL:         scene.ClipURL,
			AudioURL:        scene.AudioURL,
		}
	}
}

// VideoProjectModelFromDomain creates a new persistence model from a domain Project.
func VideoProjectModelFromDomain(p *video.Project) *VideoProjectModel {
	m := &VideoProjectModel{}
	m.FromDomain(p)
	return m
}
