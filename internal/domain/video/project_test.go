package video

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftWithScenes(t *testing.T, durations ...int) *Project {
	p, err := NewProject(uuid.New(), "Fall Harvest Promo", AspectPortrait, "kling-std")
	require.NoError(t, err)
	for i, d := range durations {
		_, err := p.AddScene("scene prompt", "narration", d)
		require.NoError(t, err, "scene %d", i)
	}
	return p
}

func TestProjectScenes(t *testing.T) {
	t.Run("scenes keep positions", func(t *testing.T) {
		p := draftWithScenes(t, 5, 8, 5)

		for i, s := range p.Scenes {
			assert.Equal(t, i, s.Position)
		}
		assert.Equal(t, 18, p.TotalDuration())
	})

	t.Run("remove closes the gap", func(t *testing.T) {
		p := draftWithScenes(t, 5, 8, 5)
		require.NoError(t, p.RemoveScene(p.Scenes[1].ID))

		require.Len(t, p.Scenes, 2)
		assert.Equal(t, 0, p.Scenes[0].Position)
		assert.Equal(t, 1, p.Scenes[1].Position)
	})

	t.Run("reorder applies new positions", func(t *testing.T) {
		p := draftWithScenes(t, 5, 8, 5)
		order := []uuid.UUID{p.Scenes[2].ID, p.Scenes[0].ID, p.Scenes[1].ID}

		require.NoError(t, p.ReorderScenes(order))
		assert.Equal(t, order[0], p.Scenes[0].ID)
		assert.Equal(t, 0, p.Scenes[0].Position)
		assert.Equal(t, order[2], p.Scenes[2].ID)
	})

	t.Run("reorder must list every scene", func(t *testing.T) {
		p := draftWithScenes(t, 5, 8)
		assert.Error(t, p.ReorderScenes([]uuid.UUID{p.Scenes[0].ID}))
		assert.Error(t, p.ReorderScenes([]uuid.UUID{p.Scenes[0].ID, uuid.New()}))
	})

	t.Run("scene duration bounds", func(t *testing.T) {
		p := draftWithScenes(t)
		_, err := p.AddScene("prompt", "", 0)
		assert.Error(t, err)
		_, err = p.AddScene("prompt", "", 61)
		assert.Error(t, err)
	})
}

func TestProjectLifecycle(t *testing.T) {
	t.Run("happy path to ready", func(t *testing.T) {
		p := draftWithScenes(t, 5, 5)

		require.NoError(t, p.StartGenerating())
		assert.Equal(t, ProjectStatusGenerating, p.Status)

		// Rendering requires every clip
		assert.Error(t, p.StartRendering())

		for _, s := range p.Scenes {
			require.NoError(t, p.SetSceneClip(s.ID, "https://cdn.example/"+s.ID.String()+".mp4"))
		}
		require.NoError(t, p.StartRendering())
		require.NoError(t, p.MarkReady("https://cdn.example/final.mp4"))

		assert.Equal(t, ProjectStatusReady, p.Status)
		assert.NotEmpty(t, p.FinalVideoURL)
	})

	t.Run("generation needs scenes", func(t *testing.T) {
		p := draftWithScenes(t)
		assert.Error(t, p.StartGenerating())
	})

	t.Run("failure can be retried", func(t *testing.T) {
		p := draftWithScenes(t, 5)
		require.NoError(t, p.StartGenerating())

		p.MarkFailed("provider timeout")
		assert.Equal(t, ProjectStatusFailed, p.Status)
		assert.Equal(t, "provider timeout", p.FailureReason)

		require.NoError(t, p.StartGenerating())
		assert.Empty(t, p.FailureReason)
	})

	t.Run("scenes are frozen outside draft", func(t *testing.T) {
		p := draftWithScenes(t, 5)
		require.NoError(t, p.StartGenerating())

		_, err := p.AddScene("another", "", 5)
		assert.Error(t, err)
		assert.Error(t, p.RemoveScene(p.Scenes[0].ID))
	})
}

func TestPlanChunks(t *testing.T) {
	mkScenes := func(durations ...int) []Scene {
		scenes := make([]Scene, len(durations))
		for i, d := range durations {
			scenes[i] = Scene{ID: uuid.New(), Position: i, DurationSeconds: d}
		}
		return scenes
	}

	t.Run("splits at the duration limit", func(t *testing.T) {
		chunks := PlanChunks(mkScenes(10, 10, 10, 10, 10), 20)

		require.Len(t, chunks, 3)
		assert.Equal(t, Chunk{Index: 0, SceneStart: 0, SceneEnd: 2, Seconds: 20}, chunks[0])
		assert.Equal(t, Chunk{Index: 1, SceneStart: 2, SceneEnd: 4, Seconds: 20}, chunks[1])
		assert.Equal(t, Chunk{Index: 2, SceneStart: 4, SceneEnd: 5, Seconds: 10}, chunks[2])
	})

	t.Run("uneven durations never exceed the limit mid-plan", func(t *testing.T) {
		chunks := PlanChunks(mkScenes(8, 7, 9, 4, 12), 20)

		require.Len(t, chunks, 3)
		assert.Equal(t, 15, chunks[0].Seconds) // 8+7, adding 9 would exceed
		assert.Equal(t, 13, chunks[1].Seconds) // 9+4
		assert.Equal(t, 12, chunks[2].Seconds)
	})

	t.Run("oversized scene gets its own chunk", func(t *testing.T) {
		chunks := PlanChunks(mkScenes(5, 30, 5), 20)

		require.Len(t, chunks, 3)
		assert.Equal(t, 30, chunks[1].Seconds)
	})

	t.Run("everything fits in one chunk", func(t *testing.T) {
		chunks := PlanChunks(mkScenes(5, 5, 5), 60)
		require.Len(t, chunks, 1)
		assert.Equal(t, 15, chunks[0].Seconds)
	})

	t.Run("no scenes no chunks", func(t *testing.T) {
		assert.Nil(t, PlanChunks(nil, 20))
	})

	t.Run("non-positive limit collapses to one chunk", func(t *testing.T) {
		chunks := PlanChunks(mkScenes(10, 10), 0)
		require.Len(t, chunks, 1)
		assert.Equal(t, 20, chunks[0].Seconds)
	})
}
