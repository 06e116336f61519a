package piapi

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pinehillfarm/backend/internal/domain/video"
)

// ModelSpec describes how to build a task payload for one generation model.
// Each vendor behind PiAPI wants a slightly different input shape; the spec
// captures those differences as data instead of branching per model at the
// call site.
type ModelSpec struct {
	// Model is the PiAPI model identifier sent in the task payload
	Model string
	// TaskType is the PiAPI task type for this model
	TaskType string
	// BuildInput produces the model-specific input object
	BuildInput func(req video.GenerationRequest) map[string]interface{}
}

// ModelRegistry maps model names to their payload specs
type ModelRegistry struct {
	mu    sync.RWMutex
	specs map[string]ModelSpec
}

// NewModelRegistry creates a registry preloaded with the built-in models
func NewModelRegistry() *ModelRegistry {
	r := &ModelRegistry{specs: make(map[string]ModelSpec)}
	for _, spec := range builtinModels() {
		r.Register(spec)
	}
	return r
}

// Register adds or replaces a model spec
func (r *ModelRegistry) Register(spec ModelSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[spec.Model] = spec
}

// Get returns the spec for a model name
func (r *ModelRegistry) Get(model string) (ModelSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[model]
	if !ok {
		return ModelSpec{}, fmt.Errorf("%w: %s", video.ErrUnknownModel, model)
	}
	return spec, nil
}

// Names returns the registered model names, sorted
func (r *ModelRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// builtinModels returns the specs for the models PiAPI exposes that the
// video pipeline supports
func builtinModels() []ModelSpec {
	return []ModelSpec{
		{
			Model:    "kling",
			TaskType: "video_generation",
			BuildInput: func(req video.GenerationRequest) map[string]interface{} {
				return map[string]interface{}{
					"prompt":       req.Prompt,
					"duration":     req.DurationSeconds,
					"aspect_ratio": string(req.AspectRatio),
					"mode":         "std",
					"version":      "1.6",
				}
			},
		},
		{
			Model:    "hailuo",
			TaskType: "video_generation",
			BuildInput: func(req video.GenerationRequest) map[string]interface{} {
				// Hailuo ignores duration; clips are a fixed length
				return map[string]interface{}{
					"prompt": req.Prompt,
					"model":  "t2v-01",
				}
			},
		},
		{
			Model:    "luma",
			TaskType: "video_generation",
			BuildInput: func(req video.GenerationRequest) map[string]interface{} {
				return map[string]interface{}{
					"prompt":       req.Prompt,
					"duration":     fmt.Sprintf("%ds", req.DurationSeconds),
					"aspect_ratio": string(req.AspectRatio),
				}
			},
		},
		{
			Model:    "hunyuan",
			TaskType: "txt2video",
			BuildInput: func(req video.GenerationRequest) map[string]interface{} {
				return map[string]interface{}{
					"prompt":       req.Prompt,
					"aspect_ratio": string(req.AspectRatio),
				}
			},
		},
		{
			Model:    "wan",
			TaskType: "txt2video-14b",
			BuildInput: func(req video.GenerationRequest) map[string]interface{} {
				return map[string]interface{}{
					"prompt":       req.Prompt,
					"aspect_ratio": string(req.AspectRatio),
				}
			},
		},
	}
}
