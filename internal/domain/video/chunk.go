package video

// Chunk is a consecutive run of scenes rendered in one remote render
// invocation. Scenes are split so no chunk exceeds maxSeconds of footage;
// a single scene longer than the limit still gets its own chunk.
type Chunk struct {
	Index      int
	SceneStart int // Inclusive index into the project's scene list
	SceneEnd   int // Exclusive
	Seconds    int
}

// PlanChunks splits scenes into fixed-duration chunks. maxSeconds values
// below 1 collapse to a single chunk.
func PlanChunks(scenes []Scene, maxSeconds int) []Chunk {
	if len(scenes) == 0 {
		return nil
	}
	if maxSeconds < 1 {
		total := 0
		for _, s := range scenes {
			total += s.DurationSeconds
		}
		return []Chunk{{Index: 0, SceneStart: 0, SceneEnd: len(scenes), Seconds: total}}
	}

	var chunks []Chunk
	start := 0
	seconds := 0
	for i, s := range scenes {
		if seconds > 0 && seconds+s.DurationSeconds > maxSeconds {
			chunks = append(chunks, Chunk{
				Index:      len(chunks),
				SceneStart: start,
				SceneEnd:   i,
				Seconds:    seconds,
			})
			start = i
			seconds = 0
		}
		seconds += s.DurationSeconds
	}
	chunks = append(chunks, Chunk{
		Index:      len(chunks),
		SceneStart: start,
		SceneEnd:   len(scenes),
		Seconds:    seconds,
	})

	return chunks
}
