package piapi

// taskRequest is the body for POST /api/v1/task
type taskRequest struct {
	Model    string                 `json:"model"`
	TaskType string                 `json:"task_type"`
	Input    map[string]interface{} `json:"input"`
}

// taskEnvelope wraps every task API response
type taskEnvelope struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Data    taskData `json:"data"`
}

// taskData is the task state inside the envelope
type taskData struct {
	TaskID string     `json:"task_id"`
	Status string     `json:"status"`
	Output taskOutput `json:"output"`
	Error  taskError  `json:"error"`
}

// taskOutput holds the generated artifacts. Different vendors report the
// video URL in different fields.
type taskOutput struct {
	VideoURL string      `json:"video_url"`
	Works    []taskWork  `json:"works"`
	Video    *taskVideo  `json:"video"`
}

// taskWork is one produced artifact (kling-style output)
type taskWork struct {
	Resource taskResource `json:"resource"`
}

// taskResource is the artifact location
type taskResource struct {
	Resource string `json:"resource"`
}

// taskVideo is a hailuo-style output
type taskVideo struct {
	URL string `json:"url"`
}

// taskError is the provider failure detail
type taskError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// videoURL extracts the clip URL from whichever field the vendor used
func (o taskOutput) videoURL() string {
	if o.VideoURL != "" {
		return o.VideoURL
	}
	if o.Video != nil && o.Video.URL != "" {
		return o.Video.URL
	}
	if len(o.Works) > 0 {
		return o.Works[0].Resource.Resource
	}
	return ""
}
