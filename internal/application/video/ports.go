package video

import (
	"context"
	"time"
)

// ObjectStorage stores rendered videos and narration audio and hands out
// time-limited download links.
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	UploadFile(ctx context.Context, storageKey, localPath, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// Concatenator joins rendered chunk files into one local video file. The
// returned cleanup removes the scratch files once the result was consumed.
type Concatenator interface {
	Concat(ctx context.Context, jobID string, chunkURLs []string) (string, func(), error)
}
