package port

import "context"

// FileStorage defines receipt file storage operations.
// Paths are relative to the storage root.
type FileStorage interface {
	Save(ctx context.Context, path string, content []byte) error
	Delete(ctx context.Context, path string) error
}
