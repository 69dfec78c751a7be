package port

import (
	"context"

	"github.com/garyjia/billed/internal/domain/entity"
)

// UploadRequest carries a receipt file to the bill store
type UploadRequest struct {
	FileName    string
	ContentType string
	Content     []byte
	Email       string
}

// UploadResult is the canonical record returned by BillStore.Create
type UploadResult struct {
	Key      string `json:"key"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// BillStore is the remote collection of bills.
// Failures are reported as *apperr.TransportError.
type BillStore interface {
	List(ctx context.Context) ([]entity.Bill, error)
	Create(ctx context.Context, req *UploadRequest) (*UploadResult, error)
	Update(ctx context.Context, key string, bill *entity.Bill) (*entity.Bill, error)
}

// StoreProvider returns a BillStore acting on behalf of a user
type StoreProvider interface {
	ForUser(user entity.User) BillStore
}
