package port

import (
	"context"
	"errors"

	"github.com/garyjia/billed/internal/domain/entity"
)

// ErrBillNotFound is returned when a bill does not exist
var ErrBillNotFound = errors.New("bill not found")

// BillRepository defines persistence operations for Bill.
// List and ListByEmail return bills in insertion order.
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id string) (*entity.Bill, error)
	List(ctx context.Context) ([]*entity.Bill, error)
	ListByEmail(ctx context.Context, email string) ([]*entity.Bill, error)

	// Update loads the bill, applies fn and persists the result atomically
	Update(ctx context.Context, id string, fn func(bill *entity.Bill) error) (*entity.Bill, error)

	Close() error
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
