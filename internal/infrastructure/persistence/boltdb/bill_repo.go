// Package boltdb implements the bill repository on an embedded bbolt file.
package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/entity"
)

// Bucket names
const (
	// bucketBills maps a big-endian sequence to the JSON bill, giving insertion order
	bucketBills = "bills"
	// bucketBillIndex maps a bill ID to its sequence key
	bucketBillIndex = "bill_index"
)

// BillRepository implements port.BillRepository on bbolt
type BillRepository struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open opens (or creates) the bbolt file at path and initializes buckets
func Open(path string, logger *zap.Logger) (*BillRepository, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range []string{bucketBills, bucketBillIndex} {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("Bolt database opened", zap.String("path", path))
	return &BillRepository{db: db, logger: logger}, nil
}

// Create stores a new bill
func (r *BillRepository) Create(_ context.Context, bill *entity.Bill) error {
	err := r.db.Update(func(tx *bolt.Tx) error {
		bills := tx.Bucket([]byte(bucketBills))
		index := tx.Bucket([]byte(bucketBillIndex))

		if index.Get([]byte(bill.ID)) != nil {
			return fmt.Errorf("bill %s already exists", bill.ID)
		}

		seq, err := bills.NextSequence()
		if err != nil {
			return err
		}

		data, err := json.Marshal(bill)
		if err != nil {
			return fmt.Errorf("failed to marshal bill: %w", err)
		}

		key := itob(seq)
		if err := bills.Put(key, data); err != nil {
			return err
		}
		return index.Put([]byte(bill.ID), key)
	})
	if err != nil {
		r.logger.Error("Failed to create bill", zap.String("id", bill.ID), zap.Error(err))
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// GetByID retrieves a bill by ID
func (r *BillRepository) GetByID(_ context.Context, id string) (*entity.Bill, error) {
	var bill *entity.Bill
	err := r.db.View(func(tx *bolt.Tx) error {
		var err error
		bill, _, err = getBill(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// List retrieves every bill in insertion order
func (r *BillRepository) List(_ context.Context) ([]*entity.Bill, error) {
	return r.list(nil)
}

// ListByEmail retrieves the bills of one employee in insertion order
func (r *BillRepository) ListByEmail(_ context.Context, email string) ([]*entity.Bill, error) {
	return r.list(func(b *entity.Bill) bool { return b.Email == email })
}

// Update applies fn to the stored bill within one write transaction
func (r *BillRepository) Update(_ context.Context, id string, fn func(bill *entity.Bill) error) (*entity.Bill, error) {
	var updated *entity.Bill

	err := r.db.Update(func(tx *bolt.Tx) error {
		bill, key, err := getBill(tx, id)
		if err != nil {
			return err
		}

		if err := fn(bill); err != nil {
			return err
		}
		bill.ID = id

		data, err := json.Marshal(bill)
		if err != nil {
			return fmt.Errorf("failed to marshal bill: %w", err)
		}
		if err := tx.Bucket([]byte(bucketBills)).Put(key, data); err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}

		updated = bill
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Close closes the database
func (r *BillRepository) Close() error {
	return r.db.Close()
}

func (r *BillRepository) list(filter func(*entity.Bill) bool) ([]*entity.Bill, error) {
	bills := make([]*entity.Bill, 0)

	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketBills)).ForEach(func(_, v []byte) error {
			var bill entity.Bill
			if err := json.Unmarshal(v, &bill); err != nil {
				return fmt.Errorf("failed to unmarshal bill: %w", err)
			}
			if filter == nil || filter(&bill) {
				bills = append(bills, &bill)
			}
			return nil
		})
	})
	if err != nil {
		r.logger.Error("Failed to list bills", zap.Error(err))
		return nil, err
	}
	return bills, nil
}

func getBill(tx *bolt.Tx, id string) (*entity.Bill, []byte, error) {
	key := tx.Bucket([]byte(bucketBillIndex)).Get([]byte(id))
	if key == nil {
		return nil, nil, port.ErrBillNotFound
	}
	// copy, the slice is only valid during the transaction
	key = append([]byte(nil), key...)

	data := tx.Bucket([]byte(bucketBills)).Get(key)
	if data == nil {
		return nil, nil, port.ErrBillNotFound
	}

	var bill entity.Bill
	if err := json.Unmarshal(data, &bill); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal bill: %w", err)
	}
	return &bill, key, nil
}

// itob converts a sequence to a big-endian key so ForEach walks in insertion order
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

var _ port.BillRepository = (*BillRepository)(nil)
