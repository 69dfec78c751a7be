// Package store serves the bill collection from the local repository and receipt storage.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/apperr"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/domain/receipt"
	"github.com/garyjia/billed/internal/infrastructure/storage"
)

// LocalStore implements port.StoreProvider over a repository and a file storage
type LocalStore struct {
	repo      port.BillRepository
	files     port.FileStorage
	urlPrefix string
	newKey    func() string
	logger    *zap.Logger
}

// NewLocalStore creates a LocalStore. urlPrefix is prepended to receipt paths to build fileUrl.
func NewLocalStore(repo port.BillRepository, files port.FileStorage, urlPrefix string, logger *zap.Logger) *LocalStore {
	return &LocalStore{
		repo:      repo,
		files:     files,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		newKey:    uuid.NewString,
		logger:    logger,
	}
}

// ForUser returns the bill collection as seen by user
func (s *LocalStore) ForUser(user entity.User) port.BillStore {
	return &userStore{LocalStore: s, user: user}
}

type userStore struct {
	*LocalStore
	user entity.User
}

// List returns the user's bills; admins get every bill
func (s *userStore) List(ctx context.Context) ([]entity.Bill, error) {
	var (
		bills []*entity.Bill
		err   error
	)
	if s.user.IsAdmin() {
		bills, err = s.repo.List(ctx)
	} else {
		bills, err = s.repo.ListByEmail(ctx, s.user.Email)
	}
	if err != nil {
		return nil, s.transportError("list", err)
	}

	result := make([]entity.Bill, 0, len(bills))
	for _, b := range bills {
		result = append(result, *b)
	}
	return result, nil
}

// Create stores the receipt and records a pending bill pointing at it
func (s *userStore) Create(ctx context.Context, req *port.UploadRequest) (*port.UploadResult, error) {
	if req == nil || !receipt.IsAllowed(req.FileName) {
		return nil, apperr.NewTransportError("create", http.StatusBadRequest,
			&apperr.ValidationError{Field: "file", Message: receipt.InvalidExtensionMessage})
	}

	key := s.newKey()
	fileName := receipt.BaseName(req.FileName)
	path := storage.ReceiptPath(key, fileName)

	if err := s.files.Save(ctx, path, req.Content); err != nil {
		return nil, s.transportError("create", err)
	}

	bill := &entity.Bill{
		ID:       key,
		Email:    s.user.Email,
		FileURL:  s.urlPrefix + "/" + path,
		FileName: fileName,
		Status:   entity.BillStatusPending,
	}
	if err := s.repo.Create(ctx, bill); err != nil {
		if delErr := s.files.Delete(ctx, path); delErr != nil {
			s.logger.Warn("Failed to remove orphan receipt", zap.String("path", path), zap.Error(delErr))
		}
		return nil, s.transportError("create", err)
	}

	s.logger.Info("Receipt stored",
		zap.String("key", key),
		zap.String("email", s.user.Email),
		zap.Int("size", len(req.Content)))

	return &port.UploadResult{
		Key:      key,
		FileURL:  bill.FileURL,
		FileName: bill.FileName,
	}, nil
}

// Update merges the submitted fields into the stored bill.
// Owner, receipt and approval fields stay as stored.
func (s *userStore) Update(ctx context.Context, key string, bill *entity.Bill) (*entity.Bill, error) {
	if bill == nil {
		return nil, apperr.NewTransportError("update", http.StatusBadRequest, errors.New("empty bill"))
	}

	updated, err := s.repo.Update(ctx, key, func(stored *entity.Bill) error {
		if !s.user.IsAdmin() && stored.Email != s.user.Email {
			return port.ErrBillNotFound
		}

		stored.Type = bill.Type
		stored.Name = bill.Name
		stored.Date = bill.Date
		stored.Amount = bill.Amount
		stored.Pct = bill.Pct
		stored.VAT = bill.VAT
		stored.Commentary = bill.Commentary

		if stored.FileURL == "" {
			stored.FileURL = bill.FileURL
			stored.FileName = bill.FileName
		}
		if stored.Status == "" {
			stored.Status = entity.BillStatusPending
		}
		if s.user.IsAdmin() {
			if bill.Status != "" {
				stored.Status = bill.Status
			}
			if bill.CommentAdmin != "" {
				stored.CommentAdmin = bill.CommentAdmin
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.transportError("update", err)
	}

	s.logger.Info("Bill updated", zap.String("key", key), zap.String("email", s.user.Email))
	return updated, nil
}

// transportError maps repository and storage failures to store statuses
func (s *userStore) transportError(op string, err error) error {
	status := http.StatusInternalServerError
	if errors.Is(err, port.ErrBillNotFound) {
		status = http.StatusNotFound
	} else {
		s.logger.Error("Bill store operation failed", zap.String("op", op), zap.Error(err))
	}
	return apperr.NewTransportError(op, status, fmt.Errorf("%s: %w", op, err))
}

var _ port.StoreProvider = (*LocalStore)(nil)
