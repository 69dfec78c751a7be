// Package storage keeps uploaded receipt files on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/receipt"
	"go.uber.org/zap"
)

// ErrPathEscapesBase is returned when a path resolves outside the receipts directory
var ErrPathEscapesBase = errors.New("path escapes base directory")

// ReceiptStorage implements port.FileStorage for receipts on the local filesystem
type ReceiptStorage struct {
	baseDir string
	logger  *zap.Logger
}

// NewReceiptStorage creates the receipts directory if needed
func NewReceiptStorage(baseDir string, logger *zap.Logger) (*ReceiptStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create receipts directory: %w", err)
	}
	return &ReceiptStorage{
		baseDir: baseDir,
		logger:  logger,
	}, nil
}

// ReceiptPath returns the relative path of the receipt stored under key.
// The original extension is kept, lower-cased.
func ReceiptPath(key, fileName string) string {
	ext := receipt.Extension(fileName)
	if ext == "" {
		return key
	}
	return key + "." + ext
}

// BaseDir returns the receipts directory
func (s *ReceiptStorage) BaseDir() string {
	return s.baseDir
}

// Save writes content to the relative path
func (s *ReceiptStorage) Save(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath := s.GetFullPath(path)
	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	parentDir := filepath.Dir(fullPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		s.logger.Error("Failed to create parent directories",
			zap.String("path", parentDir),
			zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write receipt",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("Receipt saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))

	return nil
}

// Delete removes the receipt at the relative path. Missing files are not an error.
func (s *ReceiptStorage) Delete(ctx context.Context, path string) error {
	fullPath := s.GetFullPath(path)
	if err := s.validatePath(fullPath); err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to delete receipt",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetFullPath converts a relative path to full path
func (s *ReceiptStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// validatePath checks that the path stays within baseDir
func (s *ReceiptStorage) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathEscapesBase, fullPath)
	}

	return nil
}

var _ port.FileStorage = (*ReceiptStorage)(nil)
