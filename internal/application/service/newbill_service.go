package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/application/route"
	"github.com/garyjia/billed/internal/domain/apperr"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/domain/receipt"
)

// ErrReceiptNotValidated is returned when a bill is submitted without an accepted receipt
var ErrReceiptNotValidated = &apperr.ValidationError{
	Field:   "file",
	Message: "Veuillez joindre un justificatif au format .jpg, .jpeg ou .png",
}

// SelectedFile is the file picked in the receipt input
type SelectedFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// NewBillForm holds the fields of the new bill form
type NewBillForm struct {
	ExpenseType string
	Name        string
	Date        string
	Amount      int
	VAT         string
	Pct         int
	Commentary  string
}

// NewBillService backs the new bill screen.
// It owns the state of a single form and is not safe for concurrent submits.
type NewBillService struct {
	document port.Document
	navigate port.NavigateFunc
	store    port.BillStore
	session  entity.User
	logger   Logger

	file     *SelectedFile
	validity receipt.Validity

	// set together once Create succeeds
	billID   string
	fileURL  string
	fileName string
}

// NewNewBillService creates a new NewBillService
func NewNewBillService(cfg Config) (*NewBillService, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &NewBillService{
		document: cfg.Document,
		navigate: cfg.Navigate,
		store:    cfg.Store,
		session:  *cfg.Session,
		logger:   cfg.logger(),
		validity: receipt.ValidityUnset,
	}, nil
}

// HandleChangeFile validates the selected receipt by extension.
// A rejected file raises the alert, clears the input and marks the form invalid.
func (s *NewBillService) HandleChangeFile(file *SelectedFile) bool {
	if file == nil || !receipt.IsAllowed(file.Name) {
		name := ""
		if file != nil {
			name = file.Name
		}
		s.logger.Warn("Rejected receipt file", "file_name", name, "email", s.session.Email)

		s.document.Alert(receipt.InvalidExtensionMessage)
		s.document.ClearFileInput()
		s.file = nil
		s.validity = s.validity.Reject()
		return false
	}

	if len(file.Content) > 0 {
		detected := mimetype.Detect(file.Content)
		if !strings.HasPrefix(detected.String(), "image/") {
			s.logger.Warn("Receipt content does not look like an image",
				"file_name", file.Name,
				"detected", detected.String(),
				"declared", file.ContentType)
		}
	}

	s.file = &SelectedFile{
		Name:        receipt.BaseName(file.Name),
		ContentType: file.ContentType,
		Content:     file.Content,
	}
	s.validity = s.validity.Accept()
	return true
}

// HandleSubmit uploads the receipt, records the bill and returns to the bill list.
// Store errors are returned unchanged and leave the user on the form.
func (s *NewBillService) HandleSubmit(ctx context.Context, form NewBillForm) error {
	if !s.validity.CanSubmit() || s.file == nil {
		s.logger.Warn("Submit blocked, receipt not validated", "validity", s.validity.String())
		return ErrReceiptNotValidated
	}

	upload, err := s.store.Create(ctx, &port.UploadRequest{
		FileName:    s.file.Name,
		ContentType: s.file.ContentType,
		Content:     s.file.Content,
		Email:       s.session.Email,
	})
	if err != nil {
		s.logger.Error("Failed to upload receipt", "error", err, "file_name", s.file.Name)
		return err
	}
	if upload == nil {
		return errors.New("store returned no upload result")
	}

	fileName := upload.FileName
	if fileName == "" {
		fileName = s.file.Name
	}
	s.billID, s.fileURL, s.fileName = upload.Key, upload.FileURL, fileName

	pct := form.Pct
	if pct == 0 {
		pct = entity.DefaultPct
	}

	bill := &entity.Bill{
		ID:         s.billID,
		Email:      s.session.Email,
		Type:       form.ExpenseType,
		Name:       form.Name,
		Date:       form.Date,
		Amount:     form.Amount,
		VAT:        form.VAT,
		Pct:        pct,
		Commentary: form.Commentary,
		FileURL:    s.fileURL,
		FileName:   s.fileName,
		Status:     entity.BillStatusPending,
	}

	if _, err := s.store.Update(ctx, s.billID, bill); err != nil {
		s.logger.Error("Failed to update bill", "error", err, "bill_id", s.billID)
		return err
	}

	s.logger.Info("Bill submitted", "bill_id", s.billID, "email", s.session.Email)
	s.navigate(route.Bills)
	return nil
}

// FileValidity returns the state of the receipt input
func (s *NewBillService) FileValidity() receipt.Validity {
	return s.validity
}

// BillID returns the key assigned by the store, empty before upload
func (s *NewBillService) BillID() string {
	return s.billID
}

// FileURL returns the uploaded receipt URL, empty before upload
func (s *NewBillService) FileURL() string {
	return s.fileURL
}

// FileName returns the uploaded receipt name, empty before upload
func (s *NewBillService) FileName() string {
	return s.fileName
}
