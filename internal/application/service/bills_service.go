package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/application/route"
	"github.com/garyjia/billed/internal/domain/entity"
)

// ErrMissingDependency is returned when a container is built without a required collaborator
var ErrMissingDependency = errors.New("missing required dependency")

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Config holds the collaborators shared by the bill containers
type Config struct {
	Document port.Document
	Navigate port.NavigateFunc
	Store    port.BillStore
	Session  *entity.User
	Logger   Logger
}

// validate rejects a config missing any required capability
func (c Config) validate() error {
	switch {
	case c.Document == nil:
		return fmt.Errorf("%w: document", ErrMissingDependency)
	case c.Navigate == nil:
		return fmt.Errorf("%w: navigate", ErrMissingDependency)
	case c.Store == nil:
		return fmt.Errorf("%w: store", ErrMissingDependency)
	case c.Session == nil:
		return fmt.Errorf("%w: session", ErrMissingDependency)
	}
	return nil
}

func (c Config) logger() Logger {
	if c.Logger == nil {
		return nopLogger{}
	}
	return c.Logger
}

// ReceiptIcon is the eye icon of a bill row.
// BillURL mirrors the icon's data-bill-url attribute.
type ReceiptIcon struct {
	BillURL string
}

// BillsService backs the bill list screen
type BillsService struct {
	document port.Document
	navigate port.NavigateFunc
	store    port.BillStore
	session  entity.User
	logger   Logger
}

// NewBillsService creates a new BillsService
func NewBillsService(cfg Config) (*BillsService, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &BillsService{
		document: cfg.Document,
		navigate: cfg.Navigate,
		store:    cfg.Store,
		session:  *cfg.Session,
		logger:   cfg.logger(),
	}, nil
}

// Session returns the user the service acts for
func (s *BillsService) Session() entity.User {
	return s.session
}

// GetBills lists the user's bills, formatted for display and sorted by date, latest first.
// Store errors are returned unchanged. A bill whose date cannot be formatted keeps its raw date.
func (s *BillsService) GetBills(ctx context.Context) ([]entity.BillView, error) {
	bills, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list bills", "error", err, "email", s.session.Email)
		return nil, err
	}

	views := make([]entity.BillView, 0, len(bills))
	for _, bill := range bills {
		view := entity.BillView{
			Bill:          bill,
			DisplayDate:   bill.Date,
			DisplayStatus: FormatStatus(bill.Status),
		}

		formatted, err := FormatDate(bill.Date)
		if err != nil {
			s.logger.Warn("Keeping unformatted bill date", "bill_id", bill.ID, "date", bill.Date, "error", err)
		} else {
			view.DisplayDate = formatted
		}

		views = append(views, view)
	}

	sortByDateDesc(views)

	s.logger.Info("Bills fetched", "email", s.session.Email, "count", len(views))
	return views, nil
}

// HandleClickNewBill navigates to the new bill form
func (s *BillsService) HandleClickNewBill() {
	s.navigate(route.NewBill)
}

// HandleClickIconEye opens the receipt overlay for the clicked icon
func (s *BillsService) HandleClickIconEye(icon ReceiptIcon) {
	if icon.BillURL == "" {
		s.logger.Warn("Receipt icon has no bill URL")
	}
	s.document.ShowReceiptModal(icon.BillURL)
}

// sortByDateDesc orders views by raw date, latest first, keeping fetch order on ties.
// YYYY-MM-DD compares chronologically as a string.
func sortByDateDesc(views []entity.BillView) {
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].Date > views[j].Date
	})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
