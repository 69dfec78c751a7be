package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the sheet written by ExportService
const ExportSheetName = "Notes de frais"

var exportHeaders = []string{"Type", "Nom", "Date", "Montant", "TVA", "%", "Statut", "Justificatif"}

// ExportService writes the bill list as a spreadsheet
type ExportService struct {
	bills  *BillsService
	logger Logger
}

// NewExportService creates a new ExportService
func NewExportService(bills *BillsService, logger Logger) *ExportService {
	if logger == nil {
		logger = nopLogger{}
	}
	return &ExportService{
		bills:  bills,
		logger: logger,
	}
}

// WriteXLSX writes the bills in display order to w.
// Store errors are returned unchanged.
func (s *ExportService) WriteXLSX(ctx context.Context, w io.Writer) error {
	views, err := s.bills.GetBills(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(ExportSheetName, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, view := range views {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		row := []interface{}{
			view.Type,
			view.Name,
			view.DisplayDate,
			view.Amount,
			view.VAT,
			view.Pct,
			view.DisplayStatus,
			view.FileURL,
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}

	s.logger.Info("Bills exported", "email", s.bills.Session().Email, "count", len(views))
	return nil
}
