package main

import (
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/garyjia/billed/internal/application/route"
	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/domain/receipt"
	"github.com/garyjia/billed/pkg/utils"
)

var errReceiptRejected = errors.New("receipt rejected")

type newBillFlags struct {
	expenseType string
	name        string
	date        string
	amount      int
	vat         string
	pct         int
	commentary  string
	file        string
}

func (f newBillFlags) validate() error {
	if f.file == "" {
		return errors.New("--file is required")
	}
	if err := utils.ValidateDate(f.date); err != nil {
		return err
	}
	if err := utils.ValidateAmount(f.amount); err != nil {
		return err
	}
	return utils.ValidatePct(f.pct)
}

func (f newBillFlags) form() service.NewBillForm {
	return service.NewBillForm{
		ExpenseType: f.expenseType,
		Name:        utils.SanitizeString(f.name),
		Date:        f.date,
		Amount:      f.amount,
		VAT:         f.vat,
		Pct:         f.pct,
		Commentary:  utils.SanitizeString(f.commentary),
	}
}

func billsNewCmd(a *app) *cobra.Command {
	var flags newBillFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Submit a new bill with its receipt",
		Long: `Submit a new bill. The receipt must be a .jpg, .jpeg or .png file;
any other file is rejected before anything is sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBillsNew(cmd, a, flags)
		},
	}

	cmd.Flags().StringVar(&flags.expenseType, "expense-type", entity.ExpenseTypes[0], "expense type")
	cmd.Flags().StringVar(&flags.name, "name", "", "expense name")
	cmd.Flags().StringVar(&flags.date, "date", "", "expense date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.amount, "amount", 0, "amount in euros, VAT included")
	cmd.Flags().StringVar(&flags.vat, "vat", "", "VAT amount")
	cmd.Flags().IntVar(&flags.pct, "pct", 0, "reimbursement rate in percent (default 20)")
	cmd.Flags().StringVar(&flags.commentary, "commentary", "", "commentary")
	cmd.Flags().StringVar(&flags.file, "file", "", "receipt file (.jpg, .jpeg, .png)")

	return cmd
}

func runBillsNew(cmd *cobra.Command, a *app, flags newBillFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}

	cfg, _, nav, err := a.serviceConfig(cmd)
	if err != nil {
		return err
	}

	svc, err := service.NewNewBillService(cfg)
	if err != nil {
		return err
	}

	selected := &service.SelectedFile{
		Name:        filepath.Base(flags.file),
		ContentType: mime.TypeByExtension(filepath.Ext(flags.file)),
	}
	// rejected files are never read
	if receipt.IsAllowed(selected.Name) {
		content, err := os.ReadFile(flags.file)
		if err != nil {
			return fmt.Errorf("failed to read receipt: %w", err)
		}
		selected.Content = content
	}

	if !svc.HandleChangeFile(selected) {
		return errReceiptRejected
	}

	if err := svc.HandleSubmit(cmd.Context(), flags.form()); err != nil {
		return err
	}

	if len(nav.paths) == 1 && nav.paths[0] == route.Bills {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(
			fmt.Sprintf("Note de frais envoyée (%s)", svc.BillID())))
	}
	return err
}
