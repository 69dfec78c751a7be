package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/internal/domain/entity"
)

// billRow is one bill as printed by bills list
type billRow struct {
	ID      string `json:"id" yaml:"id"`
	Date    string `json:"date" yaml:"date"`
	Type    string `json:"type" yaml:"type"`
	Name    string `json:"name" yaml:"name"`
	Amount  int    `json:"amount" yaml:"amount"`
	Status  string `json:"status" yaml:"status"`
	FileURL string `json:"fileUrl" yaml:"fileUrl"`
}

func toRows(bills []entity.BillView) []billRow {
	rows := make([]billRow, 0, len(bills))
	for _, b := range bills {
		rows = append(rows, billRow{
			ID:      b.ID,
			Date:    b.DisplayDate,
			Type:    b.Type,
			Name:    b.Name,
			Amount:  b.Amount,
			Status:  b.DisplayStatus,
			FileURL: b.FileURL,
		})
	}
	return rows
}

func billsListCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bills, latest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, _, err := a.serviceConfig(cmd)
			if err != nil {
				return err
			}

			svc, err := service.NewBillsService(cfg)
			if err != nil {
				return err
			}

			bills, err := svc.GetBills(cmd.Context())
			if err != nil {
				return err
			}

			return writeBills(cmd.OutOrStdout(), toRows(bills), format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "table", "output format (table, json, yaml)")

	return cmd
}

func writeBills(w io.Writer, rows []billRow, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rows)
	case "table", "":
		return writeBillsTable(w, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeBillsTable(w io.Writer, rows []billRow) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("Aucune note de frais."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("Date"),
		headerStyle.Render("Type"),
		headerStyle.Render("Nom"),
		headerStyle.Render("Montant"),
		headerStyle.Render("Statut"),
		headerStyle.Render("Justificatif")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 10),
		strings.Repeat("─", 18),
		strings.Repeat("─", 16),
		strings.Repeat("─", 8),
		strings.Repeat("─", 10),
		strings.Repeat("─", 20)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, row := range rows {
		receiptURL := row.FileURL
		if receiptURL == "" {
			receiptURL = noReceipt
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d €\t%s\t%s\n",
			row.Date,
			row.Type,
			row.Name,
			row.Amount,
			row.Status,
			receiptURL); err != nil {
			return fmt.Errorf("failed to write bill row: %w", err)
		}
	}

	return tw.Flush()
}
