package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/pkg/utils"
)

func billsExportCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export your bills as an xlsx spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				return errors.New("--output is required")
			}

			cfg, _, _, err := a.serviceConfig(cmd)
			if err != nil {
				return err
			}

			bills, err := service.NewBillsService(cfg)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}

			err = service.NewExportService(bills, utils.NewServiceLogger(a.logger)).WriteXLSX(cmd.Context(), f)
			if closeErr := f.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				_ = os.Remove(output)
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Export écrit dans "+output))
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination .xlsx file")

	return cmd
}
