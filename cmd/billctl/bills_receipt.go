package main

import (
	"github.com/spf13/cobra"

	"github.com/garyjia/billed/internal/application/service"
)

func billsReceiptCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "receipt [url]",
		Short: "Show the receipt of a bill",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := a.serviceConfig(cmd)
			if err != nil {
				return err
			}

			svc, err := service.NewBillsService(cfg)
			if err != nil {
				return err
			}

			icon := service.ReceiptIcon{}
			if len(args) == 1 {
				icon.BillURL = args[0]
			}
			svc.HandleClickIconEye(icon)
			return nil
		},
	}
}
