package main

import (
	"github.com/spf13/cobra"
)

func billsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage your expense bills",
		Long: `Bill commands act on the bills of the session user.

Admins see every employee's bills.`,
	}

	cmd.AddCommand(billsListCmd(a))
	cmd.AddCommand(billsNewCmd(a))
	cmd.AddCommand(billsExportCmd(a))
	cmd.AddCommand(billsReceiptCmd(a))

	return cmd
}
