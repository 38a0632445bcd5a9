package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every item in the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeDB, err := c.openService()
			if err != nil {
				return err
			}
			defer closeDB()

			out := cmd.OutOrStdout()
			if !yes {
				items, err := svc.ListFoods(cmd.Context())
				if err != nil {
					return err
				}
				ok, err := confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete all %d item(s)?", len(items)))
				if err != nil {
					return err
				}
				if !ok {
					_, _ = fmt.Fprintln(out, "Reset cancelled.")
					return nil
				}
			}

			n, err := svc.Reset(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "Inventory reset: %d item(s) deleted.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
