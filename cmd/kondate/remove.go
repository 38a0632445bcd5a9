package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove SUBSTRING",
		Short: "Delete every item whose name contains SUBSTRING (case-sensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := c.openService()
			if err != nil {
				return err
			}
			defer closeDB()

			n, err := svc.RemoveFood(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d item(s) deleted.\n", n)
			return nil
		},
	}
}
