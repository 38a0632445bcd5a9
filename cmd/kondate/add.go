package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vbonduro/kondate/internal/domain"
	"github.com/vbonduro/kondate/internal/service"
)

func (c *cli) newAddCmd() *cobra.Command {
	var in service.FoodInput

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a food item to the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]

			svc, closeDB, err := c.openService()
			if err != nil {
				return err
			}
			defer closeDB()

			item, err := svc.AddFood(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s (id %d, expires %s).\n",
				item.Name, item.ID, item.ExpiryDate.Format(domain.DateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ExpiryDate, "expires", "", "expiry date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&in.PurchaseDate, "purchased", time.Now().Format(domain.DateLayout), "purchase date, YYYY-MM-DD")
	cmd.Flags().StringVar(&in.Quantity, "quantity", "1", "quantity, a number greater than zero")
	_ = cmd.MarkFlagRequired("expires")
	return cmd
}
