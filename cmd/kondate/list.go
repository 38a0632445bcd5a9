package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vbonduro/kondate/internal/domain"
)

// itemRecord is the yaml shape of one inventory row.
type itemRecord struct {
	ID           int64   `yaml:"id"`
	Name         string  `yaml:"name"`
	PurchaseDate string  `yaml:"purchase_date"`
	ExpiryDate   string  `yaml:"expiry_date"`
	DaysLeft     int     `yaml:"days_left"`
	Quantity     float64 `yaml:"quantity"`
}

func (c *cli) newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the inventory, closest expiry first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeDB, err := c.openService()
			if err != nil {
				return err
			}
			defer closeDB()

			items, err := svc.ListFoods(cmd.Context())
			if err != nil {
				return err
			}
			return writeItems(cmd.OutOrStdout(), items, format, time.Now())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or yaml")
	return cmd
}

func writeItems(w io.Writer, items []*domain.FoodItem, format string, now time.Time) error {
	switch format {
	case "yaml":
		records := make([]itemRecord, 0, len(items))
		for _, item := range items {
			records = append(records, itemRecord{
				ID:           item.ID,
				Name:         item.Name,
				PurchaseDate: item.PurchaseDate.Format(domain.DateLayout),
				ExpiryDate:   item.ExpiryDate.Format(domain.DateLayout),
				DaysLeft:     item.DaysUntilExpiry(now),
				Quantity:     item.Quantity,
			})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode items: %w", err)
		}
		return enc.Close()
	case "table":
		if len(items) == 0 {
			_, err := fmt.Fprintln(w, "No food in the inventory.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tPURCHASED\tEXPIRES\tDAYS LEFT\tQUANTITY")
		for _, item := range items {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
				item.ID,
				item.Name,
				item.PurchaseDate.Format(domain.DateLayout),
				item.ExpiryDate.Format(domain.DateLayout),
				item.DaysUntilExpiry(now),
				strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q, want table or yaml", format)
	}
}
