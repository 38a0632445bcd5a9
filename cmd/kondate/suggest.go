package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vbonduro/kondate/internal/service"
	"github.com/vbonduro/kondate/internal/suggest"
)

type suggestOptions struct {
	prefs   suggest.Preferences
	consume bool
	yes     bool
}

func (c *cli) newSuggestCmd() *cobra.Command {
	var opts suggestOptions

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask for a menu using the items closest to expiry",
		Long: `Ask the configured AI backend for a menu built from the inventory.
With --consume the ingredients named by the menu are removed from the
inventory after confirmation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSuggest(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.prefs.Servings, "servings", "", "serving size, e.g. 2人分")
	cmd.Flags().StringVar(&opts.prefs.Taste, "prefs", "", "taste preferences, e.g. 和食、簡単")
	cmd.Flags().BoolVar(&opts.consume, "consume", false, "delete the ingredients used by the menu")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "do not ask before deleting")
	return cmd
}

func (c *cli) runSuggest(cmd *cobra.Command, opts suggestOptions) error {
	svc, closeDB, err := c.openService()
	if err != nil {
		return err
	}
	defer closeDB()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	sug, err := svc.Suggest(cmd.Context(), opts.prefs)
	if errors.Is(err, service.ErrNoItems) {
		_, _ = fmt.Fprintln(errOut, "The inventory is empty, add some food before asking for a menu.")
		return nil
	}
	if err != nil {
		return err
	}

	switch sug.Source {
	case service.SourcePlaceholder:
		_, _ = fmt.Fprintln(errOut, "No AI backend is configured; showing a sample suggestion.")
	case service.SourceFailed:
		_, _ = fmt.Fprintf(errOut, "The suggestion service failed: %v\n", sug.Err)
	}
	_, _ = fmt.Fprintln(out, sug.Text)

	if !opts.consume {
		return nil
	}

	names, err := svc.Ingredients(sug.Text)
	if errors.Is(err, service.ErrNoIngredients) {
		_, _ = fmt.Fprintln(errOut, "Could not identify the ingredients used by this menu.")
		return nil
	}
	if err != nil {
		return err
	}

	matches, err := svc.Preview(cmd.Context(), names)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "\nIngredients to delete:")
	for _, m := range matches {
		_, _ = fmt.Fprintf(out, "  %s: %s\n", m.Name, describeMatches(m))
	}

	if !opts.yes {
		ok, err := confirm(cmd.InOrStdin(), out, "Delete these ingredients from the inventory?")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(out, "Deletion cancelled.")
			return nil
		}
	}

	result, err := svc.Consume(cmd.Context(), names)
	if err != nil {
		if result != nil && result.Total > 0 {
			_, _ = fmt.Fprintf(errOut, "Deleted before the failure: %d item(s).\n", result.Total)
		}
		return err
	}
	_, _ = fmt.Fprintf(out, "%d item(s) deleted from the inventory.\n", result.Total)
	return nil
}

func describeMatches(m service.Match) string {
	if len(m.Items) == 0 {
		return "no matching items"
	}
	names := make([]string, 0, len(m.Items))
	for _, item := range m.Items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}
