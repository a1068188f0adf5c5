package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subtrack/internal/core"
	"subtrack/internal/services"
)

func newAddCmd(app *App) *cobra.Command {
	var in services.Input

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new subscription",
		Long: fmt.Sprintf("Add a new subscription record.\n\nCommon categories: %s\nCommon payment methods: %s",
			strings.Join(app.Presets.Categories, ", "),
			strings.Join(app.Presets.PaymentMethods, ", ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := app.Service.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added subscription %q with id %d\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "subscription name (2-100 characters)")
	cmd.Flags().StringVar(&in.Category, "category", "", "category (2-50 characters)")
	cmd.Flags().StringVar(&in.Cost, "cost", "", `monthly cost, plain or currency-formatted ("15.99", "$15.99")`)
	cmd.Flags().StringVar(&in.RenewalDate, "renewal", "", "renewal date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.PaymentMethod, "payment", "", "payment method")
	for _, f := range []string{"name", "category", "cost", "renewal", "payment"} {
		cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			subs, err := app.Service.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(subs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subscriptions found.")
				return nil
			}
			renderSubscriptions(cmd.OutOrStdout(), subs, app.Config.CurrencySymbol, time.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "Total subscriptions: %d\n", len(subs))
			return nil
		},
	}
}

func newGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := app.Service.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:             %d\n", s.ID)
			fmt.Fprintf(out, "Name:           %s\n", s.Name)
			fmt.Fprintf(out, "Category:       %s\n", s.Category)
			fmt.Fprintf(out, "Monthly cost:   %s\n", s.Cost.Format(app.Config.CurrencySymbol))
			fmt.Fprintf(out, "Renewal date:   %s\n", s.RenewalDate)
			fmt.Fprintf(out, "Payment method: %s\n", s.PaymentMethod)
			if !s.CreatedAt.IsZero() {
				fmt.Fprintf(out, "Created:        %s\n", s.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var in services.Input

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a subscription",
		Long:  "Edit a subscription. Flags that are not set keep their current value; the record is replaced as a whole.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := app.Service.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			merged := services.Input{
				Name:          current.Name,
				Category:      current.Category,
				Cost:          current.Cost.Format(""),
				RenewalDate:   current.RenewalDate,
				PaymentMethod: current.PaymentMethod,
			}
			if cmd.Flags().Changed("name") {
				merged.Name = in.Name
			}
			if cmd.Flags().Changed("category") {
				merged.Category = in.Category
			}
			if cmd.Flags().Changed("cost") {
				merged.Cost = in.Cost
			}
			if cmd.Flags().Changed("renewal") {
				merged.RenewalDate = in.RenewalDate
			}
			if cmd.Flags().Changed("payment") {
				merged.PaymentMethod = in.PaymentMethod
			}

			updated, err := app.Service.Update(cmd.Context(), id, merged)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated subscription %q (id %d)\n", updated.Name, updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "new name")
	cmd.Flags().StringVar(&in.Category, "category", "", "new category")
	cmd.Flags().StringVar(&in.Cost, "cost", "", "new monthly cost")
	cmd.Flags().StringVar(&in.RenewalDate, "renewal", "", "new renewal date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.PaymentMethod, "payment", "", "new payment method")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a subscription",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := app.Service.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := app.Service.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted subscription %q (id %d)\n", s.Name, id)
			return nil
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search subscriptions by name or category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches, err := app.Service.Search(cmd.Context(), args[0], core.SearchField(field))
			if err != nil {
				return err
			}
			if len(matches) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No subscriptions found matching %q.\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Found %d subscription(s) matching %q:\n", len(matches), args[0])
			renderSubscriptions(cmd.OutOrStdout(), matches, app.Config.CurrencySymbol, time.Now())
			return nil
		},
	}

	cmd.Flags().StringVar(&field, "field", string(core.SearchByName), `field to match: "name" or "category"`)
	return cmd
}
