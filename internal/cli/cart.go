package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/utafrali/EcommerceGo/storefront/internal/cart"
	apperrors "github.com/utafrali/EcommerceGo/storefront/pkg/errors"
)

// CartOptions holds flags for the cart commands.
type CartOptions struct {
	*RootOptions
	Quantity int
}

// NewCartCommand creates the cart command group.
func NewCartCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CartOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local shopping cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and totals",
		Args:  exactArgs(0),
		RunE: withSession(rootOpts, func(_ *cobra.Command, s *session, _ []string) error {
			return printCart(s.out, s.cart.State())
		}),
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Long: `Add a product to the cart at its current catalog price. Adding a
product that is already in the cart increases its quantity.`,
		Args: exactArgs(1),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if opts.Quantity < 1 {
				return NewExitError(ExitCommandError, "--quantity must be at least 1")
			}
			p, err := s.catalog.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printCart(s.out, s.cart.AddQuantity(*p, opts.Quantity))
		}),
	}
	add.Flags().IntVarP(&opts.Quantity, "quantity", "q", 1, "units to add")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product line from the cart",
		Args:  exactArgs(1),
		RunE: withSession(rootOpts, func(_ *cobra.Command, s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return printCart(s.out, s.cart.RemoveItem(id))
		}),
	}

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart line; 0 removes it",
		Args:  exactArgs(2),
		RunE: withSession(rootOpts, func(_ *cobra.Command, s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return NewExitError(ExitCommandError, "invalid quantity: "+args[1])
			}
			if !s.cart.IsInCart(id) {
				return apperrors.NotFound("cart item", args[0])
			}
			return printCart(s.out, s.cart.UpdateQuantity(id, qty))
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  exactArgs(0),
		RunE: withSession(rootOpts, func(_ *cobra.Command, s *session, _ []string) error {
			return printCart(s.out, s.cart.Clear())
		}),
	}

	cmd.AddCommand(show, add, remove, set, clearCmd)
	return cmd
}

// CartView is the cart state plus its checkout breakdown.
type CartView struct {
	cart.State
	Summary cart.OrderSummary `json:"summary"`
}

func printCart(out *OutputFormatter, st cart.State) error {
	summary := cart.Summary(st)
	return out.Success(CartView{State: st, Summary: summary}, func(w io.Writer) {
		if len(st.Items) == 0 {
			fmt.Fprintln(w, "cart is empty")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tQTY\tPRICE\tSUBTOTAL")
		for _, it := range st.Items {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\n", it.ID, it.Title, it.Quantity, it.Price, it.Price*float64(it.Quantity))
		}
		_ = tw.Flush()
		fmt.Fprintf(w, "%d items, total $%.2f\n", st.TotalItems, st.TotalPrice)

		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "Subtotal\t$%.2f\t\n", summary.Subtotal)
		if summary.Shipping == 0 {
			fmt.Fprintln(tw, "Shipping\tFREE\t")
		} else {
			fmt.Fprintf(tw, "Shipping\t$%.2f\t\n", summary.Shipping)
		}
		fmt.Fprintf(tw, "Tax (8%%)\t$%.2f\t\n", summary.Tax)
		fmt.Fprintf(tw, "Total\t$%.2f\t\n", summary.Total)
		_ = tw.Flush()
	})
}
