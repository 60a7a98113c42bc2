package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/utafrali/EcommerceGo/storefront/internal/wishlist"
)

// NewWishlistCommand creates the wishlist command group.
func NewWishlistCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the local wishlist",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show saved products",
		Args:  exactArgs(0),
		RunE: withSession(rootOpts, func(_ *cobra.Command, s *session, _ []string) error {
			return printWishlist(s.out, s.wishlist.State())
		}),
	}

	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Save a product; saving it again does nothing",
		Args:  exactArgs(1),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := s.catalog.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printWishlist(s.out, s.wishlist.Add(*p))
		}),
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a saved product",
		Args:  exactArgs(1),
		RunE: withSession(rootOpts, func(_ *cobra.Command, s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return printWishlist(s.out, s.wishlist.Remove(id))
		}),
	}

	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Save a product, or remove it if already saved",
		Args:  exactArgs(1),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, ok := s.wishlist.Get(id)
			if !ok {
				fetched, err := s.catalog.GetProduct(cmd.Context(), id)
				if err != nil {
					return err
				}
				p = *fetched
			}
			return printWishlist(s.out, s.wishlist.Toggle(p))
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every saved product",
		Args:  exactArgs(0),
		RunE: withSession(rootOpts, func(_ *cobra.Command, s *session, _ []string) error {
			return printWishlist(s.out, s.wishlist.Clear())
		}),
	}

	cmd.AddCommand(show, add, remove, toggle, clearCmd)
	return cmd
}

func printWishlist(out *OutputFormatter, st wishlist.State) error {
	return out.Success(st, func(w io.Writer) {
		if st.Count() == 0 {
			fmt.Fprintln(w, "wishlist is empty")
			return
		}
		printProducts(w, st.Items)
		fmt.Fprintf(w, "%d saved\n", st.Count())
	})
}
