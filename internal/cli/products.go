package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/utafrali/EcommerceGo/storefront/internal/browse"
	"github.com/utafrali/EcommerceGo/storefront/internal/domain"
)

// ProductsOptions holds flags for the products commands.
type ProductsOptions struct {
	*RootOptions
	Limit int
	Pages int
}

// ProductView is a product as shown by products get.
type ProductView struct {
	Product      *domain.Product `json:"product"`
	CartQuantity int             `json:"cart_quantity"`
	InWishlist   bool            `json:"in_wishlist"`
}

// NewProductsCommand creates the products command group.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProductsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the product catalog",
	}
	cmd.PersistentFlags().IntVar(&opts.Limit, "limit", 0, "page size (default CATALOG_PAGE_SIZE)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List products page by page",
		Args:  exactArgs(0),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, _ []string) error {
			feed := newFeed(s, opts)
			if err := feed.Load(cmd.Context()); err != nil {
				return err
			}
			for i := 1; i < opts.Pages && feed.State().HasMore; i++ {
				if err := feed.LoadMore(cmd.Context()); err != nil {
					return err
				}
			}
			return printFeed(s.out, feed.State())
		}),
	}
	list.Flags().IntVar(&opts.Pages, "pages", 1, "number of pages to load")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by text",
		Args:  exactArgs(1),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, args []string) error {
			feed := newFeed(s, opts)
			if err := feed.Search(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printFeed(s.out, feed.State())
		}),
	}

	category := &cobra.Command{
		Use:   "category <slug>",
		Short: "List products in a category",
		Args:  exactArgs(1),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, args []string) error {
			feed := newFeed(s, opts)
			if err := feed.FilterByCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			return printFeed(s.out, feed.State())
		}),
	}

	categories := &cobra.Command{
		Use:   "categories",
		Short: "List product categories",
		Args:  exactArgs(0),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, _ []string) error {
			cats, err := s.catalog.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			return s.out.Success(cats, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "SLUG\tNAME")
				for _, c := range cats {
					fmt.Fprintf(tw, "%s\t%s\n", c.Slug, c.Name)
				}
				_ = tw.Flush()
			})
		}),
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  exactArgs(1),
		RunE: withSession(rootOpts, func(cmd *cobra.Command, s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			detail := browse.NewDetail(s.catalog, id, s.logger)
			if err := detail.Fetch(cmd.Context()); err != nil {
				return err
			}
			view := ProductView{
				Product:      detail.State().Product,
				CartQuantity: s.cart.GetItemQuantity(id),
				InWishlist:   s.wishlist.IsInWishlist(id),
			}
			return s.out.Success(view, func(w io.Writer) {
				p := view.Product
				fmt.Fprintf(w, "#%d %s\n", p.ID, p.Title)
				fmt.Fprintf(w, "  price:    $%.2f\n", p.Price)
				fmt.Fprintf(w, "  category: %s\n", p.Category)
				fmt.Fprintf(w, "  rating:   %.1f (%d)\n", p.Rating.Rate, p.Rating.Count)
				if p.Description != "" {
					fmt.Fprintf(w, "  %s\n", p.Description)
				}
				fmt.Fprintf(w, "  in cart:  %d\n", view.CartQuantity)
				fmt.Fprintf(w, "  wishlist: %t\n", view.InWishlist)
			})
		}),
	}

	cmd.AddCommand(list, search, category, categories, get)
	return cmd
}

func newFeed(s *session, opts *ProductsOptions) *browse.Feed {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.cfg.CatalogPageSize
	}
	return browse.NewFeed(s.catalog, limit, s.logger)
}

func printFeed(out *OutputFormatter, st browse.FeedState) error {
	return out.Success(st, func(w io.Writer) {
		printProducts(w, st.Products)
		if st.HasMore {
			fmt.Fprintln(w, "(more available)")
		}
	})
}

func printProducts(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "no products")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tCATEGORY")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", p.ID, p.Title, p.Price, p.Category)
	}
	_ = tw.Flush()
}
