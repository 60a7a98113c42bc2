// Package event publishes cart and wishlist snapshots to Kafka as they
// change.
package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/utafrali/EcommerceGo/storefront/internal/cart"
	"github.com/utafrali/EcommerceGo/storefront/internal/wishlist"
	pkgkafka "github.com/utafrali/EcommerceGo/storefront/pkg/kafka"
)

// Kafka topics for storefront state events.
var (
	TopicCartUpdated     = pkgkafka.Topic("storefront.cart", "updated")
	TopicWishlistUpdated = pkgkafka.Topic("storefront.wishlist", "updated")
)

// Aggregate types.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

// SourceStorefront identifies events from this process.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	Owner      string            `json:"owner"`
	Items      []CartItemData    `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
	Summary    cart.OrderSummary `json:"summary"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	Owner      string `json:"owner"`
	ProductIDs []int  `json:"product_ids"`
	Count      int    `json:"count"`
}

// Publisher sends an event envelope to a topic. *pkgkafka.Producer
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// CartSource is the subscription side of the cart engine.
type CartSource interface {
	Subscribe() (<-chan cart.State, func())
}

// WishlistSource is the subscription side of the wishlist engine.
type WishlistSource interface {
	Subscribe() (<-chan wishlist.State, func())
}

// Relay turns engine state changes into Kafka events. Each event is keyed
// by owner, so a device's history stays on one partition, and numbered so
// a consumer can discard a snapshot older than one it already holds.
type Relay struct {
	publisher Publisher
	owner     string
	logger    *slog.Logger
	seq       atomic.Uint64
}

// NewRelay creates a relay publishing on behalf of owner.
func NewRelay(publisher Publisher, owner string, logger *slog.Logger) *Relay {
	if owner == "" {
		owner = "default"
	}
	return &Relay{publisher: publisher, owner: owner, logger: logger}
}

// PublishCart publishes a cart.updated event for s.
func (r *Relay) PublishCart(ctx context.Context, s cart.State) error {
	items := make([]CartItemData, len(s.Items))
	for i, it := range s.Items {
		items[i] = CartItemData{ProductID: it.ID, Title: it.Title, Price: it.Price, Quantity: it.Quantity}
	}
	data := CartUpdatedData{
		Owner:      r.owner,
		Items:      items,
		TotalItems: s.TotalItems,
		TotalPrice: s.TotalPrice,
		Summary:    cart.Summary(s),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, r.owner, AggregateTypeCart, SourceStorefront, r.seq.Add(1), data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}
	if err := r.publisher.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	r.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("owner", r.owner),
		slog.Int("total_items", s.TotalItems),
	)
	return nil
}

// PublishWishlist publishes a wishlist.updated event for s.
func (r *Relay) PublishWishlist(ctx context.Context, s wishlist.State) error {
	ids := make([]int, len(s.Items))
	for i, p := range s.Items {
		ids[i] = p.ID
	}
	data := WishlistUpdatedData{Owner: r.owner, ProductIDs: ids, Count: len(ids)}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, r.owner, AggregateTypeWishlist, SourceStorefront, r.seq.Add(1), data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}
	if err := r.publisher.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	r.logger.DebugContext(ctx, "published wishlist.updated event",
		slog.String("owner", r.owner),
		slog.Int("count", len(ids)),
	)
	return nil
}

// Run forwards every observed state of c and w until ctx is done. Publish
// failures are logged and do not stop the relay. Intermediate states may
// be skipped when the broker is slower than the engines.
func (r *Relay) Run(ctx context.Context, c CartSource, w WishlistSource) {
	carts, cancelCart := c.Subscribe()
	defer cancelCart()
	wishlists, cancelWishlist := w.Subscribe()
	defer cancelWishlist()

	for {
		select {
		case <-ctx.Done():
			return
		case s, ok := <-carts:
			if !ok {
				return
			}
			if err := r.PublishCart(ctx, s); err != nil {
				r.logger.ErrorContext(ctx, "failed to publish cart event", slog.String("error", err.Error()))
			}
		case s, ok := <-wishlists:
			if !ok {
				return
			}
			if err := r.PublishWishlist(ctx, s); err != nil {
				r.logger.ErrorContext(ctx, "failed to publish wishlist event", slog.String("error", err.Error()))
			}
		}
	}
}
