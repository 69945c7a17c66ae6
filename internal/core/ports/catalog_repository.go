package ports

import (
	"context"
	"time"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

// ShopRepository defines persistence operations for shops.
// Mutations take the owning merchantID and only touch documents that carry it.
type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	FindByID(ctx context.Context, shopID string) (*domain.Shop, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Shop, error)
	Update(ctx context.Context, shopID, merchantID string, update domain.ShopUpdate, at time.Time) (*domain.Shop, error)
	UpdateStatus(ctx context.Context, shopID, merchantID string, status domain.ShopStatus, at time.Time) (*domain.Shop, error)
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, productID string) (*domain.Product, error)
	ListByShop(ctx context.Context, shopID string) ([]*domain.Product, error)
	Update(ctx context.Context, productID, merchantID string, update domain.ProductUpdate, at time.Time) (*domain.Product, error)
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*domain.Order, error)
	// ListByShop returns a shop's orders, newest first. An empty status
	// returns every status.
	ListByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]*domain.Order, error)
	// ListByMerchant returns every order across the merchant's shops, newest first.
	ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Order, error)
	// UpdateStatus atomically sets the order's status and appends a history
	// entry, provided the order is still in status from.
	UpdateStatus(ctx context.Context, orderID, merchantID string, from domain.OrderStatus, entry domain.StatusHistoryEntry) (*domain.Order, error)
}
