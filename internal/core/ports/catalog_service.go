package ports

import (
	"context"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

// CreateShopInput carries all data needed to create a new shop.
type CreateShopInput struct {
	Name           string
	Description    string
	Category       string
	Address        domain.Address
	Phone          string
	Email          string
	Website        string
	OperatingHours domain.OpeningHours
	DeliveryRadius float64
	MinimumOrder   float64
	DeliveryFee    float64
}

// CreateProductInput carries all data needed to add a product to a shop.
type CreateProductInput struct {
	Name        string
	Description string
	Category    string
	Subcategory string
	Brand       string
	Images      []string
	Variants    []domain.Variant
}

// UpdateOrderStatusInput is the merchant's order status change.
type UpdateOrderStatusInput struct {
	Status        domain.OrderStatus
	MerchantNotes string
}

// ShopService defines use-case operations for shops. Every call is scoped
// to the authorized identity; foreign shops are reported as not found.
type ShopService interface {
	List(ctx context.Context, id domain.AuthorizedIdentity) ([]*domain.Shop, error)
	Create(ctx context.Context, id domain.AuthorizedIdentity, input CreateShopInput) (*domain.Shop, error)
	Get(ctx context.Context, id domain.AuthorizedIdentity, shopID string) (*domain.Shop, error)
	Update(ctx context.Context, id domain.AuthorizedIdentity, shopID string, update domain.ShopUpdate) (*domain.Shop, error)
	UpdateStatus(ctx context.Context, id domain.AuthorizedIdentity, shopID string, status domain.ShopStatus) (*domain.Shop, error)
}

// ProductService defines use-case operations for products.
type ProductService interface {
	ListByShop(ctx context.Context, id domain.AuthorizedIdentity, shopID string) ([]*domain.Product, error)
	Create(ctx context.Context, id domain.AuthorizedIdentity, shopID string, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id domain.AuthorizedIdentity, productID string) (*domain.Product, error)
	Update(ctx context.Context, id domain.AuthorizedIdentity, productID string, update domain.ProductUpdate) (*domain.Product, error)
}

// OrderService defines use-case operations for a merchant's orders.
type OrderService interface {
	// ListByShop filters by status when it is not empty.
	ListByShop(ctx context.Context, id domain.AuthorizedIdentity, shopID string, status domain.OrderStatus) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id domain.AuthorizedIdentity, orderID string, input UpdateOrderStatusInput) (*domain.Order, error)
}

// DashboardService summarizes everything the caller owns.
type DashboardService interface {
	Summary(ctx context.Context, id domain.AuthorizedIdentity) (*domain.Dashboard, error)
}
