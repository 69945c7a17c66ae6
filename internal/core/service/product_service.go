package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

type ProductService struct {
	products ports.ProductRepository
	shops    ports.ShopRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewProductService(products ports.ProductRepository, shops ports.ShopRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, shops: shops, logger: logger, now: time.Now}
}

// ListByShop returns the products of a shop the caller owns.
func (s *ProductService) ListByShop(ctx context.Context, id domain.AuthorizedIdentity, shopID string) ([]*domain.Product, error) {
	if _, err := ownedShop(ctx, s.shops, id, shopID); err != nil {
		return nil, err
	}
	products, err := s.products.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Create adds a product to a shop the caller owns.
func (s *ProductService) Create(ctx context.Context, id domain.AuthorizedIdentity, shopID string, input ports.CreateProductInput) (*domain.Product, error) {
	shop, err := ownedShop(ctx, s.shops, id, shopID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		ShopID:      shop.ID,
		MerchantID:  shop.MerchantID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Brand:       input.Brand,
		Images:      input.Images,
		Variants:    input.Variants,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("shop_id", shopID).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Str("shop_id", shopID).Msg("product created")
	return product, nil
}

// Get returns a product the caller owns.
func (s *ProductService) Get(ctx context.Context, id domain.AuthorizedIdentity, productID string) (*domain.Product, error) {
	return s.owned(ctx, id, productID)
}

// Update edits a product the caller owns.
func (s *ProductService) Update(ctx context.Context, id domain.AuthorizedIdentity, productID string, update domain.ProductUpdate) (*domain.Product, error) {
	if _, err := s.owned(ctx, id, productID); err != nil {
		return nil, err
	}
	product, err := s.products.Update(ctx, productID, id.UserID, update, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) owned(ctx context.Context, id domain.AuthorizedIdentity, productID string) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(product.MerchantID, id, domain.ErrProductNotFound); err != nil {
		return nil, err
	}
	return product, nil
}
