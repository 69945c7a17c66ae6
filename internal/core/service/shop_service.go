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

type ShopService struct {
	repo   ports.ShopRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewShopService(repo ports.ShopRepository, logger zerolog.Logger) *ShopService {
	return &ShopService{repo: repo, logger: logger, now: time.Now}
}

// List returns the shops owned by the caller.
func (s *ShopService) List(ctx context.Context, id domain.AuthorizedIdentity) ([]*domain.Shop, error) {
	shops, err := s.repo.ListByMerchant(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}

// Create opens a new shop owned by the caller. New shops start closed.
func (s *ShopService) Create(ctx context.Context, id domain.AuthorizedIdentity, input ports.CreateShopInput) (*domain.Shop, error) {
	now := s.now().UTC()
	shop := &domain.Shop{
		ID:             uuid.NewString(),
		MerchantID:     id.UserID,
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Address:        input.Address,
		Phone:          input.Phone,
		Email:          input.Email,
		Website:        input.Website,
		OperatingHours: input.OperatingHours,
		DeliveryRadius: input.DeliveryRadius,
		MinimumOrder:   input.MinimumOrder,
		DeliveryFee:    input.DeliveryFee,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, shop); err != nil {
		s.logger.Error().Err(err).Str("merchant_id", id.UserID).Msg("failed to create shop")
		return nil, fmt.Errorf("create shop: %w", err)
	}

	s.logger.Info().Str("shop_id", shop.ID).Str("merchant_id", id.UserID).Msg("shop created")
	return shop, nil
}

// Get returns a shop the caller owns.
func (s *ShopService) Get(ctx context.Context, id domain.AuthorizedIdentity, shopID string) (*domain.Shop, error) {
	return s.owned(ctx, id, shopID)
}

// Update edits a shop the caller owns.
func (s *ShopService) Update(ctx context.Context, id domain.AuthorizedIdentity, shopID string, update domain.ShopUpdate) (*domain.Shop, error) {
	if _, err := s.owned(ctx, id, shopID); err != nil {
		return nil, err
	}
	shop, err := s.repo.Update(ctx, shopID, id.UserID, update, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update shop: %w", err)
	}
	return shop, nil
}

// UpdateStatus opens or closes a shop the caller owns.
func (s *ShopService) UpdateStatus(ctx context.Context, id domain.AuthorizedIdentity, shopID string, status domain.ShopStatus) (*domain.Shop, error) {
	if _, err := s.owned(ctx, id, shopID); err != nil {
		return nil, err
	}
	shop, err := s.repo.UpdateStatus(ctx, shopID, id.UserID, status, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update shop status: %w", err)
	}
	s.logger.Info().
		Str("shop_id", shopID).
		Bool("is_open", status.IsOpen).
		Bool("accepting_orders", status.AcceptingOrders).
		Msg("shop status changed")
	return shop, nil
}

// owned loads a shop and applies the ownership check.
func (s *ShopService) owned(ctx context.Context, id domain.AuthorizedIdentity, shopID string) (*domain.Shop, error) {
	return ownedShop(ctx, s.repo, id, shopID)
}

func ownedShop(ctx context.Context, repo ports.ShopRepository, id domain.AuthorizedIdentity, shopID string) (*domain.Shop, error) {
	shop, err := repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(shop.MerchantID, id, domain.ErrShopNotFound); err != nil {
		return nil, err
	}
	return shop, nil
}
