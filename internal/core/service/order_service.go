package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

type OrderService struct {
	orders ports.OrderRepository
	shops  ports.ShopRepository
	log    zerolog.Logger
	now    func() time.Time
}

func NewOrderService(orders ports.OrderRepository, shops ports.ShopRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, shops: shops, log: log, now: time.Now}
}

// ListByShop returns the orders placed at a shop the caller owns, optionally
// narrowed to one status.
func (s *OrderService) ListByShop(ctx context.Context, id domain.AuthorizedIdentity, shopID string, status domain.OrderStatus) ([]*domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidRequest, status)
	}
	if _, err := ownedShop(ctx, s.shops, id, shopID); err != nil {
		return nil, err
	}
	orders, err := s.orders.ListByShop(ctx, shopID, status)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order the caller owns along its lifecycle.
func (s *OrderService) UpdateStatus(ctx context.Context, id domain.AuthorizedIdentity, orderID string, in ports.UpdateOrderStatusInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireOwner(order.MerchantID, id, domain.ErrOrderNotFound); err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("update order: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, in.Status)
	}

	entry := domain.StatusHistoryEntry{
		Status:    in.Status,
		Timestamp: s.now().UTC(),
		Notes:     in.MerchantNotes,
	}
	updated, err := s.orders.UpdateStatus(ctx, orderID, id.UserID, order.Status, entry)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.log.Info().
		Str("order_id", orderID).
		Str("from", string(order.Status)).
		Str("to", string(in.Status)).
		Msg("order status changed")
	return updated, nil
}
