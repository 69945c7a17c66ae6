package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

type DashboardService struct {
	shops  ports.ShopRepository
	orders ports.OrderRepository
	log    zerolog.Logger
}

func NewDashboardService(shops ports.ShopRepository, orders ports.OrderRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{shops: shops, orders: orders, log: log}
}

// Summary lists the caller's shops with their most recent orders and
// order statistics. Both queries are keyed by the caller's id, so nothing
// owned by another merchant can appear.
func (s *DashboardService) Summary(ctx context.Context, id domain.AuthorizedIdentity) (*domain.Dashboard, error) {
	shops, err := s.shops.ListByMerchant(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list shops: %w", err)
	}
	orders, err := s.orders.ListByMerchant(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: list orders: %w", err)
	}

	d := domain.Summarize(shops, orders)
	s.log.Debug().
		Str("merchant_id", id.UserID).
		Int("shops", d.Statistics.TotalShops).
		Int("orders", d.Statistics.TotalOrders).
		Msg("dashboard built")
	return &d, nil
}
