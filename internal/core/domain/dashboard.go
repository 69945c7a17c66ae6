package domain

// RecentOrderLimit caps the orders returned on the merchant dashboard.
const RecentOrderLimit = 10

// DashboardStats aggregates a merchant's orders across all of their shops.
// Revenue counts delivered orders only.
type DashboardStats struct {
	TotalOrders   int     `json:"total_orders"`
	PendingOrders int     `json:"pending_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalShops    int     `json:"total_shops"`
}

// Dashboard is the merchant's landing summary.
type Dashboard struct {
	Shops        []*Shop        `json:"shops"`
	RecentOrders []*Order       `json:"recent_orders"`
	Statistics   DashboardStats `json:"statistics"`
}

// Summarize builds the dashboard from a merchant's shops and orders. orders
// must be sorted newest first.
func Summarize(shops []*Shop, orders []*Order) Dashboard {
	stats := DashboardStats{TotalOrders: len(orders), TotalShops: len(shops)}
	for _, o := range orders {
		switch o.Status {
		case OrderPending:
			stats.PendingOrders++
		case OrderDelivered:
			stats.TotalRevenue += o.Total
		}
	}

	recent := orders
	if len(recent) > RecentOrderLimit {
		recent = recent[:RecentOrderLimit]
	}
	if shops == nil {
		shops = []*Shop{}
	}
	if recent == nil {
		recent = []*Order{}
	}
	return Dashboard{Shops: shops, RecentOrders: recent, Statistics: stats}
}
