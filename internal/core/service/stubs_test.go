package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	writes  int   // successful CreateIfAbsent inserts, role and profile updates
	findErr error // if set, FindByID returns this error

	// raceWith, when set, is stored on the first CreateIfAbsent call to
	// simulate another process winning a concurrent first login.
	raceWith *domain.User
	// beforeUpdate runs at the start of UpdateRole to simulate a concurrent
	// writer landing between the read and the write.
	beforeUpdate func(users map[string]*domain.User)
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) CreateIfAbsent(_ context.Context, user *domain.User) (*domain.User, bool, error) {
	if r.raceWith != nil {
		r.users[r.raceWith.ID] = cloneUser(r.raceWith)
		r.raceWith = nil
	}
	if existing, ok := r.users[user.ID]; ok {
		return cloneUser(existing), false, nil
	}
	r.users[user.ID] = cloneUser(user)
	r.writes++
	return cloneUser(user), true, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, from, to domain.Role, at time.Time) (*domain.User, error) {
	if r.beforeUpdate != nil {
		r.beforeUpdate(r.users)
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if u.Role != from {
		return cloneUser(u), nil
	}
	u.Role = to
	u.UpdatedAt = at
	r.writes++
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, p domain.ProfileUpdate, at time.Time) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.DisplayName != nil {
		u.DisplayName = *p.DisplayName
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	u.UpdatedAt = at
	r.writes++
	return cloneUser(u), nil
}

func (r *stubUserRepo) put(u *domain.User) {
	r.users[u.ID] = cloneUser(u)
}

type stubShopRepo struct {
	shops  map[string]*domain.Shop
	writes int
}

func newStubShopRepo() *stubShopRepo {
	return &stubShopRepo{shops: make(map[string]*domain.Shop)}
}

func (r *stubShopRepo) Create(_ context.Context, s *domain.Shop) error {
	clone := *s
	r.shops[s.ID] = &clone
	r.writes++
	return nil
}

func (r *stubShopRepo) FindByID(_ context.Context, shopID string) (*domain.Shop, error) {
	s, ok := r.shops[shopID]
	if !ok {
		return nil, domain.ErrShopNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubShopRepo) ListByMerchant(_ context.Context, merchantID string) ([]*domain.Shop, error) {
	var out []*domain.Shop
	for _, s := range r.shops {
		if s.MerchantID == merchantID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

// owned mirrors the merchant_id filter applied by the real store.
func (r *stubShopRepo) owned(shopID, merchantID string) (*domain.Shop, error) {
	s, ok := r.shops[shopID]
	if !ok || s.MerchantID != merchantID {
		return nil, domain.ErrShopNotFound
	}
	return s, nil
}

func (r *stubShopRepo) Update(_ context.Context, shopID, merchantID string, u domain.ShopUpdate, at time.Time) (*domain.Shop, error) {
	s, err := r.owned(shopID, merchantID)
	if err != nil {
		return nil, err
	}
	if u.Name != nil {
		s.Name = *u.Name
	}
	s.UpdatedAt = at
	r.writes++
	clone := *s
	return &clone, nil
}

func (r *stubShopRepo) UpdateStatus(_ context.Context, shopID, merchantID string, st domain.ShopStatus, at time.Time) (*domain.Shop, error) {
	s, err := r.owned(shopID, merchantID)
	if err != nil {
		return nil, err
	}
	s.IsOpen = st.IsOpen
	s.AcceptingOrders = st.AcceptingOrders
	s.StatusReason = st.Reason
	s.UpdatedAt = at
	r.writes++
	clone := *s
	return &clone, nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
	writes   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	r.writes++
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, productID string) (*domain.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) ListByShop(_ context.Context, shopID string) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range r.products {
		if p.ShopID == shopID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, productID, merchantID string, u domain.ProductUpdate, at time.Time) (*domain.Product, error) {
	p, ok := r.products[productID]
	if !ok || p.MerchantID != merchantID {
		return nil, domain.ErrProductNotFound
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	p.UpdatedAt = at
	r.writes++
	clone := *p
	return &clone, nil
}

type stubOrderRepo struct {
	orders map[string]*domain.Order
	writes int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) FindByID(_ context.Context, orderID string) (*domain.Order, error) {
	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByShop(_ context.Context, shopID string, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool {
		return o.ShopID == shopID && (status == "" || o.Status == status)
	}), nil
}

func (r *stubOrderRepo) ListByMerchant(_ context.Context, merchantID string) ([]*domain.Order, error) {
	return r.list(func(o *domain.Order) bool { return o.MerchantID == merchantID }), nil
}

// list returns matching orders newest first, like the real store.
func (r *stubOrderRepo) list(match func(*domain.Order) bool) []*domain.Order {
	out := []*domain.Order{}
	for _, o := range r.orders {
		if match(o) {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, orderID, merchantID string, from domain.OrderStatus, e domain.StatusHistoryEntry) (*domain.Order, error) {
	o, ok := r.orders[orderID]
	if !ok || o.MerchantID != merchantID {
		return nil, domain.ErrOrderNotFound
	}
	if o.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	o.Status = e.Status
	o.StatusHistory = append(o.StatusHistory, e)
	r.writes++
	clone := *o
	return &clone, nil
}

// ---------------------------------------------------------------------------
// Stub verifier
// ---------------------------------------------------------------------------

type stubVerifier struct {
	profile *domain.ExternalProfile
	err     error
	calls   int
}

func (v *stubVerifier) Verify(_ context.Context, accessToken string) (*domain.ExternalProfile, error) {
	v.calls++
	if v.err != nil {
		return nil, v.err
	}
	if accessToken == "" {
		return nil, errors.New("stub verifier called with empty token")
	}
	p := *v.profile
	return &p, nil
}

var (
	_ ports.UserRepository     = (*stubUserRepo)(nil)
	_ ports.ShopRepository     = (*stubShopRepo)(nil)
	_ ports.ProductRepository  = (*stubProductRepo)(nil)
	_ ports.OrderRepository    = (*stubOrderRepo)(nil)
	_ ports.CredentialVerifier = (*stubVerifier)(nil)
)

func merchant(id string) domain.AuthorizedIdentity {
	return domain.AuthorizedIdentity{UserID: id, Role: domain.RoleMerchant}
}
