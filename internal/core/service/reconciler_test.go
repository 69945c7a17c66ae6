package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

var testProfile = domain.ExternalProfile{
	ID:      "google-108",
	Email:   "ana@example.com",
	Name:    "Ana Merchant",
	Picture: "https://example.com/ana.png",
}

func TestReconciler_CreatesUserOnFirstSight(t *testing.T) {
	repo := newStubUserRepo()
	r := NewReconciler(repo, zerolog.Nop())

	user, err := r.Reconcile(context.Background(), testProfile, domain.RoleMerchant)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if user.ID != testProfile.ID || user.Email != testProfile.Email || user.DisplayName != testProfile.Name {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.ProfileImage != testProfile.Picture {
		t.Fatalf("profile image not copied: %q", user.ProfileImage)
	}
	if user.Role != domain.RoleMerchant || !user.IsActive {
		t.Fatalf("expected active merchant, got role=%s active=%v", user.Role, user.IsActive)
	}
	if user.CreatedAt.IsZero() || !user.CreatedAt.Equal(user.UpdatedAt) {
		t.Fatalf("timestamps not set: %+v", user)
	}
	if repo.writes != 1 {
		t.Fatalf("expected 1 write, got %d", repo.writes)
	}
}

func TestReconciler_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	r := NewReconciler(repo, zerolog.Nop())

	first, err := r.Reconcile(context.Background(), testProfile, domain.RoleMerchant)
	if err != nil {
		t.Fatalf("first Reconcile: %v", err)
	}
	second, err := r.Reconcile(context.Background(), testProfile, domain.RoleMerchant)
	if err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}

	if first.Role != second.Role {
		t.Fatalf("role changed between calls: %s -> %s", first.Role, second.Role)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single user, got %d", len(repo.users))
	}
	if repo.writes != 1 {
		t.Fatalf("expected exactly one write across both calls, got %d", repo.writes)
	}
}

func TestReconciler_RolePrecedence(t *testing.T) {
	tests := []struct {
		name       string
		existing   domain.Role
		requested  domain.Role
		want       domain.Role
		wantWrites int
	}{
		{"customer upgraded to merchant", domain.RoleCustomer, domain.RoleMerchant, domain.RoleMerchant, 1},
		{"merchant not downgraded", domain.RoleMerchant, domain.RoleCustomer, domain.RoleMerchant, 0},
		{"admin kept on merchant login", domain.RoleAdmin, domain.RoleMerchant, domain.RoleAdmin, 0},
		{"admin kept on customer login", domain.RoleAdmin, domain.RoleCustomer, domain.RoleAdmin, 0},
		{"matching role untouched", domain.RoleMerchant, domain.RoleMerchant, domain.RoleMerchant, 0},
		{"customer not promoted to admin", domain.RoleCustomer, domain.RoleAdmin, domain.RoleCustomer, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubUserRepo()
			created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			repo.put(&domain.User{ID: testProfile.ID, Email: testProfile.Email, Role: tt.existing, IsActive: true, CreatedAt: created, UpdatedAt: created})
			r := NewReconciler(repo, zerolog.Nop())

			user, err := r.Reconcile(context.Background(), testProfile, tt.requested)
			if err != nil {
				t.Fatalf("Reconcile: %v", err)
			}
			if user.Role != tt.want {
				t.Fatalf("role = %s, want %s", user.Role, tt.want)
			}
			if repo.writes != tt.wantWrites {
				t.Fatalf("writes = %d, want %d", repo.writes, tt.wantWrites)
			}
			if tt.wantWrites == 1 && !user.UpdatedAt.After(created) {
				t.Fatalf("updated_at not advanced on upgrade")
			}
		})
	}
}

func TestReconciler_ConcurrentFirstLogin(t *testing.T) {
	repo := newStubUserRepo()
	repo.raceWith = &domain.User{ID: testProfile.ID, Email: testProfile.Email, Role: domain.RoleCustomer, IsActive: true}
	r := NewReconciler(repo, zerolog.Nop())

	user, err := r.Reconcile(context.Background(), testProfile, domain.RoleMerchant)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected a single user, got %d", len(repo.users))
	}
	if user.Role != domain.RoleMerchant {
		t.Fatalf("expected winner's customer role to be upgraded, got %s", user.Role)
	}
	if repo.writes != 1 {
		t.Fatalf("expected only the role update write, got %d", repo.writes)
	}
}

func TestReconciler_Validation(t *testing.T) {
	r := NewReconciler(newStubUserRepo(), zerolog.Nop())

	if _, err := r.Reconcile(context.Background(), domain.ExternalProfile{Email: "x@example.com"}, domain.RoleMerchant); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for missing id, got %v", err)
	}
	if _, err := r.Reconcile(context.Background(), testProfile, "owner"); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for unknown role, got %v", err)
	}
}

func TestReconciler_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	boom := errors.New("connection reset")
	repo.findErr = boom
	r := NewReconciler(repo, zerolog.Nop())

	if _, err := r.Reconcile(context.Background(), testProfile, domain.RoleMerchant); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
	if repo.writes != 0 {
		t.Fatalf("expected no writes, got %d", repo.writes)
	}
}

func TestReconciler_ConcurrentRoleChangeIsNotOverwritten(t *testing.T) {
	repo := newStubUserRepo()
	repo.put(&domain.User{ID: testProfile.ID, Email: testProfile.Email, Role: domain.RoleCustomer, IsActive: true})
	repo.beforeUpdate = func(users map[string]*domain.User) {
		users[testProfile.ID].Role = domain.RoleAdmin
	}
	r := NewReconciler(repo, zerolog.Nop())

	user, err := r.Reconcile(context.Background(), testProfile, domain.RoleMerchant)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected concurrent admin role to survive, got %s", user.Role)
	}
	if repo.users[testProfile.ID].Role != domain.RoleAdmin {
		t.Fatalf("stored role downgraded to %s", repo.users[testProfile.ID].Role)
	}
	if repo.writes != 0 {
		t.Fatalf("expected no write, got %d", repo.writes)
	}
}
