package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/merchant-platform/internal/core/domain"
	"github.com/localmart/merchant-platform/internal/core/ports"
	"github.com/localmart/merchant-platform/internal/pkg/metrics"
)

// Reconciler maps a verified external profile onto the internal user record.
type Reconciler struct {
	repo ports.UserRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewReconciler(repo ports.UserRepository, log zerolog.Logger) *Reconciler {
	return &Reconciler{repo: repo, log: log, now: time.Now}
}

// Reconcile returns the user for profile, creating it with requested on first
// sight. For an existing user only a customer asking for merchant is
// upgraded; other roles are returned untouched. At most one write is made.
func (r *Reconciler) Reconcile(ctx context.Context, profile domain.ExternalProfile, requested domain.Role) (*domain.User, error) {
	if profile.ID == "" {
		return nil, fmt.Errorf("reconcile: %w: profile has no id", domain.ErrInvalidRequest)
	}
	if !requested.Valid() {
		return nil, fmt.Errorf("reconcile: %w: unknown role %q", domain.ErrInvalidRequest, requested)
	}

	existing, err := r.repo.FindByID(ctx, profile.ID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		created, inserted, err := r.create(ctx, profile, requested)
		if err != nil {
			return nil, err
		}
		if inserted {
			return created, nil
		}
		// Lost a concurrent first login; reconcile against the winner.
		existing = created
	case err != nil:
		return nil, fmt.Errorf("reconcile: find user: %w", err)
	}

	next, changed := existing.Role.Reconcile(requested)
	if !changed {
		if existing.Role != requested {
			r.log.Debug().
				Str("user_id", existing.ID).
				Str("role", string(existing.Role)).
				Str("requested_role", string(requested)).
				Msg("role kept")
		}
		return existing, nil
	}

	updated, err := r.repo.UpdateRole(ctx, existing.ID, existing.Role, next, r.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("reconcile: update role: %w", err)
	}
	if updated.Role != next {
		r.log.Info().
			Str("user_id", existing.ID).
			Str("role", string(updated.Role)).
			Str("requested_role", string(requested)).
			Msg("role changed concurrently, upgrade skipped")
		return updated, nil
	}
	metrics.RoleUpgradesTotal.WithLabelValues(string(existing.Role), string(next)).Inc()
	r.log.Info().
		Str("user_id", existing.ID).
		Str("from", string(existing.Role)).
		Str("to", string(next)).
		Msg("user role upgraded")
	return updated, nil
}

func (r *Reconciler) create(ctx context.Context, profile domain.ExternalProfile, role domain.Role) (*domain.User, bool, error) {
	now := r.now().UTC()
	user := &domain.User{
		ID:           profile.ID,
		Email:        profile.Email,
		DisplayName:  profile.Name,
		ProfileImage: profile.Picture,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	stored, inserted, err := r.repo.CreateIfAbsent(ctx, user)
	if err != nil {
		return nil, false, fmt.Errorf("reconcile: create user: %w", err)
	}
	if inserted {
		metrics.UsersCreatedTotal.WithLabelValues(string(role)).Inc()
		r.log.Info().Str("user_id", stored.ID).Str("role", string(role)).Msg("user created")
	}
	return stored, inserted, nil
}
