package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

// UserRepository implements ports.UserRepository. Documents are keyed by the
// provider subject id.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

// CreateIfAbsent upserts on _id with $setOnInsert, so two concurrent first
// logins produce one document. The pre-image tells the caller who won: no
// document before the upsert means this call inserted it.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$setOnInsert": bson.M{
		"email":         user.Email,
		"display_name":  user.DisplayName,
		"profile_image": user.ProfileImage,
		"role":          user.Role,
		"is_active":     user.IsActive,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.Before)

	var existing domain.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": user.ID}, update, opts).Decode(&existing)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		created := *user
		return &created, true, nil
	case err != nil:
		return nil, false, fmt.Errorf("upsert user: %w", err)
	}
	return &existing, false, nil
}

// UpdateRole is a compare-and-set on the stored role. A miss re-reads the
// user, so a concurrent change (e.g. to admin) wins over this upgrade.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, from, to domain.Role, at time.Time) (*domain.User, error) {
	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"role": to, "updated_at": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u domain.User
	err := r.col.FindOneAndUpdate(updateCtx, roleChangeFilter(id, from), update, opts).Decode(&u)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return r.FindByID(ctx, id)
	case err != nil:
		return nil, fmt.Errorf("update user role: %w", err)
	}
	return &u, nil
}

func roleChangeFilter(id string, from domain.Role) bson.M {
	return bson.M{"_id": id, "role": from}
}

// UpdateProfile applies the set fields of u and returns the updated record.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, u domain.ProfileUpdate, at time.Time) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": profileUpdateDoc(u, at)}, opts).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return &user, nil
}

func profileUpdateDoc(u domain.ProfileUpdate, at time.Time) bson.M {
	set := bson.M{"updated_at": at}
	if u.DisplayName != nil {
		set["display_name"] = *u.DisplayName
	}
	if u.ProfileImage != nil {
		set["profile_image"] = *u.ProfileImage
	}
	return set
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}})
	return err
}
