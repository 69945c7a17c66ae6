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

type ShopRepository struct {
	col *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{col: db.Collection(collectionShops)}
}

func (r *ShopRepository) Create(ctx context.Context, s *domain.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

func (r *ShopRepository) FindByID(ctx context.Context, shopID string) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shop
	if err := r.col.FindOne(ctx, bson.M{"_id": shopID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return &s, nil
}

func (r *ShopRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"merchant_id": merchantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	shops := []*domain.Shop{}
	if err := cur.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("decode shops: %w", err)
	}
	return shops, nil
}

func (r *ShopRepository) Update(ctx context.Context, shopID, merchantID string, u domain.ShopUpdate, at time.Time) (*domain.Shop, error) {
	return r.set(ctx, shopID, merchantID, shopUpdateDoc(u, at))
}

func (r *ShopRepository) UpdateStatus(ctx context.Context, shopID, merchantID string, st domain.ShopStatus, at time.Time) (*domain.Shop, error) {
	return r.set(ctx, shopID, merchantID, bson.M{
		"is_open":          st.IsOpen,
		"accepting_orders": st.AcceptingOrders,
		"status_reason":    st.Reason,
		"updated_at":       at,
	})
}

// set applies fields to the shop only when merchantID still owns it.
func (r *ShopRepository) set(ctx context.Context, shopID, merchantID string, fields bson.M) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": shopID, "merchant_id": merchantID}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s domain.Shop
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": fields}, opts).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("update shop: %w", err)
	}
	return &s, nil
}

func shopUpdateDoc(u domain.ShopUpdate, at time.Time) bson.M {
	set := bson.M{"updated_at": at}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Website != nil {
		set["website"] = *u.Website
	}
	if u.OperatingHours != nil {
		set["operating_hours"] = u.OperatingHours
	}
	if u.DeliveryRadius != nil {
		set["delivery_radius"] = *u.DeliveryRadius
	}
	if u.MinimumOrder != nil {
		set["minimum_order"] = *u.MinimumOrder
	}
	if u.DeliveryFee != nil {
		set["delivery_fee"] = *u.DeliveryFee
	}
	return set
}

func (r *ShopRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})
	return err
}
