package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/localmart/merchant-platform/internal/core/domain"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": orderID}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) ListByShop(ctx context.Context, shopID string, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.list(ctx, orderListFilter(shopID, status))
}

func (r *OrderRepository) ListByMerchant(ctx context.Context, merchantID string) ([]*domain.Order, error) {
	return r.list(ctx, bson.M{"merchant_id": merchantID})
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := []*domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func orderListFilter(shopID string, status domain.OrderStatus) bson.M {
	filter := bson.M{"shop_id": shopID}
	if status != "" {
		filter["status"] = status
	}
	return filter
}

// UpdateStatus sets the status and appends the history entry in one write.
// The filter pins the owner and the expected current status; a miss means
// the order changed underneath the caller.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID, merchantID string, from domain.OrderStatus, e domain.StatusHistoryEntry) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": orderID, "merchant_id": merchantID, "status": from}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o domain.Order
	if err := r.col.FindOneAndUpdate(ctx, filter, orderStatusUpdate(e), opts).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: order %s is no longer %s", domain.ErrInvalidTransition, orderID, from)
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &o, nil
}

func orderStatusUpdate(e domain.StatusHistoryEntry) bson.M {
	set := bson.M{"status": e.Status, "updated_at": e.Timestamp}
	if e.Notes != "" {
		set["merchant_notes"] = e.Notes
	}
	return bson.M{
		"$set":  set,
		"$push": bson.M{"status_history": e},
	}
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "merchant_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
	})
	return err
}

