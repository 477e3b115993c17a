package data

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
)

// PaymentRepo provides document operations over the payments collection.
type PaymentRepo struct {
	col          *mongo.Collection
	timeProvider TimeProvider
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{col: db.Collection("payments"), timeProvider: &RealTimeProvider{}}
}

// Insert records a confirmed payment.
func (r *PaymentRepo) Insert(ctx context.Context, payment model.Payment) (model.Payment, error) {
	payment.CreatedAt = r.timeProvider.Now()
	res, err := r.col.InsertOne(ctx, payment)
	if err != nil {
		return model.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		payment.ID = oid
	}
	return payment, nil
}

// TotalAmount sums every payment amount. No payment documents means zero,
// never an error.
func (r *PaymentRepo) TotalAmount(ctx context.Context) (float64, error) {
	return r.sumAmounts(ctx, bson.D{})
}

// TotalAmountByEmail sums the payment amounts made by one caller.
func (r *PaymentRepo) TotalAmountByEmail(ctx context.Context, email string) (float64, error) {
	return r.sumAmounts(ctx, bson.D{{Key: "paymentBy", Value: email}})
}

func (r *PaymentRepo) sumAmounts(ctx context.Context, match bson.D) (float64, error) {
	cur, err := r.col.Aggregate(ctx, paymentSumPipeline(match))
	if err != nil {
		return 0, fmt.Errorf("aggregate payments: %w", err)
	}

	var rows []struct {
		Sum float64 `bson:"sum"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode payment sum: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Sum, nil
}

func paymentSumPipeline(match bson.D) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: nil},
		{Key: "sum", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
	}}})
}
