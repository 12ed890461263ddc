package refundRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRefundRepo implements RefundRepository using MongoDB.
type MongoRefundRepo struct {
	refundColl *mongo.Collection
	failedColl *mongo.Collection
}

// NewMongoRefundRepo constructs a new instance of MongoRefundRepo.
func NewMongoRefundRepo() RefundRepository {
	db := database.DB()
	return &MongoRefundRepo{
		refundColl: db.Collection("refunds"),
		failedColl: db.Collection("failed_refunds"),
	}
}

func (repo *MongoRefundRepo) InsertRefund(ctx context.Context, rec *models.RefundRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.refundColl.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("error inserting refund record %s: %w", rec.RefundID, err)
	}
	return nil
}

func (repo *MongoRefundRepo) GetRefund(ctx context.Context, refundID string) (*models.RefundRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.RefundRecord
	if err := repo.refundColl.FindOne(ctx, bson.M{"_id": refundID}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching refund record %s: %w", refundID, err)
	}
	return &rec, nil
}

func (repo *MongoRefundRepo) GetRefundByOrder(ctx context.Context, orderID string) (*models.RefundRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec models.RefundRecord
	if err := repo.refundColl.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching refund for order %s: %w", orderID, err)
	}
	return &rec, nil
}

func (repo *MongoRefundRepo) UpdateRefundStatus(ctx context.Context, refundID, status string, completedAt *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status}
	if completedAt != nil {
		set["completed_at"] = *completedAt
	}
	res, err := repo.refundColl.UpdateOne(ctx, bson.M{"_id": refundID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating refund record %s: %w", refundID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoRefundRepo) InsertFailedRefund(ctx context.Context, rec *models.FailedRefundRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.failedColl.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("error inserting failed refund record %s: %w", rec.ID, err)
	}
	return nil
}

func (repo *MongoRefundRepo) ListFailedRefunds(ctx context.Context) ([]models.FailedRefundRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := repo.failedColl.Find(ctx, bson.M{"status": models.RefundStatusManualRequired}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing failed refunds: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.FailedRefundRecord
	for cursor.Next(ctx) {
		var rec models.FailedRefundRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("error decoding failed refund: %w", err)
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return records, nil
}
