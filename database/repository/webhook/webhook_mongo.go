package webhookRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoWebhookLogRepo implements WebhookLogRepository using MongoDB.
type MongoWebhookLogRepo struct {
	logColl *mongo.Collection
}

// NewMongoWebhookLogRepo constructs a new instance of MongoWebhookLogRepo.
func NewMongoWebhookLogRepo() WebhookLogRepository {
	return &MongoWebhookLogRepo{
		logColl: database.DB().Collection("webhook_logs"),
	}
}

func (repo *MongoWebhookLogRepo) FindLog(ctx context.Context, transactionID, eventType string) (*models.WebhookLog, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"transaction_id": transactionID, "event_type": eventType}
	var log models.WebhookLog
	if err := repo.logColl.FindOne(ctx, filter).Decode(&log); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching webhook log: %w", err)
	}
	return &log, nil
}

func (repo *MongoWebhookLogRepo) InsertLog(ctx context.Context, log *models.WebhookLog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.logColl.InsertOne(ctx, log); err != nil {
		return fmt.Errorf("error inserting webhook log %s: %w", log.ID, err)
	}
	return nil
}
