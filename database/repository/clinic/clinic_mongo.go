package clinicRepo

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

// MongoClinicControlRepo implements ClinicControlRepository using MongoDB.
type MongoClinicControlRepo struct {
	controlColl *mongo.Collection
}

// NewMongoClinicControlRepo constructs a new instance of MongoClinicControlRepo.
func NewMongoClinicControlRepo() ClinicControlRepository {
	return &MongoClinicControlRepo{
		controlColl: database.DB().Collection("clinic_controls"),
	}
}

func (repo *MongoClinicControlRepo) GetControl(ctx context.Context) (*models.ClinicControl, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var control models.ClinicControl
	filter := bson.M{"_id": models.ClinicControlID}
	if err := repo.controlColl.FindOne(ctx, filter).Decode(&control); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching clinic control: %w", err)
	}
	return &control, nil
}

func (repo *MongoClinicControlRepo) UpsertControl(ctx context.Context, control *models.ClinicControl) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	control.ID = models.ClinicControlID
	filter := bson.M{"_id": models.ClinicControlID}
	opts := options.Replace().SetUpsert(true)
	if _, err := repo.controlColl.ReplaceOne(ctx, filter, control, opts); err != nil {
		return fmt.Errorf("error upserting clinic control: %w", err)
	}
	return nil
}
