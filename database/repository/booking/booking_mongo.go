package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	pendingColl  *mongo.Collection
	scheduleColl *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.DB()
	return &MongoBookingRepo{
		pendingColl:  db.Collection("pending_bookings"),
		scheduleColl: db.Collection("appointments"),
	}
}

func (repo *MongoBookingRepo) InsertPending(ctx context.Context, pb *models.PendingBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.pendingColl.InsertOne(ctx, pb); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting pending booking %s: %w", pb.OrderID, err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetPending(ctx context.Context, orderID string) (*models.PendingBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pb models.PendingBooking
	if err := repo.pendingColl.FindOne(ctx, bson.M{"_id": orderID}).Decode(&pb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching pending booking %s: %w", orderID, err)
	}
	return &pb, nil
}

func (repo *MongoBookingRepo) UpdatePendingStatus(ctx context.Context, orderID, status string, slotNumber int, paymentID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status}
	if slotNumber > 0 {
		set["slot_number"] = slotNumber
	}
	if paymentID != "" {
		set["payment_id"] = paymentID
	}
	res, err := repo.pendingColl.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating pending booking %s: %w", orderID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (repo *MongoBookingRepo) DeletePending(ctx context.Context, orderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.pendingColl.DeleteOne(ctx, bson.M{"_id": orderID}); err != nil {
		return fmt.Errorf("error deleting pending booking %s: %w", orderID, err)
	}
	return nil
}

func (repo *MongoBookingRepo) DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.pendingColl.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending bookings: %w", err)
	}
	return res.DeletedCount, nil
}
