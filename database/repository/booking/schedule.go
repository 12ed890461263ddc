package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func (repo *MongoBookingRepo) GetDaySchedule(ctx context.Context, date string) (*models.DaySchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ds models.DaySchedule
	if err := repo.scheduleColl.FindOne(ctx, bson.M{"_id": date}).Decode(&ds); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching schedule for %s: %w", date, err)
	}
	return &ds, nil
}

func (repo *MongoBookingRepo) InsertDaySchedule(ctx context.Context, ds *models.DaySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.scheduleColl.InsertOne(ctx, ds); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("error inserting schedule for %s: %w", ds.Date, err)
	}
	return nil
}

// SwapBookings rewrites the bookings list of a date document only if its
// version still equals the one the caller read. The version filter is what
// serializes concurrent slot allocations for the same date.
func (repo *MongoBookingRepo) SwapBookings(ctx context.Context, date string, version int64, bookings []models.ConfirmedBooking) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.scheduleColl.UpdateOne(ctx,
		bson.M{"_id": date, "version": version},
		bson.M{
			"$set": bson.M{"bookings": bookings},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return false, fmt.Errorf("error swapping bookings for %s: %w", date, err)
	}
	return res.ModifiedCount == 1, nil
}
