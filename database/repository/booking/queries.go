package bookingRepo

import (
	"context"
	"time"

	"medibook/models"
)

func (repo *MongoBookingRepo) CountConfirmed(ctx context.Context, date string) (int, error) {
	ds, err := repo.GetDaySchedule(ctx, date)
	if err != nil {
		if err == ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	return len(ds.Bookings), nil
}

func (repo *MongoBookingRepo) FindConfirmedByOrder(ctx context.Context, orderID string) (*models.ConfirmedBooking, string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.scheduleColl.Find(ctx, orderFilter(orderID))
	if err != nil {
		return nil, "", err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var ds models.DaySchedule
		if err := cursor.Decode(&ds); err != nil {
			return nil, "", err
		}
		for i := range ds.Bookings {
			if ds.Bookings[i].OrderID == orderID {
				return &ds.Bookings[i], ds.Date, nil
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, "", err
	}
	return nil, "", ErrNotFound
}

func (repo *MongoBookingRepo) SearchConfirmed(ctx context.Context, phone, date string) ([]models.ConfirmedBooking, error) {
	if date != "" {
		bookings, err := repo.ListConfirmed(ctx, date)
		if err != nil {
			return nil, err
		}
		return filterByPhone(bookings, phone), nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.scheduleColl.Find(ctx, phoneFilter(phone))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var matches []models.ConfirmedBooking
	for cursor.Next(ctx) {
		var ds models.DaySchedule
		if err := cursor.Decode(&ds); err != nil {
			return nil, err
		}
		matches = append(matches, filterByPhone(ds.Bookings, phone)...)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (repo *MongoBookingRepo) ListConfirmed(ctx context.Context, date string) ([]models.ConfirmedBooking, error) {
	ds, err := repo.GetDaySchedule(ctx, date)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return ds.Bookings, nil
}

func filterByPhone(bookings []models.ConfirmedBooking, phone string) []models.ConfirmedBooking {
	var out []models.ConfirmedBooking
	for _, b := range bookings {
		if b.Phone == phone {
			out = append(out, b)
		}
	}
	return out
}
