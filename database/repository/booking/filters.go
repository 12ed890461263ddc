package bookingRepo

import "go.mongodb.org/mongo-driver/bson"

func orderFilter(orderID string) bson.M {
	return bson.M{
		"bookings": bson.M{
			"$elemMatch": bson.M{"order_id": orderID},
		},
	}
}

func phoneFilter(phone string) bson.M {
	return bson.M{
		"bookings": bson.M{
			"$elemMatch": bson.M{"phone": phone},
		},
	}
}
