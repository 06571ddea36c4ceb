package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the bookings collection.
// The partial unique index on slotKey is the correctness anchor for slot
// exclusivity: only documents that carry a slotKey (pending/confirmed)
// participate, so cancelled bookings never block a re-booking.
func (repo *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "slotKey", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_slot_key").
				SetPartialFilterExpression(bson.M{"slotKey": bson.M{"$exists": true}}),
		},
		{
			Keys:    bson.D{{Key: "barberId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("barber_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("client_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "guestPhone", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("guest_status_idx"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
