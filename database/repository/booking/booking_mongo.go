package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barberbook/config"
	"barberbook/database"
	"barberbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrSlotTaken is returned when the unique slotKey index rejects an
	// insert: another non-cancelled booking already holds the slot.
	ErrSlotTaken = errors.New("slot already booked")
	// ErrNotFound is returned when a booking does not exist.
	ErrNotFound = errors.New("booking not found")
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() *MongoBookingRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoBookingRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: failed to ensure booking indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new booking document. The partial unique index on
// slotKey makes this the authoritative write for slot exclusivity: under
// concurrent submissions for the same slot, whichever insert the store
// accepts first wins and the rest see ErrSlotTaken.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctxTimeout, booking); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctxTimeout, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching booking with id %s: %w", bookingID, err)
	}
	return &booking, nil
}

// ActiveSlotExists reports whether a non-cancelled booking currently holds
// the given slotKey. Cancelled bookings have their slotKey cleared, so
// matching on the key alone is sufficient.
func (repo *MongoBookingRepo) ActiveSlotExists(ctx context.Context, slotKey string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctxTimeout, bson.M{"slotKey": slotKey})
	if err != nil {
		return false, fmt.Errorf("error checking slot %s: %w", slotKey, err)
	}
	return count > 0, nil
}

// ListByBarberDay returns all non-cancelled bookings for a barber on a
// given date, ordered by start time.
func (repo *MongoBookingRepo) ListByBarberDay(ctx context.Context, barberID, date string) ([]models.Booking, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"barberId": barberID,
		"date":     date,
		"status":   bson.M{"$ne": models.StatusCancelled},
	}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := repo.coll.Find(ctxTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for barber %s on %s: %w", barberID, date, err)
	}
	defer cursor.Close(ctxTimeout)

	return decodeBookings(ctxTimeout, cursor)
}

// ListByClient returns all bookings made by a registered client, newest first.
func (repo *MongoBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})
	cursor, err := repo.coll.Find(ctxTimeout, bson.M{"clientId": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctxTimeout)

	return decodeBookings(ctxTimeout, cursor)
}

// CountActiveByClient counts a registered client's pending/confirmed bookings.
func (repo *MongoBookingRepo) CountActiveByClient(ctx context.Context, clientID string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"clientId": clientID,
		"status":   bson.M{"$in": models.ActiveStatuses},
	}
	count, err := repo.coll.CountDocuments(ctxTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting active bookings for client %s: %w", clientID, err)
	}
	return count, nil
}

// CountActiveByGuestPhone counts a guest phone's pending/confirmed bookings
// dated fromDate or later.
func (repo *MongoBookingRepo) CountActiveByGuestPhone(ctx context.Context, guestPhone, fromDate string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"guestPhone": guestPhone,
		"status":     bson.M{"$in": models.ActiveStatuses},
		"date":       bson.M{"$gte": fromDate},
	}
	count, err := repo.coll.CountDocuments(ctxTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting guest bookings for %s: %w", guestPhone, err)
	}
	return count, nil
}

// CountByBarberBetween counts a barber's bookings with fromDate <= date < toDate,
// cancelled included; cancelled bookings still consumed a plan-quota attempt.
func (repo *MongoBookingRepo) CountByBarberBetween(ctx context.Context, barberID, fromDate, toDate string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"barberId": barberID,
		"date":     bson.M{"$gte": fromDate, "$lt": toDate},
	}
	count, err := repo.coll.CountDocuments(ctxTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings for barber %s: %w", barberID, err)
	}
	return count, nil
}

// UpdateStatus moves the booking's status and sets an optional comment.
// The filter matches on the expected current status, making the transition
// a compare-and-swap: a racing update that already moved the status leaves
// this one matching nothing. Moving into cancelled also unsets slotKey in
// the same update, so the release of the slot and the status change are
// atomic.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID, fromStatus, toStatus, comment string) (*models.Booking, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": toStatus}
	if comment != "" {
		set["comment"] = comment
	}
	update := bson.M{"$set": set}
	if toStatus == models.StatusCancelled {
		update["$unset"] = bson.M{"slotKey": ""}
	}

	res := repo.coll.FindOneAndUpdate(ctxTimeout,
		bson.M{"id": bookingID, "status": fromStatus},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var updated models.Booking
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	return &updated, nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]models.Booking, error) {
	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}
