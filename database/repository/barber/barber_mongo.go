package barberRepo

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
)

// ErrNotFound is returned when a barber or service does not exist.
var ErrNotFound = errors.New("not found")

// MongoBarberRepo implements BarberRepository using MongoDB.
type MongoBarberRepo struct {
	barberColl  *mongo.Collection
	serviceColl *mongo.Collection
}

// NewMongoBarberRepo constructs a new instance of MongoBarberRepo.
func NewMongoBarberRepo() *MongoBarberRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoBarberRepo{
		barberColl:  db.Collection("barbers"),
		serviceColl: db.Collection("services"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: failed to ensure barber indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new barber profile document.
func (repo *MongoBarberRepo) Create(ctx context.Context, barber *models.Barber) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.barberColl.InsertOne(ctxTimeout, barber); err != nil {
		return fmt.Errorf("error creating barber: %w", err)
	}
	return nil
}

// GetByID retrieves a barber profile by ID.
func (repo *MongoBarberRepo) GetByID(ctx context.Context, barberID string) (*models.Barber, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var barber models.Barber
	if err := repo.barberColl.FindOne(ctxTimeout, bson.M{"id": barberID}).Decode(&barber); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching barber with id %s: %w", barberID, err)
	}
	return &barber, nil
}

// UpdateSchedule replaces a barber's weekly schedule and blackout dates.
func (repo *MongoBarberRepo) UpdateSchedule(ctx context.Context, barberID string, schedule models.WeeklySchedule, blackoutDates []string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"schedule": schedule, "blackoutDates": blackoutDates}}
	res, err := repo.barberColl.UpdateOne(ctxTimeout, bson.M{"id": barberID}, update)
	if err != nil {
		return fmt.Errorf("error updating schedule for barber %s: %w", barberID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSubscription replaces a barber's subscription state.
func (repo *MongoBarberRepo) UpdateSubscription(ctx context.Context, barberID string, sub models.Subscription) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.barberColl.UpdateOne(ctxTimeout, bson.M{"id": barberID}, bson.M{"$set": bson.M{"subscription": sub}})
	if err != nil {
		return fmt.Errorf("error updating subscription for barber %s: %w", barberID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateService inserts a new service menu entry.
func (repo *MongoBarberRepo) CreateService(ctx context.Context, svc *models.Service) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.serviceColl.InsertOne(ctxTimeout, svc); err != nil {
		return fmt.Errorf("error creating service: %w", err)
	}
	return nil
}

// GetServiceByID retrieves a service by ID.
func (repo *MongoBarberRepo) GetServiceByID(ctx context.Context, serviceID string) (*models.Service, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := repo.serviceColl.FindOne(ctxTimeout, bson.M{"id": serviceID}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service with id %s: %w", serviceID, err)
	}
	return &svc, nil
}

// ListServices returns all services on a barber's menu.
func (repo *MongoBarberRepo) ListServices(ctx context.Context, barberID string) ([]models.Service, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.serviceColl.Find(ctxTimeout, bson.M{"barberId": barberID})
	if err != nil {
		return nil, fmt.Errorf("error listing services for barber %s: %w", barberID, err)
	}
	defer cursor.Close(ctxTimeout)

	var services []models.Service
	for cursor.Next(ctxTimeout) {
		var svc models.Service
		if err := cursor.Decode(&svc); err != nil {
			return nil, fmt.Errorf("error decoding service: %w", err)
		}
		services = append(services, svc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return services, nil
}
