package models

import "time"

// Service is a bookable menu entry owned by a barber (e.g. "Fade", 45 min).
type Service struct {
	ID              string    `bson:"id" json:"id"`
	BarberID        string    `bson:"barberId" json:"barberId"`
	Name            string    `bson:"name" json:"name"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64   `bson:"price" json:"price"`
	Currency        string    `bson:"currency,omitempty" json:"currency,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}
