package models

import "time"

// Roles carried in the auth token.
const (
	RoleClient = "client"
	RoleBarber = "barber"
)

// User is a registered account. Barbers have Role "barber" and a matching
// Barber profile with the same ID.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Phone        string    `bson:"phone" json:"phone"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
