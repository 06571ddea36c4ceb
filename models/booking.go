package models

import "time"

// Booking status values. pending -> confirmed/cancelled,
// confirmed -> completed/cancelled/no_show; the last three are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
	StatusNoShow    = "no_show"
)

// ActiveStatuses are the statuses that hold a slot and count against
// admission caps.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

// Booking is a reservation of one slot. Exactly one of ClientID or the
// GuestName/GuestPhone pair is populated. SlotKey is present iff the status
// is pending or confirmed; cancelling clears it, which re-opens the slot.
// Bookings are never physically deleted.
type Booking struct {
	ID              string    `bson:"id" json:"id"`
	BarberID        string    `bson:"barberId" json:"barberId"`
	ClientID        string    `bson:"clientId,omitempty" json:"clientId,omitempty"`
	GuestName       string    `bson:"guestName,omitempty" json:"guestName,omitempty"`
	GuestPhone      string    `bson:"guestPhone,omitempty" json:"guestPhone,omitempty"`
	ServiceID       string    `bson:"serviceId" json:"serviceId"`
	ServiceName     string    `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
	DurationMinutes int       `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Price           float64   `bson:"price,omitempty" json:"price,omitempty"`
	Date            string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time            string    `bson:"time" json:"time"` // "HH:mm"
	Status          string    `bson:"status" json:"status"`
	SlotKey         string    `bson:"slotKey,omitempty" json:"-"`
	Comment         string    `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
}

// IsGuest reports whether the booking was made on the guest path.
func (b *Booking) IsGuest() bool {
	return b.ClientID == ""
}

// BookingRequest is the wire payload for POST /bookings. Caller identity is
// taken from the verified token when present; the guest fields are only
// consulted on the guest path.
type BookingRequest struct {
	BarberID   string `json:"barberId"`
	ServiceID  string `json:"serviceId"`
	Date       string `json:"date"` // "YYYY-MM-DD"
	Time       string `json:"time"` // "HH:mm"
	GuestName  string `json:"guestName,omitempty"`
	GuestPhone string `json:"guestPhone,omitempty"`
	AsGuest    bool   `json:"asGuest,omitempty"`
	Comment    string `json:"comment,omitempty"`
}

// StatusUpdateRequest is the wire payload for PATCH /bookings/:id.
type StatusUpdateRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
}

// PublicBooking is the PII-reduced view returned to non-owners
// (the read path barbershop calendars are built from).
type PublicBooking struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
}

// ToPublicBooking strips client identity from a booking.
func ToPublicBooking(b Booking) PublicBooking {
	return PublicBooking{
		ID:              b.ID,
		Date:            b.Date,
		Time:            b.Time,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
	}
}

// BookingEvent is the lifecycle event pushed, best effort, to the barber's
// live dashboard channel.
type BookingEvent struct {
	Type      string    `json:"type"` // "created", "status_changed"
	BookingID string    `json:"bookingId"`
	BarberID  string    `json:"barberId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	At        time.Time `json:"at"`
}
