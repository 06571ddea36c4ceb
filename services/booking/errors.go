package booking

import "fmt"

// Stable machine-readable error codes returned to clients.
const (
	CodeInvalidInput        = "InvalidInput"
	CodeNotFound            = "NotFound"
	CodeMismatch            = "Mismatch"
	CodeForbidden           = "Forbidden"
	CodeSubscriptionExpired = "BarberSubscriptionExpired"
	CodeBarberLimitReached  = "BarberLimitReached"
	CodeMaxGuestBookings    = "MaxGuestBookingsReached"
	CodeMaxActiveBookings   = "MaxActiveBookingsReached"
	CodeSlotAlreadyBooked   = "SlotAlreadyBooked"
	CodeStoreUnavailable    = "StoreUnavailable"
)

// Error is a business rule rejection with a stable code for clients.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a coded booking error.
func NewError(code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts a coded booking error, or nil if err is not one.
func AsError(err error) *Error {
	if be, ok := err.(*Error); ok {
		return be
	}
	return nil
}
