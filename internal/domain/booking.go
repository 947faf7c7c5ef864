package domain

import (
	"errors"
	"time"
)

// DateLayout is the calendar-date format bookings carry on the wire.
const DateLayout = "2006-01-02"

var (
	ErrMalformedDate    = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("check_out must be after check_in")
)

// Booking is a guest reservation against a homestay. Collection:
// "booking". homestay_id is advisory — referential integrity is not
// enforced here. Dates stay strings at the schema level; ordering is a
// cross-field rule checked by Dates after validation.
type Booking struct {
	HomestayID string `json:"homestay_id" bson:"homestay_id" validate:"required"`
	GuestName  string `json:"guest_name" bson:"guest_name" validate:"required"`
	GuestEmail string `json:"guest_email" bson:"guest_email" validate:"required,email"`
	Guests     *int   `json:"guests" bson:"guests" validate:"required,gte=1,lte=20"`
	CheckIn    string `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" bson:"check_out" validate:"required"`
	Notes      string `json:"notes" bson:"notes"`
}

// Dates parses check_in/check_out and enforces the ordering rule:
// ErrMalformedDate when either string is not a calendar date,
// ErrInvalidDateRange when check_out is not strictly after check_in.
func (b *Booking) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(DateLayout, b.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedDate
	}
	checkOut, err = time.Parse(DateLayout, b.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrMalformedDate
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
	return checkIn, checkOut, nil
}
