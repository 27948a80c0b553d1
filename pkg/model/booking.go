package model

import (
	"time"
)

// Booking is an email reservation against an Event. EventID is a weak
// reference: existence is checked at write time, but deleting the event does
// not cascade into its bookings.
type Booking struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	EventID          string    `json:"event_id" bson:"event_id" validate:"required,mongodb"`
	Email            string    `json:"email" bson:"email" validate:"required,notblank"`
	ConfirmationCode string    `json:"confirmation_code,omitempty" bson:"confirmation_code,omitempty"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// BookingUpdate carries a partial edit. The event reference is re-checked for
// existence only when EventID is set and differs from the stored one.
type BookingUpdate struct {
	EventID *string `json:"event_id,omitempty" validate:"omitempty,mongodb"`
	Email   *string `json:"email,omitempty" validate:"omitempty,notblank"`
}
