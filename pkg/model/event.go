package model

import (
	"time"
)

// Event is a published public event. Slug is derived from Title and unique
// across the collection; Date and Time are stored canonically as YYYY-MM-DD
// and HH:MM.
type Event struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string    `json:"title" bson:"title" validate:"required,notblank"`
	Slug        string    `json:"slug,omitempty" bson:"slug,omitempty" validate:"omitempty"`
	Description string    `json:"description" bson:"description" validate:"required,notblank"`
	Overview    string    `json:"overview" bson:"overview" validate:"required,notblank"`
	Image       string    `json:"image" bson:"image" validate:"required,notblank"`
	Venue       string    `json:"venue" bson:"venue" validate:"required,notblank"`
	Location    string    `json:"location" bson:"location" validate:"required,notblank"`
	Date        string    `json:"date" bson:"date" validate:"required,notblank"`
	Time        string    `json:"time" bson:"time" validate:"required,notblank"`
	Mode        string    `json:"mode" bson:"mode" validate:"required,notblank"`
	Audience    string    `json:"audience" bson:"audience" validate:"required,notblank"`
	Agenda      []string  `json:"agenda" bson:"agenda" validate:"required,min=1,dive,notblank"`
	Organizer   string    `json:"organizer" bson:"organizer" validate:"required,notblank"`
	Tags        []string  `json:"tags" bson:"tags" validate:"required,min=1,dive,notblank"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}

// EventUpdate carries a partial edit. Nil fields are untouched; the slug is
// regenerated only when Title is set and differs from the stored one.
type EventUpdate struct {
	Title       *string   `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string   `json:"description,omitempty" validate:"omitempty,notblank"`
	Overview    *string   `json:"overview,omitempty" validate:"omitempty,notblank"`
	Image       *string   `json:"image,omitempty" validate:"omitempty,notblank"`
	Venue       *string   `json:"venue,omitempty" validate:"omitempty,notblank"`
	Location    *string   `json:"location,omitempty" validate:"omitempty,notblank"`
	Date        *string   `json:"date,omitempty" validate:"omitempty,notblank"`
	Time        *string   `json:"time,omitempty" validate:"omitempty,notblank"`
	Mode        *string   `json:"mode,omitempty" validate:"omitempty,notblank"`
	Audience    *string   `json:"audience,omitempty" validate:"omitempty,notblank"`
	Agenda      *[]string `json:"agenda,omitempty" validate:"omitempty,min=1,dive,notblank"`
	Organizer   *string   `json:"organizer,omitempty" validate:"omitempty,notblank"`
	Tags        *[]string `json:"tags,omitempty" validate:"omitempty,min=1,dive,notblank"`
}
