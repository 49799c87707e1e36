package model

import (
	"time"
)

// BookingRecord links one client to one class session. Records are
// append-only: the class name and start time are denormalized at booking
// time and never change afterwards, even if the catalog entry does.
type BookingRecord struct {
	ID          int64     `json:"id"`
	ClassID     int64     `json:"class_id"`
	ClassName   string    `json:"class_name"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClassStart  time.Time `json:"class_start_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookingRequest is the client-supplied payload for booking a class.
// The person_name rule restricts names to letters and spaces.
type BookingRequest struct {
	ClassID     int64  `json:"class_id" validate:"required,gt=0"`
	ClientName  string `json:"client_name" validate:"required,min=1,max=100,person_name"`
	ClientEmail string `json:"client_email" validate:"required,email"`
}

// BookingConfirmation is returned to the client on a successful booking.
type BookingConfirmation struct {
	BookingID   int64     `json:"booking_id"`
	ClassName   string    `json:"class_name"`
	ClientName  string    `json:"client_name"`
	ClientEmail string    `json:"client_email"`
	ClassStart  time.Time `json:"class_start_time"`
	Message     string    `json:"message"`
}
