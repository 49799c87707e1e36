package model

import (
	"time"
)

// ClassSession is a scheduled, capacity-limited fitness class. Total
// capacity is fixed after creation; only AvailableSlots moves, and only
// through the catalog's decrement/restore operations.
type ClassSession struct {
	ID             int64     `json:"id" validate:"required,gt=0"`
	Name           string    `json:"name" validate:"required,min=1,max=100"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	Instructor     string    `json:"instructor" validate:"required,min=1,max=100"`
	AvailableSlots int       `json:"available_slots" validate:"min=0,ltefield=TotalSlots"`
	TotalSlots     int       `json:"total_slots" validate:"required,min=1"`
}

// ClassAvailability is the availability summary for a single class.
// An unknown class id yields Available=false with an explanatory message
// rather than an error.
type ClassAvailability struct {
	Available      bool       `json:"available"`
	Message        string     `json:"message"`
	AvailableSlots int        `json:"available_slots"`
	TotalSlots     int        `json:"total_slots"`
	ClassName      string     `json:"class_name,omitempty"`
	StartTime      *time.Time `json:"start_time,omitempty"`
}
