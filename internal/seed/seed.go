// Package seed builds the demo class schedule the service starts with.
package seed

import (
	"time"

	"fitbooker/pkg/model"
)

type classTemplate struct {
	name       string
	instructor string
	capacity   int
	hours      []int
}

// Daily rotation: morning yoga, afternoon zumba, evening HIIT.
var templates = []classTemplate{
	{name: "Yoga Flow", instructor: "Sarah Johnson", capacity: 20, hours: []int{6, 7, 8}},
	{name: "Zumba Fitness", instructor: "Maria Rodriguez", capacity: 25, hours: []int{14, 15}},
	{name: "HIIT Circuit", instructor: "Mike Chen", capacity: 15, hours: []int{18, 19}},
}

// GenerateSchedule returns classes for the next daysAhead days starting
// tomorrow, with sequential ids from 1. Sessions are one hour long and
// anchored to loc so the schedule lines up with the studio's local day.
func GenerateSchedule(daysAhead int, loc *time.Location, now time.Time) []*model.ClassSession {
	now = now.In(loc)
	firstDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	var classes []*model.ClassSession
	id := int64(1)
	for day := 0; day < daysAhead; day++ {
		date := firstDay.AddDate(0, 0, day)
		for _, tmpl := range templates {
			for _, hour := range tmpl.hours {
				classes = append(classes, &model.ClassSession{
					ID:             id,
					Name:           tmpl.name,
					StartTime:      date.Add(time.Duration(hour) * time.Hour),
					Instructor:     tmpl.instructor,
					AvailableSlots: tmpl.capacity,
					TotalSlots:     tmpl.capacity,
				})
				id++
			}
		}
	}
	return classes
}
