package models

import "time"

// Event is an organizer-owned event that entrants join through its waitlist.
// The waitlist lives on the event document as a set of entrant IDs.
type Event struct {
	ID             string    `bson:"_id" json:"id"`
	OrganizerID    string    `bson:"organizer_id" json:"organizerId"`
	Name           string    `bson:"name" json:"name"`
	Capacity       int       `bson:"capacity" json:"capacity"`             // 0 means unbounded waitlist
	EntrantsToDraw int       `bson:"entrants_to_draw" json:"entrantsToDraw"` // default draw size
	SelectionDate  time.Time `bson:"selection_date,omitempty" json:"selectionDate,omitempty"`
	Waitlist       []string  `bson:"waitlist" json:"waitlist"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateEventRequest carries the organizer-supplied fields of a new event.
type CreateEventRequest struct {
	Name           string    `json:"name" binding:"required"`
	Capacity       int       `json:"capacity" binding:"min=0"`
	EntrantsToDraw int       `json:"entrantsToDraw" binding:"min=0"`
	SelectionDate  time.Time `json:"selectionDate"`
}
