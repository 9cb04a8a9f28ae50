package models

import "time"

// NotificationList is the per-event ledger of entrants that were invited, are still
// waiting or cancelled. All is invited ∪ waiting.
type NotificationList struct {
	EventID   string    `bson:"eventId" json:"eventId"`
	Invited   []string  `bson:"invited" json:"invited"`
	Waiting   []string  `bson:"waiting" json:"waiting"`
	Cancelled []string  `bson:"cancelled" json:"cancelled"`
	All       []string  `bson:"all" json:"all"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// NewNotificationList returns an empty, unpersisted ledger entry for eventID.
func NewNotificationList(eventID string) *NotificationList {
	return &NotificationList{
		EventID:   eventID,
		Invited:   []string{},
		Waiting:   []string{},
		Cancelled: []string{},
		All:       []string{},
	}
}

// IsInvited reports whether entrantID was selected in any earlier run.
func (l *NotificationList) IsInvited(entrantID string) bool {
	for _, id := range l.Invited {
		if id == entrantID {
			return true
		}
	}
	return false
}
