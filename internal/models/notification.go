package models

import (
	"time"
)

// Notification types written by the lottery.
const (
	NotificationTypeLotteryWin  = "lottery_win"
	NotificationTypeLotteryLost = "lottery_lost"
)

// SystemSender tags notifications produced by the system rather than a person.
const SystemSender = "System"

// Notification is a fan-out message about a lottery outcome. One record covers every
// recipient of the same outcome and is never modified after it is created.
type Notification struct {
	ID         string    `bson:"_id,omitempty" json:"id,omitempty"`
	DateMade   time.Time `bson:"dateMade" json:"dateMade"`
	EventID    string    `bson:"eventId" json:"eventId"`
	EventName  string    `bson:"event" json:"event"`
	From       string    `bson:"from" json:"from"`
	Message    string    `bson:"message" json:"message"`
	Type       string    `bson:"type" json:"type"` // lottery_win, lottery_lost
	Recipients []string  `bson:"uID" json:"uID"`
}
