package repositories

import (
	"context"
	"errors"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
)

// ErrNotFound is returned when the addressed event or ledger entry does not exist.
var ErrNotFound = errors.New("not found")

// ErrWaitlistFull is returned when a join would push a waitlist past the event capacity.
var ErrWaitlistFull = errors.New("waitlist is full")

// EventRepository defines the interface for event data operations
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Event, error)
}

// WaitlistRepository stores the per-event waitlist set. Add and remove are single atomic
// set operations at the storage layer and are idempotent.
type WaitlistRepository interface {
	AddToWaitlist(ctx context.Context, eventID, entrantID string) error
	RemoveFromWaitlist(ctx context.Context, eventID, entrantID string) error
	GetWaitlist(ctx context.Context, eventID string) ([]string, error)
}

// LedgerRepository stores the per-event notification ledger.
type LedgerRepository interface {
	// FindByEventID returns ErrNotFound when no ledger entry exists yet.
	FindByEventID(ctx context.Context, eventID string) (*models.NotificationList, error)
	// UnionInvited adds entrantIDs to invited and all in one atomic upsert and returns the
	// resulting entry.
	UnionInvited(ctx context.Context, eventID string, entrantIDs []string) (*models.NotificationList, error)
}

// NotificationRepository is the durable sink for notification records.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindByEntrant(ctx context.Context, entrantID string, page, limit int) ([]*models.Notification, error)
	FindByEventID(ctx context.Context, eventID string) ([]*models.Notification, error)
}
