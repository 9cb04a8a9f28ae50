package services

import (
	"context"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
)

// Compile-time checks that the services satisfy the handler-facing interfaces
var (
	_ EventManager       = (*EventService)(nil)
	_ WaitlistManager    = (*WaitlistService)(nil)
	_ LedgerReader       = (*LedgerService)(nil)
	_ NotificationReader = (*NotificationService)(nil)
	_ LotteryRunner      = (*LotteryService)(nil)
)

// EventManager defines event operations
type EventManager interface {
	CreateEvent(ctx context.Context, organizer models.Identity, req *models.CreateEventRequest) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, page, limit int) ([]*models.Event, error)
}

// WaitlistManager defines waitlist operations
type WaitlistManager interface {
	Join(ctx context.Context, eventID, entrantID string) error
	Leave(ctx context.Context, eventID, entrantID string) error
	GetWaitlist(ctx context.Context, eventID string) ([]string, error)
}

// LedgerReader exposes the notification ledger read-only
type LedgerReader interface {
	GetOrCreate(ctx context.Context, eventID string) (*models.NotificationList, error)
}

// NotificationReader lists notification records
type NotificationReader interface {
	ListForEntrant(ctx context.Context, entrantID string, page, limit int) ([]*models.Notification, error)
	ListForEvent(ctx context.Context, eventID string) ([]*models.Notification, error)
}

// LotteryRunner triggers lottery runs and phase retries
type LotteryRunner interface {
	RunLottery(ctx context.Context, req *models.LotteryRequest) (*models.RunReport, error)
	RetryWinnerNotification(ctx context.Context, eventID, eventName string, winners []string) (*models.Notification, error)
	RetryLoserNotification(ctx context.Context, eventID, eventName string, losers []string) (*models.Notification, error)
}
