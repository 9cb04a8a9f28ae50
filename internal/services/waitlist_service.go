package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
)

// WaitlistService handles joining and leaving event waitlists.
type WaitlistService struct {
	waitlistRepo repositories.WaitlistRepository
	timeout      time.Duration
}

// NewWaitlistService creates a new WaitlistService. Each store call is bounded by timeout.
func NewWaitlistService(waitlistRepo repositories.WaitlistRepository, timeout time.Duration) *WaitlistService {
	return &WaitlistService{waitlistRepo: waitlistRepo, timeout: timeout}
}

// Join adds entrantID to the event's waitlist. Joining twice is a no-op.
func (s *WaitlistService) Join(ctx context.Context, eventID, entrantID string) error {
	const op = "waitlist.Join"
	if err := validateEventID(op, eventID); err != nil {
		return err
	}
	if err := validateEntrantID(op, entrantID); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.waitlistRepo.AddToWaitlist(ctx, eventID, entrantID); err != nil {
		slog.Warn("Failed to join waitlist", "eventId", eventID, "entrantId", utils.MaskID(entrantID), "error", err)
		return storageError(op, err)
	}
	slog.Info("Entrant joined waitlist", "eventId", eventID, "entrantId", utils.MaskID(entrantID))
	return nil
}

// Leave removes entrantID from the event's waitlist. Leaving when absent is a no-op.
func (s *WaitlistService) Leave(ctx context.Context, eventID, entrantID string) error {
	const op = "waitlist.Leave"
	if err := validateEventID(op, eventID); err != nil {
		return err
	}
	if err := validateEntrantID(op, entrantID); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.waitlistRepo.RemoveFromWaitlist(ctx, eventID, entrantID); err != nil {
		slog.Warn("Failed to leave waitlist", "eventId", eventID, "entrantId", utils.MaskID(entrantID), "error", err)
		return storageError(op, err)
	}
	slog.Info("Entrant left waitlist", "eventId", eventID, "entrantId", utils.MaskID(entrantID))
	return nil
}

// GetWaitlist returns a snapshot of the event's waitlist; it may be empty.
func (s *WaitlistService) GetWaitlist(ctx context.Context, eventID string) ([]string, error) {
	const op = "waitlist.GetWaitlist"
	if err := validateEventID(op, eventID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	waitlist, err := s.waitlistRepo.GetWaitlist(ctx, eventID)
	if err != nil {
		return nil, storageError(op, err)
	}
	if waitlist == nil {
		waitlist = []string{}
	}
	return waitlist, nil
}

// withTimeout bounds ctx by d when d is positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
