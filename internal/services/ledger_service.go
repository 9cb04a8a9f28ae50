package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
)

// LedgerService reads and extends the per-event notification ledger. Entries are never
// removed.
type LedgerService struct {
	ledgerRepo repositories.LedgerRepository
	timeout    time.Duration
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo repositories.LedgerRepository, timeout time.Duration) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, timeout: timeout}
}

// GetOrCreate returns the event's ledger entry, or an empty unpersisted one if none exists.
func (s *LedgerService) GetOrCreate(ctx context.Context, eventID string) (*models.NotificationList, error) {
	const op = "ledger.GetOrCreate"
	if err := validateEventID(op, eventID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	ledger, err := s.ledgerRepo.FindByEventID(ctx, eventID)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.NewNotificationList(eventID), nil
	}
	if err != nil {
		return nil, storageError(op, err)
	}
	return ledger, nil
}

// RecordInvitation unions winners into the ledger's invited and all lists in one atomic
// upsert, creating the entry on first use.
func (s *LedgerService) RecordInvitation(ctx context.Context, eventID string, winners []string) (*models.NotificationList, error) {
	const op = "ledger.RecordInvitation"
	if err := validateEventID(op, eventID); err != nil {
		return nil, err
	}
	if err := validateEntrantIDs(op, winners); err != nil {
		return nil, err
	}
	if len(winners) == 0 {
		return s.GetOrCreate(ctx, eventID)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	ledger, err := s.ledgerRepo.UnionInvited(ctx, eventID, utils.UniqueStrings(winners))
	if err != nil {
		slog.Error("Failed to record invitations", "eventId", eventID, "count", len(winners), "error", err)
		return nil, storageError(op, err)
	}
	slog.Info("Invitations recorded", "eventId", eventID, "added", len(winners), "invitedTotal", len(ledger.Invited))
	return ledger, nil
}
