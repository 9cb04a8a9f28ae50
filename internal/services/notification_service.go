package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
)

// Fixed message texts of lottery notifications.
const (
	LotteryWinMessage  = "🎉 Congratulations! You've been selected to participate in this event."
	LotteryLostMessage = "Unfortunately, you were not selected for this event. Better luck next time!"
)

// NotificationService turns lottery outcomes into notification records. Delivery to devices
// is done by whoever consumes the notifications collection.
type NotificationService struct {
	notificationRepo repositories.NotificationRepository
	timeout          time.Duration
	now              func() time.Time
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repositories.NotificationRepository, timeout time.Duration) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		timeout:          timeout,
		now:              time.Now,
	}
}

// NotifyWinners writes one lottery_win record addressed to all winners. An empty list
// writes nothing and returns (nil, nil).
func (s *NotificationService) NotifyWinners(ctx context.Context, eventID, eventName string, winners []string) (*models.Notification, error) {
	return s.dispatch(ctx, "notification.NotifyWinners", eventID, eventName, models.NotificationTypeLotteryWin, LotteryWinMessage, winners)
}

// NotifyLosers writes one lottery_lost record addressed to all losers. An empty list
// writes nothing and returns (nil, nil).
func (s *NotificationService) NotifyLosers(ctx context.Context, eventID, eventName string, losers []string) (*models.Notification, error) {
	return s.dispatch(ctx, "notification.NotifyLosers", eventID, eventName, models.NotificationTypeLotteryLost, LotteryLostMessage, losers)
}

func (s *NotificationService) dispatch(ctx context.Context, op, eventID, eventName, kind, message string, recipients []string) (*models.Notification, error) {
	if err := validateEventID(op, eventID); err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, nil
	}
	if err := validateEntrantIDs(op, recipients); err != nil {
		return nil, err
	}

	notification := &models.Notification{
		DateMade:   s.now().UTC(),
		EventID:    eventID,
		EventName:  eventName,
		From:       models.SystemSender,
		Message:    message,
		Type:       kind,
		Recipients: utils.UniqueStrings(recipients),
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		slog.Error("Failed to create notification", "eventId", eventID, "type", kind, "recipients", len(recipients), "error", err)
		return nil, storageError(op, err)
	}
	slog.Info("Notification created", "eventId", eventID, "type", kind, "recipients", len(notification.Recipients))
	return notification, nil
}

// ListForEntrant returns the notifications addressed to entrantID, newest first.
func (s *NotificationService) ListForEntrant(ctx context.Context, entrantID string, page, limit int) ([]*models.Notification, error) {
	const op = "notification.ListForEntrant"
	if err := validateEntrantID(op, entrantID); err != nil {
		return nil, err
	}
	page, limit = utils.NormalizePage(page, limit, 100)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	notifications, err := s.notificationRepo.FindByEntrant(ctx, entrantID, page, limit)
	if err != nil {
		return nil, storageError(op, err)
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return notifications, nil
}

// ListForEvent returns every notification written for eventID.
func (s *NotificationService) ListForEvent(ctx context.Context, eventID string) ([]*models.Notification, error) {
	const op = "notification.ListForEvent"
	if err := validateEventID(op, eventID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	notifications, err := s.notificationRepo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, storageError(op, err)
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return notifications, nil
}
