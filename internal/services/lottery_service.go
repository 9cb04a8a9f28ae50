package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/utils"
)

// LotteryService coordinates a lottery run: load waitlist, draw, record invitations in the
// ledger, notify winners, then notify losers. It holds no lock across the run; each store
// mutation is atomic on its own. Nothing is retried internally.
type LotteryService struct {
	eventRepo       repositories.EventRepository
	waitlists       *WaitlistService
	ledger          *LedgerService
	notifier        *NotificationService
	engine          *LotteryEngine
	defaultDrawSize int
	timeout         time.Duration
	now             func() time.Time
}

// NewLotteryService creates a new LotteryService
func NewLotteryService(
	eventRepo repositories.EventRepository,
	waitlists *WaitlistService,
	ledger *LedgerService,
	notifier *NotificationService,
	engine *LotteryEngine,
	defaultDrawSize int,
	timeout time.Duration,
) *LotteryService {
	return &LotteryService{
		eventRepo:       eventRepo,
		waitlists:       waitlists,
		ledger:          ledger,
		notifier:        notifier,
		engine:          engine,
		defaultDrawSize: defaultDrawSize,
		timeout:         timeout,
		now:             time.Now,
	}
}

// RunLottery executes one lottery run. The returned report is non-nil once the request
// passed validation and records the last state reached. A failure after the ledger was
// updated is reported as PartialFailure wrapping the cause; the ledger is not rolled back.
//
// The stored ledger is not consulted unless req.ExcludeInvited is set, so a plain re-run may
// select entrants that an earlier run already invited.
func (s *LotteryService) RunLottery(ctx context.Context, req *models.LotteryRequest) (report *models.RunReport, err error) {
	const op = "lottery.RunLottery"
	if err := validateEventID(op, req.EventID); err != nil {
		return nil, err
	}
	if req.RequestedCount < 0 {
		return nil, invalidArgument(op, "requested count must not be negative")
	}
	if req.Waitlist != nil {
		if err := validateEntrantIDs(op, req.Waitlist); err != nil {
			return nil, err
		}
	}

	report = &models.RunReport{
		RunID:     uuid.NewString(),
		EventID:   req.EventID,
		State:     models.RunStateIdle,
		LastState: models.RunStateIdle,
		Winners:   []string{},
		Losers:    []string{},
		StartedAt: s.now(),
	}
	s.appendLog(report, "Starting lottery run %s", report.RunID)

	defer func() {
		report.FinishedAt = s.now()
		if err != nil {
			report.State = models.RunStateFailed
			report.Error = err.Error()
			s.appendLog(report, "ERROR in state %s: %s", report.LastState, err.Error())
			slog.Error("Lottery run failed", "runId", report.RunID, "eventId", report.EventID, "lastState", report.LastState, "kind", KindOf(err), "error", err)
			return
		}
		report.State = models.RunStateDone
		report.LastState = models.RunStateDone
		s.appendLog(report, "Lottery run completed: %d winners", report.WinnerCount)
		slog.Info("Lottery run completed", "runId", report.RunID, "eventId", report.EventID, "winners", report.WinnerCount, "losers", len(report.Losers))
	}()

	eventName, count, err := s.resolveDrawParameters(ctx, req)
	if err != nil {
		return report, err
	}

	// Idle -> WaitlistLoaded
	waitlist := req.Waitlist
	if waitlist == nil {
		waitlist, err = s.waitlists.GetWaitlist(ctx, req.EventID)
		if err != nil {
			return report, err
		}
	}
	waitlist = utils.UniqueStrings(waitlist)
	if req.ExcludeInvited {
		ledger, lerr := s.ledger.GetOrCreate(ctx, req.EventID)
		if lerr != nil {
			return report, lerr
		}
		before := len(waitlist)
		waitlist = utils.Difference(waitlist, ledger.Invited)
		s.appendLog(report, "Excluded %d previously invited entrants", before-len(waitlist))
	}
	if len(waitlist) == 0 {
		return report, newError(KindEmptyWaitlist, op, fmt.Errorf("event %s has no entrants to draw from", req.EventID))
	}
	s.transition(report, models.RunStateWaitlistLoaded, "Waitlist loaded: %d entrants", len(waitlist))

	// WaitlistLoaded -> Selected
	outcome, err := s.engine.Select(waitlist, count)
	if err != nil {
		return report, err
	}
	report.Winners = outcome.Winners
	report.Losers = outcome.Losers
	s.transition(report, models.RunStateSelected, "Selected %d winners out of %d (requested %d)", len(outcome.Winners), len(waitlist), count)

	// Selected -> LedgerUpdated
	if _, err = s.ledger.RecordInvitation(ctx, req.EventID, outcome.Winners); err != nil {
		return report, err
	}
	s.transition(report, models.RunStateLedgerUpdated, "Ledger updated with %d invitations", len(outcome.Winners))

	// LedgerUpdated -> WinnersNotified
	if _, err = s.notifier.NotifyWinners(ctx, req.EventID, eventName, outcome.Winners); err != nil {
		return report, newError(KindPartialFailure, op, fmt.Errorf("ledger updated but winner notification failed: %w", err))
	}
	s.transition(report, models.RunStateWinnersNotified, "Win notification sent to %d entrants", len(outcome.Winners))

	// WinnersNotified -> LosersNotified, skipped when nobody lost
	if len(outcome.Losers) > 0 {
		if _, err = s.notifier.NotifyLosers(ctx, req.EventID, eventName, outcome.Losers); err != nil {
			return report, newError(KindPartialFailure, op, fmt.Errorf("winners notified but loser notification failed: %w", err))
		}
		s.transition(report, models.RunStateLosersNotified, "Loss notification sent to %d entrants", len(outcome.Losers))
	} else {
		s.appendLog(report, "No losers, skipping loss notification")
	}

	report.WinnerCount = len(outcome.Winners)
	return report, nil
}

// RetryWinnerNotification re-sends only the win notification of a partially failed run.
func (s *LotteryService) RetryWinnerNotification(ctx context.Context, eventID, eventName string, winners []string) (*models.Notification, error) {
	eventName, err := s.eventNameFor(ctx, eventID, eventName)
	if err != nil {
		return nil, err
	}
	return s.notifier.NotifyWinners(ctx, eventID, eventName, winners)
}

// RetryLoserNotification re-sends only the loss notification of a partially failed run.
func (s *LotteryService) RetryLoserNotification(ctx context.Context, eventID, eventName string, losers []string) (*models.Notification, error) {
	eventName, err := s.eventNameFor(ctx, eventID, eventName)
	if err != nil {
		return nil, err
	}
	return s.notifier.NotifyLosers(ctx, eventID, eventName, losers)
}

// resolveDrawParameters fills the event name and draw size from the stored event when the
// request leaves them out. Draw size falls back to the configured default.
func (s *LotteryService) resolveDrawParameters(ctx context.Context, req *models.LotteryRequest) (string, int, error) {
	name, count := req.EventName, req.RequestedCount
	if name != "" && count > 0 {
		return name, count, nil
	}
	event, err := s.findEvent(ctx, req.EventID)
	if err != nil {
		return "", 0, err
	}
	if name == "" {
		name = event.Name
	}
	if count == 0 {
		count = event.EntrantsToDraw
	}
	if count == 0 {
		count = s.defaultDrawSize
	}
	return name, count, nil
}

func (s *LotteryService) eventNameFor(ctx context.Context, eventID, eventName string) (string, error) {
	if err := validateEventID("lottery.Retry", eventID); err != nil {
		return "", err
	}
	if eventName != "" {
		return eventName, nil
	}
	event, err := s.findEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	return event.Name, nil
}

func (s *LotteryService) findEvent(ctx context.Context, eventID string) (*models.Event, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, storageError("lottery.findEvent", err)
	}
	return event, nil
}

func (s *LotteryService) transition(report *models.RunReport, next models.RunState, format string, args ...any) {
	report.State = next
	report.LastState = next
	s.appendLog(report, format, args...)
	slog.Debug("Lottery run transition", "runId", report.RunID, "eventId", report.EventID, "state", next)
}

func (s *LotteryService) appendLog(report *models.RunReport, format string, args ...any) {
	report.Log = append(report.Log, fmt.Sprintf("%s: %s", s.now().Format(time.RFC3339), fmt.Sprintf(format, args...)))
}
