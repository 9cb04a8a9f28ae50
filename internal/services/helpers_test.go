package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories/memory"
)

const testTimeout = 10 * time.Second

var errUnreachable = errors.New("connection refused")

// failingNotifications fails Create for the notification types listed in failTypes.
type failingNotifications struct {
	repositories.NotificationRepository
	failTypes map[string]error
}

func (f *failingNotifications) Create(ctx context.Context, n *models.Notification) error {
	if err, ok := f.failTypes[n.Type]; ok {
		return err
	}
	return f.NotificationRepository.Create(ctx, n)
}

// failingLedger fails every UnionInvited call.
type failingLedger struct {
	repositories.LedgerRepository
	err error
}

func (f *failingLedger) UnionInvited(context.Context, string, []string) (*models.NotificationList, error) {
	return nil, f.err
}

// blockingWaitlist blocks until the context is done.
type blockingWaitlist struct {
	repositories.WaitlistRepository
}

func (b *blockingWaitlist) GetWaitlist(ctx context.Context, _ string) ([]string, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type fixture struct {
	store         *memory.Store
	events        *EventService
	waitlists     *WaitlistService
	ledger        *LedgerService
	notifications *NotificationService
	lottery       *LotteryService
}

type fixtureOption func(*fixtureDeps)

type fixtureDeps struct {
	waitlistRepo     repositories.WaitlistRepository
	ledgerRepo       repositories.LedgerRepository
	notificationRepo repositories.NotificationRepository
	defaultDrawSize  int
}

func withNotificationRepo(wrap func(repositories.NotificationRepository) repositories.NotificationRepository) fixtureOption {
	return func(d *fixtureDeps) { d.notificationRepo = wrap(d.notificationRepo) }
}

func withLedgerRepo(wrap func(repositories.LedgerRepository) repositories.LedgerRepository) fixtureOption {
	return func(d *fixtureDeps) { d.ledgerRepo = wrap(d.ledgerRepo) }
}

func withWaitlistRepo(wrap func(repositories.WaitlistRepository) repositories.WaitlistRepository) fixtureOption {
	return func(d *fixtureDeps) { d.waitlistRepo = wrap(d.waitlistRepo) }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	store := memory.NewStore()
	deps := &fixtureDeps{
		waitlistRepo:     store.Waitlists(),
		ledgerRepo:       store.Ledgers(),
		notificationRepo: store.Notifications(),
		defaultDrawSize:  1,
	}
	for _, opt := range opts {
		opt(deps)
	}

	waitlists := NewWaitlistService(deps.waitlistRepo, testTimeout)
	ledger := NewLedgerService(deps.ledgerRepo, testTimeout)
	notifications := NewNotificationService(deps.notificationRepo, testTimeout)
	return &fixture{
		store:         store,
		events:        NewEventService(store.Events(), testTimeout),
		waitlists:     waitlists,
		ledger:        ledger,
		notifications: notifications,
		lottery: NewLotteryService(store.Events(), waitlists, ledger, notifications,
			NewLotteryEngineWithSeed(2024), deps.defaultDrawSize, testTimeout),
	}
}

// createEvent stores an event with the given waitlist and returns its ID.
func (f *fixture) createEvent(t *testing.T, name string, entrantsToDraw int, waitlist ...string) string {
	t.Helper()
	ctx := context.Background()
	event, err := f.events.CreateEvent(ctx, models.Identity{UserID: "org-1", Role: models.RoleOrganizer}, &models.CreateEventRequest{
		Name:           name,
		EntrantsToDraw: entrantsToDraw,
	})
	require.NoError(t, err)
	for _, id := range waitlist {
		require.NoError(t, f.waitlists.Join(ctx, event.ID, id))
	}
	return event.ID
}

func (f *fixture) notificationsOf(t *testing.T, eventID, kind string) []*models.Notification {
	t.Helper()
	all, err := f.notifications.ListForEvent(context.Background(), eventID)
	require.NoError(t, err)
	var out []*models.Notification
	for _, n := range all {
		if n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}
