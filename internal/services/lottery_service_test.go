package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

func TestRunLottery_DrawsAndNotifiesBothGroups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := f.createEvent(t, "Swim Class", 0, "u1", "u2", "u3", "u4", "u5")

	report, err := f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: eventID, RequestedCount: 2})
	require.NoError(t, err)

	assert.Equal(t, models.RunStateDone, report.State)
	assert.Equal(t, 2, report.WinnerCount)
	assert.Len(t, report.Winners, 2)
	assert.Len(t, report.Losers, 3)
	assert.ElementsMatch(t, []string{"u1", "u2", "u3", "u4", "u5"}, append(append([]string{}, report.Winners...), report.Losers...))
	assert.NotEmpty(t, report.RunID)
	assert.NotEmpty(t, report.Log)

	ledger, err := f.ledger.GetOrCreate(ctx, eventID)
	require.NoError(t, err)
	assert.ElementsMatch(t, report.Winners, ledger.Invited)

	wins := f.notificationsOf(t, eventID, models.NotificationTypeLotteryWin)
	require.Len(t, wins, 1)
	assert.ElementsMatch(t, report.Winners, wins[0].Recipients)
	assert.Equal(t, "Swim Class", wins[0].EventName)

	losses := f.notificationsOf(t, eventID, models.NotificationTypeLotteryLost)
	require.Len(t, losses, 1)
	assert.ElementsMatch(t, report.Losers, losses[0].Recipients)
}

func TestRunLottery_RequestedExceedsWaitlist(t *testing.T) {
	f := newFixture(t)
	eventID := f.createEvent(t, "Pottery", 0, "u1", "u2", "u3")

	report, err := f.lottery.RunLottery(context.Background(), &models.LotteryRequest{EventID: eventID, RequestedCount: 10})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, report.Winners)
	assert.Empty(t, report.Losers)
	assert.Equal(t, 3, report.WinnerCount)
	assert.Empty(t, f.notificationsOf(t, eventID, models.NotificationTypeLotteryLost))
	assert.Len(t, f.notificationsOf(t, eventID, models.NotificationTypeLotteryWin), 1)
}

func TestRunLottery_EmptyWaitlist(t *testing.T) {
	f := newFixture(t)
	eventID := f.createEvent(t, "Empty", 2)

	report, err := f.lottery.RunLottery(context.Background(), &models.LotteryRequest{EventID: eventID})
	assert.ErrorIs(t, err, ErrEmptyWaitlist)
	require.NotNil(t, report)
	assert.Equal(t, models.RunStateFailed, report.State)
	assert.Equal(t, models.RunStateIdle, report.LastState)

	ledger, err := f.ledger.GetOrCreate(context.Background(), eventID)
	require.NoError(t, err)
	assert.Empty(t, ledger.Invited)
}

func TestRunLottery_SnapshotOverridesStoredWaitlist(t *testing.T) {
	f := newFixture(t)
	eventID := f.createEvent(t, "Snapshot", 0, "stored")

	report, err := f.lottery.RunLottery(context.Background(), &models.LotteryRequest{
		EventID:        eventID,
		EventName:      "Override",
		Waitlist:       []string{"a", "b", "a"},
		RequestedCount: 5,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, report.Winners)

	wins := f.notificationsOf(t, eventID, models.NotificationTypeLotteryWin)
	require.Len(t, wins, 1)
	assert.Equal(t, "Override", wins[0].EventName)
}

func TestRunLottery_DrawSizeDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fromEvent := f.createEvent(t, "Event default", 2, "u1", "u2", "u3")
	report, err := f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: fromEvent})
	require.NoError(t, err)
	assert.Len(t, report.Winners, 2)

	fromConfig := f.createEvent(t, "Config default", 0, "u1", "u2", "u3")
	report, err = f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: fromConfig})
	require.NoError(t, err)
	assert.Len(t, report.Winners, 1)
}

func TestRunLottery_ExcludeInvited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := f.createEvent(t, "Rerun", 0, "u1", "u2", "u3")

	first, err := f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: eventID, RequestedCount: 2})
	require.NoError(t, err)

	second, err := f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: eventID, RequestedCount: 2, ExcludeInvited: true})
	require.NoError(t, err)
	require.Len(t, second.Winners, 1)
	assert.NotContains(t, first.Winners, second.Winners[0])

	ledger, err := f.ledger.GetOrCreate(ctx, eventID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, ledger.Invited)

	_, err = f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: eventID, RequestedCount: 1, ExcludeInvited: true})
	assert.ErrorIs(t, err, ErrEmptyWaitlist)
}

func TestRunLottery_InvalidRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: ""})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Nil(t, report)

	_, err = f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: "e1", RequestedCount: -1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: "e1", EventName: "x", RequestedCount: 1, Waitlist: []string{"has space"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRunLottery_UnknownEvent(t *testing.T) {
	f := newFixture(t)
	_, err := f.lottery.RunLottery(context.Background(), &models.LotteryRequest{EventID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRunLottery_LedgerFailureStopsBeforeNotifying(t *testing.T) {
	f := newFixture(t, withLedgerRepo(func(r repositories.LedgerRepository) repositories.LedgerRepository {
		return &failingLedger{LedgerRepository: r, err: errUnreachable}
	}))
	eventID := f.createEvent(t, "Ledger down", 0, "u1", "u2")

	report, err := f.lottery.RunLottery(context.Background(), &models.LotteryRequest{EventID: eventID, RequestedCount: 1})
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotErrorIs(t, err, ErrPartialFailure)
	assert.Equal(t, models.RunStateSelected, report.LastState)

	all, err := f.notifications.ListForEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRunLottery_WinnerNotificationFailure(t *testing.T) {
	f := newFixture(t, withNotificationRepo(func(r repositories.NotificationRepository) repositories.NotificationRepository {
		return &failingNotifications{NotificationRepository: r, failTypes: map[string]error{
			models.NotificationTypeLotteryWin: errUnreachable,
		}}
	}))
	ctx := context.Background()
	eventID := f.createEvent(t, "Partial", 0, "u1", "u2", "u3")

	report, err := f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: eventID, RequestedCount: 1})
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, models.RunStateFailed, report.State)
	assert.Equal(t, models.RunStateLedgerUpdated, report.LastState)

	// ledger keeps the invitation
	ledger, lerr := f.ledger.GetOrCreate(ctx, eventID)
	require.NoError(t, lerr)
	assert.Equal(t, report.Winners, ledger.Invited)

	// losers were not told either
	assert.Empty(t, f.notificationsOf(t, eventID, models.NotificationTypeLotteryLost))
}

func TestRunLottery_LoserNotificationFailureAndRetry(t *testing.T) {
	failing := map[string]error{models.NotificationTypeLotteryLost: errUnreachable}
	f := newFixture(t, withNotificationRepo(func(r repositories.NotificationRepository) repositories.NotificationRepository {
		return &failingNotifications{NotificationRepository: r, failTypes: failing}
	}))
	ctx := context.Background()
	eventID := f.createEvent(t, "Retry", 0, "u1", "u2", "u3")

	report, err := f.lottery.RunLottery(ctx, &models.LotteryRequest{EventID: eventID, RequestedCount: 1})
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.Equal(t, models.RunStateWinnersNotified, report.LastState)
	assert.Len(t, f.notificationsOf(t, eventID, models.NotificationTypeLotteryWin), 1)

	delete(failing, models.NotificationTypeLotteryLost)
	n, err := f.lottery.RetryLoserNotification(ctx, eventID, "", report.Losers)
	require.NoError(t, err)
	assert.Equal(t, "Retry", n.EventName)
	assert.ElementsMatch(t, report.Losers, n.Recipients)

	// retrying only the loss phase leaves a single win record
	assert.Len(t, f.notificationsOf(t, eventID, models.NotificationTypeLotteryWin), 1)
	assert.Len(t, f.notificationsOf(t, eventID, models.NotificationTypeLotteryLost), 1)
}

func TestRetryWinnerNotification(t *testing.T) {
	f := newFixture(t)
	eventID := f.createEvent(t, "Gala", 0)

	n, err := f.lottery.RetryWinnerNotification(context.Background(), eventID, "", []string{"u1"})
	require.NoError(t, err)
	assert.Equal(t, "Gala", n.EventName)
	assert.Equal(t, models.NotificationTypeLotteryWin, n.Type)

	_, err = f.lottery.RetryWinnerNotification(context.Background(), "", "Gala", []string{"u1"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
