package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

func TestWaitlist_DuplicateJoinKeepsOneEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := f.createEvent(t, "Yoga", 1)

	require.NoError(t, f.waitlists.Join(ctx, eventID, "u1"))
	require.NoError(t, f.waitlists.Join(ctx, eventID, "u1"))

	waitlist, err := f.waitlists.GetWaitlist(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, waitlist)
}

func TestWaitlist_JoinLeaveLeave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := f.createEvent(t, "Yoga", 1)

	require.NoError(t, f.waitlists.Join(ctx, eventID, "u1"))
	require.NoError(t, f.waitlists.Leave(ctx, eventID, "u1"))
	require.NoError(t, f.waitlists.Leave(ctx, eventID, "u1"))

	waitlist, err := f.waitlists.GetWaitlist(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, waitlist)
}

func TestWaitlist_InvalidArguments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.waitlists.Join(ctx, "", "u1"), ErrInvalidArgument)
	assert.ErrorIs(t, f.waitlists.Join(ctx, "bad id", "u1"), ErrInvalidArgument)
	assert.ErrorIs(t, f.waitlists.Leave(ctx, "e1", ""), ErrInvalidArgument)
	_, err := f.waitlists.GetWaitlist(ctx, "../etc")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestWaitlist_UnknownEvent(t *testing.T) {
	f := newFixture(t)
	err := f.waitlists.Join(context.Background(), "nosuchevent", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWaitlist_Timeout(t *testing.T) {
	f := newFixture(t, withWaitlistRepo(func(r repositories.WaitlistRepository) repositories.WaitlistRepository {
		return &blockingWaitlist{r}
	}))
	f.waitlists.timeout = 20 * time.Millisecond

	_, err := f.waitlists.GetWaitlist(context.Background(), "e1")
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestWaitlist_ConcurrentJoinLeaveConverges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	eventID := f.createEvent(t, "Concert", 1)

	// Entrants 0..19 join twice each; odd entrants also leave after joining.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("u%d", i)
			assert.NoError(t, f.waitlists.Join(ctx, eventID, id))
			assert.NoError(t, f.waitlists.Join(ctx, eventID, id))
			if i%2 == 1 {
				assert.NoError(t, f.waitlists.Leave(ctx, eventID, id))
			}
		}(i)
	}
	wg.Wait()

	waitlist, err := f.waitlists.GetWaitlist(ctx, eventID)
	require.NoError(t, err)
	var want []string
	for i := 0; i < 20; i += 2 {
		want = append(want, fmt.Sprintf("u%d", i))
	}
	assert.ElementsMatch(t, want, waitlist)
}
