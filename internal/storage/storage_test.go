package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/eventlottery-backend/internal/config"
	"github.com/ArowuTest/eventlottery-backend/internal/models"
)

func TestOpen_Memory(t *testing.T) {
	repos, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: config.DriverMemory}})
	require.NoError(t, err)
	defer repos.Close(context.Background())

	ctx := context.Background()
	require.NoError(t, repos.Events.Create(ctx, &models.Event{ID: "e1", Name: "Gala"}))
	require.NoError(t, repos.Waitlists.AddToWaitlist(ctx, "e1", "u1"))
	waitlist, err := repos.Waitlists.GetWaitlist(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, waitlist)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "redis"}})
	assert.Error(t, err)
}
