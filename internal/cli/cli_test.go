package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories/memory"
	"github.com/ArowuTest/eventlottery-backend/internal/services"
	"github.com/ArowuTest/eventlottery-backend/internal/storage"
)

func newTestRepos(t *testing.T, events ...*models.Event) *storage.Repositories {
	t.Helper()
	store := memory.NewStore()
	for _, e := range events {
		require.NoError(t, store.Events().Create(context.Background(), e))
	}
	return &storage.Repositories{
		Events:        store.Events(),
		Waitlists:     store.Waitlists(),
		Ledgers:       store.Ledgers(),
		Notifications: store.Notifications(),
	}
}

func execute(t *testing.T, repos *storage.Repositories, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(&RootOptions{repos: repos})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "lotteryctl", cmd.Use)

	for _, name := range []string{"waitlist", "draw", "ledger", "import"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %s should exist", name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, newTestRepos(t), "ledger", "show", "--event", "e1", "--format", "xml")
	assert.Error(t, err)
}

func TestWaitlistCommands(t *testing.T) {
	repos := newTestRepos(t, &models.Event{ID: "e1", Name: "Gala"})

	_, err := execute(t, repos, "waitlist", "join", "--event", "e1", "--entrant", "u1")
	require.NoError(t, err)
	_, err = execute(t, repos, "waitlist", "join", "--event", "e1", "--entrant", "u2")
	require.NoError(t, err)
	_, err = execute(t, repos, "waitlist", "leave", "--event", "e1", "--entrant", "u2")
	require.NoError(t, err)

	out, err := execute(t, repos, "waitlist", "show", "--event", "e1", "--format", "json")
	require.NoError(t, err)
	var got struct {
		Waitlist []string `json:"waitlist"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"u1"}, got.Waitlist)

	_, err = execute(t, repos, "waitlist", "join", "--event", "e1", "--entrant", "has space")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDrawCommand(t *testing.T) {
	repos := newTestRepos(t, &models.Event{ID: "e1", Name: "Gala", Waitlist: []string{"u1", "u2", "u3"}})

	out, err := execute(t, repos, "draw", "--event", "e1", "--count", "2", "--format", "json")
	require.NoError(t, err)
	var report models.RunReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, models.RunStateDone, report.State)
	assert.Len(t, report.Winners, 2)

	out, err = execute(t, repos, "ledger", "show", "--event", "e1")
	require.NoError(t, err)
	assert.Contains(t, out, "invited (2)")
}

func TestDrawCommand_EmptyWaitlist(t *testing.T) {
	repos := newTestRepos(t, &models.Event{ID: "e1", Name: "Empty"})

	out, err := execute(t, repos, "draw", "--event", "e1", "--count", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrEmptyWaitlist)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, string(models.RunStateFailed))
}

func TestImportWaitlist(t *testing.T) {
	repos := newTestRepos(t, &models.Event{ID: "e1"}, &models.Event{ID: "e2"})
	waitlists := services.NewWaitlistService(repos.Waitlists, defaultStoreTimeout)

	csv := "eventId,entrantId\ne1,u1\ne1, u2\n\ne2,u1\nmissing,u1\ne1\n"
	result, err := ImportWaitlist(context.Background(), strings.NewReader(csv), waitlists)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Rows)
	assert.Equal(t, 3, result.Joined)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, 6, result.Failures[0].Line)
	assert.Equal(t, 7, result.Failures[1].Line)

	waitlist, err := waitlists.GetWaitlist(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, waitlist)
}

func TestImportCommand(t *testing.T) {
	repos := newTestRepos(t, &models.Event{ID: "e1"})
	path := filepath.Join(t.TempDir(), "waitlist.csv")
	require.NoError(t, os.WriteFile(path, []byte("e1,u1\ne1,u2\n"), 0o600))

	out, err := execute(t, repos, "import", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 of 2 rows")

	_, err = execute(t, repos, "import", "--file", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
