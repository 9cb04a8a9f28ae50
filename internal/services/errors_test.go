package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

func TestStorageErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want *Error
	}{
		{"deadline", fmt.Errorf("find: %w", context.DeadlineExceeded), ErrTimeout},
		{"not found", repositories.ErrNotFound, ErrNotFound},
		{"full", repositories.ErrWaitlistFull, ErrInvalidArgument},
		{"driver", errors.New("connection refused"), ErrStorageUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := storageError("op", tc.err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestStorageErrorKeepsExistingKind(t *testing.T) {
	orig := newError(KindEmptyWaitlist, "select", nil)
	assert.Same(t, orig, storageError("other", orig))
}

func TestPartialFailureUnwrapsToCause(t *testing.T) {
	cause := storageError("notify", context.DeadlineExceeded)
	err := newError(KindPartialFailure, "run", cause)
	assert.ErrorIs(t, err, ErrPartialFailure)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, KindPartialFailure, KindOf(err))
}

func TestErrorMessage(t *testing.T) {
	err := newError(KindInvalidArgument, "join", errors.New("bad id"))
	assert.Equal(t, "join: INVALID_ARGUMENT: bad id", err.Error())
	assert.Equal(t, "EMPTY_WAITLIST", ErrEmptyWaitlist.Error())
}

func TestValidation(t *testing.T) {
	assert.NoError(t, validateEventID("op", "65f1c2ab9e0d4a7b8c6d5e4f"))
	assert.ErrorIs(t, validateEventID("op", ""), ErrInvalidArgument)
	assert.ErrorIs(t, validateEventID("op", "bad/id"), ErrInvalidArgument)
	assert.NoError(t, validateEntrantID("op", "uid-123"))
	assert.ErrorIs(t, validateEntrantID("op", "has space"), ErrInvalidArgument)
	assert.ErrorIs(t, validateEntrantID("op", ""), ErrInvalidArgument)
}
