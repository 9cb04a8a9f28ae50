package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

// translateError maps driver errors onto the repository sentinels the services understand.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsTimeout(err) && !errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
	}
	return err
}
