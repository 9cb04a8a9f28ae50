package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

var _ repositories.LedgerRepository = (*LedgerRepository)(nil)

// LedgerRepository stores one notificationList document per event.
type LedgerRepository struct {
	collection *mongo.Collection
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{
		collection: db.Collection(NotificationListCollection),
	}
}

// FindByEventID finds the ledger entry for an event
func (r *LedgerRepository) FindByEventID(ctx context.Context, eventID string) (*models.NotificationList, error) {
	var ledger models.NotificationList
	if err := r.collection.FindOne(ctx, bson.M{"eventId": eventID}).Decode(&ledger); err != nil {
		return nil, translateError(err)
	}
	normalizeLedger(&ledger)
	return &ledger, nil
}

// UnionInvited adds entrantIDs to invited and all in a single upsert. Two first-time
// upserts can race on the unique eventId index; the loser retries once as a plain update.
func (r *LedgerRepository) UnionInvited(ctx context.Context, eventID string, entrantIDs []string) (*models.NotificationList, error) {
	ledger, err := r.unionInvited(ctx, eventID, entrantIDs)
	if mongo.IsDuplicateKeyError(err) {
		slog.Debug("Ledger upsert raced, retrying", "eventId", eventID)
		ledger, err = r.unionInvited(ctx, eventID, entrantIDs)
	}
	if err != nil {
		return nil, translateError(err)
	}
	return ledger, nil
}

func (r *LedgerRepository) unionInvited(ctx context.Context, eventID string, entrantIDs []string) (*models.NotificationList, error) {
	now := time.Now()
	update := bson.M{
		"$addToSet": bson.M{
			"invited": bson.M{"$each": entrantIDs},
			"all":     bson.M{"$each": entrantIDs},
		},
		"$setOnInsert": bson.M{
			"waiting":    bson.A{},
			"cancelled":  bson.A{},
			"created_at": now,
		},
		"$set": bson.M{"updated_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var ledger models.NotificationList
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"eventId": eventID}, update, opts).Decode(&ledger); err != nil {
		return nil, err
	}
	normalizeLedger(&ledger)
	return &ledger, nil
}

func normalizeLedger(l *models.NotificationList) {
	if l.Invited == nil {
		l.Invited = []string{}
	}
	if l.Waiting == nil {
		l.Waiting = []string{}
	}
	if l.Cancelled == nil {
		l.Cancelled = []string{}
	}
	if l.All == nil {
		l.All = []string{}
	}
}
