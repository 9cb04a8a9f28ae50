package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

var _ repositories.WaitlistRepository = (*WaitlistRepository)(nil)

// WaitlistRepository keeps each event's waitlist as an array on the event document.
// $addToSet and $pull make join and leave idempotent without a read-modify-write cycle.
type WaitlistRepository struct {
	collection *mongo.Collection
}

// NewWaitlistRepository creates a new WaitlistRepository
func NewWaitlistRepository(db *mongo.Database) *WaitlistRepository {
	return &WaitlistRepository{
		collection: db.Collection(EventsCollection),
	}
}

// AddToWaitlist adds entrantID unless the waitlist is at capacity. An entrant already on a
// full waitlist still matches, so rejoining stays a no-op.
func (r *WaitlistRepository) AddToWaitlist(ctx context.Context, eventID, entrantID string) error {
	filter := bson.M{
		"_id": eventID,
		"$or": bson.A{
			bson.M{"capacity": bson.M{"$lte": 0}},
			bson.M{"$expr": bson.M{"$lt": bson.A{
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$waitlist", bson.A{}}}},
				"$capacity",
			}}},
			bson.M{"waitlist": entrantID},
		},
	}
	update := bson.M{
		"$addToSet": bson.M{"waitlist": entrantID},
		"$set":      bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the event is missing or its waitlist is full.
	err = r.collection.FindOne(ctx, bson.M{"_id": eventID}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		return translateError(err)
	}
	return repositories.ErrWaitlistFull
}

// RemoveFromWaitlist pulls entrantID from the waitlist. Removing an absent entrant is a no-op.
func (r *WaitlistRepository) RemoveFromWaitlist(ctx context.Context, eventID, entrantID string) error {
	update := bson.M{
		"$pull": bson.M{"waitlist": entrantID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		return translateError(err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// GetWaitlist returns the event's waitlist in join order.
func (r *WaitlistRepository) GetWaitlist(ctx context.Context, eventID string) ([]string, error) {
	var doc struct {
		Waitlist []string `bson:"waitlist"`
	}
	opts := options.FindOne().SetProjection(bson.M{"waitlist": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": eventID}, opts).Decode(&doc); err != nil {
		return nil, translateError(err)
	}
	if doc.Waitlist == nil {
		doc.Waitlist = []string{}
	}
	return doc.Waitlist, nil
}
