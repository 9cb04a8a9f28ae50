package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	EventsCollection           = "events"
	NotificationListCollection = "notificationList"
	NotificationsCollection    = "notifications"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique eventId index
// keeps one ledger document per event.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		NotificationListCollection: {
			{Keys: bson.D{{Key: "eventId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		NotificationsCollection: {
			{Keys: bson.D{{Key: "uID", Value: 1}, {Key: "dateMade", Value: -1}}},
			{Keys: bson.D{{Key: "eventId", Value: 1}}},
		},
		EventsCollection: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}
	for collection, models := range indexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
		slog.Debug("Indexes ensured", "collection", collection, "indexes", names)
	}
	return nil
}
