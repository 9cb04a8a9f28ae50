package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
)

var _ repositories.NotificationRepository = (*NotificationRepository)(nil)

// NotificationRepository implements the repositories.NotificationRepository interface
type NotificationRepository struct {
	collection *mongo.Collection
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection(NotificationsCollection),
	}
}

// Create inserts a notification record
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, notification)
	return translateError(err)
}

// FindByEntrant finds notifications addressed to entrantID with pagination
func (r *NotificationRepository) FindByEntrant(ctx context.Context, entrantID string, page, limit int) ([]*models.Notification, error) {
	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "dateMade", Value: -1}}) // newest first

	return r.find(ctx, bson.M{"uID": entrantID}, opts)
}

// FindByEventID finds every notification of an event, oldest first
func (r *NotificationRepository) FindByEventID(ctx context.Context, eventID string) ([]*models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateMade", Value: 1}})
	return r.find(ctx, bson.M{"eventId": eventID}, opts)
}

func (r *NotificationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*models.Notification, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, translateError(err)
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return notifications, nil
}
