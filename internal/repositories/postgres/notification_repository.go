package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/pkg/postgres"
)

var _ repositories.NotificationRepository = (*NotificationRepository)(nil)

const notificationColumns = `id, date_made, event_id, event_name, sender, message, type, recipients`

type NotificationRepository struct {
	db *postgres.DB
}

func NewNotificationRepository(db *postgres.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	recipients := n.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.DateMade, n.EventID, n.EventName, n.From, n.Message, n.Type, recipients)
	return translateError(err)
}

// FindByEntrant uses array containment so the GIN index on recipients applies.
func (r *NotificationRepository) FindByEntrant(ctx context.Context, entrantID string, page, limit int) ([]*models.Notification, error) {
	return r.query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		 WHERE recipients @> ARRAY[$1]::text[]
		 ORDER BY date_made DESC, id LIMIT $2 OFFSET $3`,
		entrantID, limit, (page-1)*limit)
}

func (r *NotificationRepository) FindByEventID(ctx context.Context, eventID string) ([]*models.Notification, error) {
	return r.query(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		 WHERE event_id = $1 ORDER BY date_made, id`, eventID)
}

func (r *NotificationRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Notification, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, translateError(err)
	}
	notifications, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Notification, error) {
		var n models.Notification
		err := row.Scan(&n.ID, &n.DateMade, &n.EventID, &n.EventName, &n.From, &n.Message, &n.Type, &n.Recipients)
		return &n, err
	})
	if err != nil {
		return nil, translateError(err)
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return notifications, nil
}
