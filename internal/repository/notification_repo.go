package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorconnect-backend/internal/models"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// CreateTx inserts a notification inside the caller's transaction so that
// a session transition and its notification commit or roll back together.
func (r *NotificationRepo) CreateTx(ctx context.Context, tx pgx.Tx, n *models.Notification) error {
	if len(n.Data) == 0 {
		n.Data = json.RawMessage("{}")
	}

	n.ID = uuid.New()

	return tx.QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, session_id, type, title, message, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`, n.ID, n.UserID, n.SessionID, n.Type, n.Title, n.Message, n.Data).Scan(&n.CreatedAt)
}

// ListByUser returns the user's non-dismissed notifications, newest first,
// optionally filtered by type.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, notifType string) ([]models.Notification, error) {
	query := `
		SELECT n.id, n.user_id, n.session_id, n.type, n.title, n.message, n.data,
		       n.read_status, n.dismissed, n.created_at, s.topic AS session_topic
		FROM notifications n
		LEFT JOIN sessions s ON n.session_id = s.id
		WHERE n.user_id = $1 AND n.dismissed = FALSE`
	args := []interface{}{userID}

	if notifType != "" {
		query += " AND n.type = $2"
		args = append(args, notifType)
	}
	query += " ORDER BY n.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.SessionID, &n.Type, &n.Title, &n.Message, &n.Data,
			&n.ReadStatus, &n.Dismissed, &n.CreatedAt, &n.SessionTopic); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepo) CountByUser(ctx context.Context, userID uuid.UUID) (*models.NotificationCount, error) {
	c := &models.NotificationCount{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE read_status = FALSE),
			COUNT(*) FILTER (WHERE type = 'session_rejected'),
			COUNT(*) FILTER (WHERE type = 'session_approved'),
			COUNT(*) FILTER (WHERE type = 'session_rescheduled')
		FROM notifications
		WHERE user_id = $1 AND dismissed = FALSE
	`, userID).Scan(&c.Total, &c.Unread, &c.Rejected, &c.Approved, &c.Rescheduled)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// MarkRead is idempotent; flipping an already-read flag changes nothing.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE notifications SET read_status = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepo) Dismiss(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE notifications SET dismissed = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
