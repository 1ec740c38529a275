package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorconnect-backend/internal/models"
)

type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

// Upsert stores feedback keyed on (session, mentee). Resubmitting replaces
// the previous rating and comment, so there is always at most one row per
// pair.
func (r *FeedbackRepo) Upsert(ctx context.Context, f *models.Feedback) error {
	query := `
		INSERT INTO feedback (id, session_id, mentee_id, mentor_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, mentee_id) DO UPDATE
		SET rating = EXCLUDED.rating,
		    comment = EXCLUDED.comment,
		    created_at = NOW()
		RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		uuid.New(), f.SessionID, f.MenteeID, f.MentorID, f.Rating, f.Comment,
	).Scan(&f.ID, &f.CreatedAt)
}

func (r *FeedbackRepo) RecentByMentor(ctx context.Context, mentorID uuid.UUID, limit int) ([]models.FeedbackEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.rating, f.comment, f.created_at, u.name AS mentee_name
		FROM feedback f
		JOIN users u ON f.mentee_id = u.id
		WHERE f.mentor_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2
	`, mentorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.FeedbackEntry{}
	for rows.Next() {
		var e models.FeedbackEntry
		if err := rows.Scan(&e.Rating, &e.Comment, &e.CreatedAt, &e.MenteeName); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *FeedbackRepo) AverageRatingForMentor(ctx context.Context, mentorID uuid.UUID) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx,
		"SELECT COALESCE(AVG(rating), 0) FROM feedback WHERE mentor_id = $1", mentorID,
	).Scan(&avg)
	return avg, err
}
