package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorconnect-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO sessions (id, mentor_id, mentee_id, topic, description, schedule, end_schedule, status, skills_to_learn, zoom_link, material_link)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	s.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		s.ID, s.MentorID, s.MenteeID, s.Topic, s.Description, s.Schedule, s.EndSchedule,
		s.Status, s.SkillsToLearn, s.ZoomLink, s.MaterialLink,
	).Scan(&s.CreatedAt)
}

func (r *SessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	s := &models.Session{}
	query := `
		SELECT s.id, s.mentor_id, s.mentee_id, s.topic, s.description, s.schedule, s.end_schedule,
		       s.status, s.skills_to_learn, s.zoom_link, s.material_link, s.reject_reason, s.created_at,
		       m.name AS mentor_name, u.name AS mentee_name
		FROM sessions s
		JOIN users m ON s.mentor_id = m.id
		LEFT JOIN users u ON s.mentee_id = u.id
		WHERE s.id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.MentorID, &s.MenteeID, &s.Topic, &s.Description, &s.Schedule, &s.EndSchedule,
		&s.Status, &s.SkillsToLearn, &s.ZoomLink, &s.MaterialLink, &s.RejectReason, &s.CreatedAt,
		&s.MentorName, &s.MenteeName,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id, mentorID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM sessions WHERE id = $1 AND mentor_id = $2", id, mentorID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SessionRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Claim atomically assigns a mentee to an unclaimed session. The WHERE
// clause is the concurrency guard: two racing registrations can't both
// match a NULL mentee_id, so the loser sees zero rows affected.
func (r *SessionRepo) Claim(ctx context.Context, sessionID, menteeID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE sessions
		SET mentee_id = $1, status = 'upcoming'
		WHERE id = $2 AND mentee_id IS NULL
	`, menteeID, sessionID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SessionRepo) ListOpenPrograms(ctx context.Context) ([]models.Program, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.mentor_id, s.topic, s.description, s.schedule, s.end_schedule, s.status,
		       s.skills_to_learn, s.zoom_link, s.material_link, s.created_at,
		       u.name AS mentor_name, u.skills AS mentor_expertise, u.profile_picture AS mentor_avatar, u.bio AS mentor_bio
		FROM sessions s
		JOIN users u ON s.mentor_id = u.id
		WHERE s.mentee_id IS NULL
		ORDER BY s.schedule ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	programs := []models.Program{}
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.MentorID, &p.Topic, &p.Description, &p.Schedule, &p.EndSchedule,
			&p.Status, &p.SkillsToLearn, &p.ZoomLink, &p.MaterialLink, &p.CreatedAt,
			&p.MentorName, &p.MentorExpertise, &p.MentorAvatar, &p.MentorBio); err != nil {
			return nil, err
		}
		p.IsAvailable = true
		p.TotalSlots = 1
		p.AvailableSlots = 1
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

func (r *SessionRepo) ListPendingByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.mentor_id, s.mentee_id, s.topic, s.description, s.schedule, s.end_schedule,
		       s.status, s.skills_to_learn, s.zoom_link, s.material_link, s.created_at,
		       u.name AS mentee_name, u.profile_picture AS mentee_avatar
		FROM sessions s
		JOIN users u ON s.mentee_id = u.id
		WHERE s.mentor_id = $1 AND s.status = 'pending'
		ORDER BY s.created_at DESC
	`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows, func(s *models.Session, rows pgx.Rows) error {
		return rows.Scan(&s.ID, &s.MentorID, &s.MenteeID, &s.Topic, &s.Description, &s.Schedule, &s.EndSchedule,
			&s.Status, &s.SkillsToLearn, &s.ZoomLink, &s.MaterialLink, &s.CreatedAt,
			&s.MenteeName, &s.MenteeAvatar)
	})
}

// ApplyResponseTx writes the approve/reject outcome inside the caller's
// transaction, alongside the notification insert.
func (r *SessionRepo) ApplyResponseTx(ctx context.Context, tx pgx.Tx, s *models.Session) error {
	_, err := tx.Exec(ctx, `
		UPDATE sessions
		SET status = $1,
		    schedule = $2,
		    reject_reason = $3,
		    zoom_link = COALESCE($4, zoom_link),
		    material_link = COALESCE($5, material_link)
		WHERE id = $6
	`, s.Status, s.Schedule, s.RejectReason, s.ZoomLink, s.MaterialLink, s.ID)
	return err
}

func (r *SessionRepo) ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.mentor_id, s.mentee_id, s.topic, s.description, s.schedule, s.end_schedule,
		       s.status, s.skills_to_learn, s.zoom_link, s.material_link, s.reject_reason, s.created_at,
		       u.name AS mentor_name, u.profile_picture AS mentor_avatar,
		       f.rating, f.comment, f.created_at AS feedback_date
		FROM sessions s
		JOIN users u ON s.mentor_id = u.id
		LEFT JOIN feedback f ON s.id = f.session_id
		WHERE s.mentee_id = $1
		ORDER BY s.schedule ASC
	`, menteeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows, func(s *models.Session, rows pgx.Rows) error {
		return rows.Scan(&s.ID, &s.MentorID, &s.MenteeID, &s.Topic, &s.Description, &s.Schedule, &s.EndSchedule,
			&s.Status, &s.SkillsToLearn, &s.ZoomLink, &s.MaterialLink, &s.RejectReason, &s.CreatedAt,
			&s.MentorName, &s.MentorAvatar,
			&s.FeedbackRating, &s.FeedbackComment, &s.FeedbackDate)
	})
}

func (r *SessionRepo) ListByMentor(ctx context.Context, mentorID uuid.UUID) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.mentor_id, s.mentee_id, s.topic, s.description, s.schedule, s.end_schedule,
		       s.status, s.skills_to_learn, s.zoom_link, s.material_link, s.reject_reason, s.created_at,
		       u.name AS mentee_name, u.profile_picture AS mentee_avatar,
		       f.rating, f.comment, f.created_at AS feedback_date
		FROM sessions s
		LEFT JOIN users u ON s.mentee_id = u.id
		LEFT JOIN feedback f ON s.id = f.session_id
		WHERE s.mentor_id = $1
		ORDER BY s.schedule ASC
	`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows, func(s *models.Session, rows pgx.Rows) error {
		return rows.Scan(&s.ID, &s.MentorID, &s.MenteeID, &s.Topic, &s.Description, &s.Schedule, &s.EndSchedule,
			&s.Status, &s.SkillsToLearn, &s.ZoomLink, &s.MaterialLink, &s.RejectReason, &s.CreatedAt,
			&s.MenteeName, &s.MenteeAvatar,
			&s.FeedbackRating, &s.FeedbackComment, &s.FeedbackDate)
	})
}

func (r *SessionRepo) ListRejectedByMentee(ctx context.Context, menteeID uuid.UUID) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.mentor_id, s.mentee_id, s.topic, s.description, s.schedule, s.end_schedule,
		       s.status, s.skills_to_learn, s.zoom_link, s.material_link, s.reject_reason, s.created_at,
		       u.name AS mentor_name, u.profile_picture AS mentor_avatar
		FROM sessions s
		JOIN users u ON s.mentor_id = u.id
		WHERE s.mentee_id = $1 AND s.status = 'rejected'
		ORDER BY s.created_at DESC
	`, menteeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows, func(s *models.Session, rows pgx.Rows) error {
		return rows.Scan(&s.ID, &s.MentorID, &s.MenteeID, &s.Topic, &s.Description, &s.Schedule, &s.EndSchedule,
			&s.Status, &s.SkillsToLearn, &s.ZoomLink, &s.MaterialLink, &s.RejectReason, &s.CreatedAt,
			&s.MentorName, &s.MentorAvatar)
	})
}

// ForceComplete marks a session completed regardless of its current status.
// Feedback submission relies on this; see the policy note in DESIGN.md.
func (r *SessionRepo) ForceComplete(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE sessions SET status = 'completed' WHERE id = $1", sessionID)
	return err
}

// ListDueReminders returns claimed upcoming sessions starting within the
// given window that haven't been reminded yet.
func (r *SessionRepo) ListDueReminders(ctx context.Context, within time.Duration) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.mentor_id, s.mentee_id, s.topic, s.description, s.schedule, s.end_schedule,
		       s.status, s.skills_to_learn, s.zoom_link, s.material_link, s.reject_reason, s.created_at,
		       u.name AS mentee_name, m.name AS mentor_name
		FROM sessions s
		JOIN users u ON s.mentee_id = u.id
		JOIN users m ON s.mentor_id = m.id
		WHERE s.status = 'upcoming'
		  AND s.reminded = FALSE
		  AND s.schedule BETWEEN NOW() AND NOW() + $1::interval
	`, within.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows, func(s *models.Session, rows pgx.Rows) error {
		return rows.Scan(&s.ID, &s.MentorID, &s.MenteeID, &s.Topic, &s.Description, &s.Schedule, &s.EndSchedule,
			&s.Status, &s.SkillsToLearn, &s.ZoomLink, &s.MaterialLink, &s.RejectReason, &s.CreatedAt,
			&s.MenteeName, &s.MentorName)
	})
}

func (r *SessionRepo) MarkReminded(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE sessions SET reminded = TRUE WHERE id = $1", sessionID)
	return err
}

func scanSessions(rows pgx.Rows, scan func(*models.Session, pgx.Rows) error) ([]models.Session, error) {
	sessions := []models.Session{}
	for rows.Next() {
		var s models.Session
		if err := scan(&s, rows); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
