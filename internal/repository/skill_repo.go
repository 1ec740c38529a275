package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorconnect-backend/internal/models"
)

type SkillRepo struct {
	pool *pgxpool.Pool
}

func NewSkillRepo(pool *pgxpool.Pool) *SkillRepo {
	return &SkillRepo{pool: pool}
}

// Add records skills a mentee acquired from a session. The unique index on
// (mentee, skill, session) makes repeated derivation runs a no-op.
func (r *SkillRepo) Add(ctx context.Context, menteeID, sessionID uuid.UUID, skills []string) error {
	for _, skill := range skills {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO mentee_skills (id, mentee_id, skill_name, acquired_from_session_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (mentee_id, skill_name, acquired_from_session_id) DO NOTHING
		`, uuid.New(), menteeID, skill, sessionID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SkillRepo) ListByMentee(ctx context.Context, menteeID uuid.UUID) ([]models.MenteeSkill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ms.id, ms.mentee_id, ms.skill_name, ms.acquired_from_session_id, ms.acquired_date,
		       s.topic AS session_topic, s.schedule AS session_date
		FROM mentee_skills ms
		LEFT JOIN sessions s ON ms.acquired_from_session_id = s.id
		WHERE ms.mentee_id = $1
		ORDER BY ms.acquired_date DESC
	`, menteeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := []models.MenteeSkill{}
	for rows.Next() {
		var s models.MenteeSkill
		if err := rows.Scan(&s.ID, &s.MenteeID, &s.SkillName, &s.SessionID, &s.AcquiredDate,
			&s.SessionTopic, &s.SessionDate); err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}
