package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"mentorconnect-backend/internal/models"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// NextRoleID produces the MTR_/MTE_ display identifier for a new user.
func (r *UserRepo) NextRoleID(ctx context.Context, role string) (string, error) {
	prefix := "MTE_"
	if role == models.RoleMentor {
		prefix = "MTR_"
	}

	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users WHERE role = $1", role).Scan(&count)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, count+1), nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, role_id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	user.ID = uuid.New()

	return r.pool.QueryRow(ctx, query,
		user.ID, user.RoleID, user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.CreatedAt)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, role_id, name, email, password_hash, role, bio, skills, interests, profile_picture, created_at, last_login_at
		FROM users WHERE email = $1`

	err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.RoleID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.Bio, &user.Skills, &user.Interests, &user.ProfilePicture, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, role_id, name, email, password_hash, role, bio, skills, interests, profile_picture, created_at, last_login_at
		FROM users WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.RoleID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&user.Bio, &user.Skills, &user.Interests, &user.ProfilePicture, &user.CreatedAt, &user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", time.Now(), userID)
	return err
}

func (r *UserRepo) UpdateProfile(ctx context.Context, user *models.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET name = $1, bio = $2, skills = $3, interests = $4, profile_picture = $5 WHERE id = $6`,
		user.Name, user.Bio, user.Skills, user.Interests, user.ProfilePicture, user.ID,
	)
	return err
}

func (r *UserRepo) ListMentees(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, role_id, name, email, bio FROM users WHERE role = $1 ORDER BY name ASC`,
		models.RoleMentee,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentees := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.RoleID, &u.Name, &u.Email, &u.Bio); err != nil {
			return nil, err
		}
		u.Role = models.RoleMentee
		mentees = append(mentees, u)
	}
	return mentees, rows.Err()
}

// ListMentors returns every mentor with its feedback aggregates, best
// rated first.
func (r *UserRepo) ListMentors(ctx context.Context) ([]models.MentorListing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			u.id,
			u.name,
			u.email,
			u.bio,
			u.skills,
			u.profile_picture,
			COALESCE(ROUND(AVG(f.rating), 1), 0) AS average_rating,
			COUNT(f.id) AS feedback_count,
			COUNT(DISTINCT s.id) AS completed_sessions,
			COUNT(DISTINCT s.mentee_id) AS total_mentees
		FROM users u
		LEFT JOIN sessions s ON u.id = s.mentor_id AND s.status = 'completed'
		LEFT JOIN feedback f ON s.id = f.session_id
		WHERE u.role = 'mentor'
		GROUP BY u.id, u.name, u.email, u.bio, u.skills, u.profile_picture
		ORDER BY average_rating DESC, u.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mentors := []models.MentorListing{}
	for rows.Next() {
		var m models.MentorListing
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Bio, &m.Skills, &m.ProfilePicture,
			&m.AverageRating, &m.FeedbackCount, &m.CompletedSessions, &m.TotalMentees); err != nil {
			return nil, err
		}
		mentors = append(mentors, m)
	}
	return mentors, rows.Err()
}

func (r *UserRepo) GetMentorListing(ctx context.Context, mentorID uuid.UUID) (*models.MentorListing, error) {
	m := &models.MentorListing{}
	err := r.pool.QueryRow(ctx, `
		SELECT
			u.id,
			u.name,
			u.email,
			u.bio,
			u.skills,
			u.profile_picture,
			COALESCE(ROUND(AVG(f.rating), 1), 0) AS average_rating,
			COUNT(f.id) AS feedback_count,
			COUNT(DISTINCT CASE WHEN s.status = 'completed' THEN s.id END) AS completed_sessions,
			COUNT(DISTINCT s.mentee_id) AS total_mentees
		FROM users u
		LEFT JOIN sessions s ON u.id = s.mentor_id
		LEFT JOIN feedback f ON s.id = f.session_id
		WHERE u.id = $1 AND u.role = 'mentor'
		GROUP BY u.id
	`, mentorID).Scan(&m.ID, &m.Name, &m.Email, &m.Bio, &m.Skills, &m.ProfilePicture,
		&m.AverageRating, &m.FeedbackCount, &m.CompletedSessions, &m.TotalMentees)
	if err != nil {
		return nil, err
	}
	return m, nil
}
