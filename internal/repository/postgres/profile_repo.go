package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-talentpool-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type profileRepository struct {
	db Querier
}

func NewProfileRepository(db Querier) domain.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, name, email, skills, description, grades, resume_link, last_updated`

// scanProfile decodes one row, including the skills JSON text column.
func scanProfile(row pgx.Row) (*domain.StudentProfile, error) {
	var p domain.StudentProfile
	var skillsJSON string

	err := row.Scan(
		&p.ID, &p.UserID, &p.Name, &p.Email, &skillsJSON,
		&p.Description, &p.Grades, &p.ResumeLink, &p.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	p.Skills = []string{}
	if skillsJSON != "" {
		if err := json.Unmarshal([]byte(skillsJSON), &p.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills column: %w", err)
		}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("failed to encode skills column: %w", err)
	}
	return string(raw), nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]domain.StudentProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM student_profiles ORDER BY last_updated DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.StudentProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM student_profiles WHERE user_id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile by user id: %w", err)
	}
	return p, nil
}

// Create inserts directly; the unique constraint on user_id is the only
// duplicate guard, so concurrent creates for one user cannot both land.
func (r *profileRepository) Create(ctx context.Context, profile *domain.StudentProfile) (int64, error) {
	skillsJSON, err := encodeSkills(profile.Skills)
	if err != nil {
		return 0, err
	}

	query := `INSERT INTO student_profiles (user_id, name, email, skills, description, grades, resume_link, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	var id int64
	err = r.db.QueryRow(ctx, query,
		profile.UserID, profile.Name, profile.Email, skillsJSON,
		profile.Description, profile.Grades, profile.ResumeLink, profile.LastUpdated,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("failed to create profile: %w", err)
	}
	return id, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.StudentProfile) error {
	skillsJSON, err := encodeSkills(profile.Skills)
	if err != nil {
		return err
	}

	query := `UPDATE student_profiles
	          SET name = $1, email = $2, skills = $3, description = $4, grades = $5, resume_link = $6, last_updated = $7
	          WHERE user_id = $8`

	tag, err := r.db.Exec(ctx, query,
		profile.Name, profile.Email, skillsJSON,
		profile.Description, profile.Grades, profile.ResumeLink, profile.LastUpdated,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
