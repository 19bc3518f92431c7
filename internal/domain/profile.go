package domain

import (
	"context"
	"time"
)

// StudentProfile is a talent-pool entry. At most one exists per user,
// enforced by a unique constraint on user_id. Skills travel as a JSON
// array on the wire and are stored as a JSON-encoded text column.
type StudentProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId" validate:"required"`
	Name        string    `json:"name"`
	Email       string    `json:"email" validate:"omitempty,email"`
	Skills      []string  `json:"skills"`
	Description string    `json:"description"`
	Grades      string    `json:"grades"`
	ResumeLink  string    `json:"resumeLink"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ProfileRepository interface {
	ListAll(ctx context.Context) ([]StudentProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*StudentProfile, error)
	Create(ctx context.Context, profile *StudentProfile) (int64, error)
	Update(ctx context.Context, profile *StudentProfile) error
}

type ProfileUsecase interface {
	List(ctx context.Context) ([]StudentProfile, error)
	GetByUser(ctx context.Context, userID int64) (*StudentProfile, error)
	Create(ctx context.Context, profile *StudentProfile) (int64, error)
	Update(ctx context.Context, userID int64, profile *StudentProfile) error
}
