package usecase

import (
	"context"
	"errors"
	"time"

	"go-talentpool-backend/internal/domain"
	"go-talentpool-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	validate    *validator.Validate
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo, validate: validate}
}

func (u *profileUsecase) List(ctx context.Context) ([]domain.StudentProfile, error) {
	return u.profileRepo.ListAll(ctx)
}

func (u *profileUsecase) GetByUser(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found for this user.")
		}
		return nil, err
	}
	return profile, nil
}

// Create inserts the profile and negotiates duplicates: when the unique
// constraint on user_id fires, the existing row's id is returned inside a
// 409 so the caller can redirect the write to PUT.
func (u *profileUsecase) Create(ctx context.Context, profile *domain.StudentProfile) (int64, error) {
	if err := u.validate.Struct(profile); err != nil {
		return 0, apperror.BadRequest(err.Error())
	}

	// Caller-supplied timestamps are honored on create only.
	if profile.LastUpdated.IsZero() {
		profile.LastUpdated = time.Now()
	}

	id, err := u.profileRepo.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return 0, u.conflictWithExistingID(ctx, profile.UserID)
		}
		return 0, err
	}
	return id, nil
}

func (u *profileUsecase) conflictWithExistingID(ctx context.Context, userID int64) error {
	conflict := apperror.Conflict("A profile already exists for this user. Please update it using PUT.")
	existing, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		// The row that caused the violation is gone or unreadable; the 409
		// still stands, just without the id hint.
		return conflict
	}
	return conflict.WithDetails(map[string]any{"profileId": existing.ID})
}

func (u *profileUsecase) Update(ctx context.Context, userID int64, profile *domain.StudentProfile) error {
	profile.UserID = userID
	// Updates always re-stamp; a stale caller timestamp never wins.
	profile.LastUpdated = time.Now()

	if err := u.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}

	err := u.profileRepo.Update(ctx, profile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Profile not found for this user, or no changes were made.")
		}
		return err
	}
	return nil
}
