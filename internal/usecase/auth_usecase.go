package usecase

import (
	"context"
	"errors"
	"time"

	"go-talentpool-backend/internal/domain"
	"go-talentpool-backend/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
)

type authUsecase struct {
	userRepo   domain.UserRepository
	bcryptCost int
}

func NewAuthUsecase(userRepo domain.UserRepository, bcryptCost int) domain.AuthUsecase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authUsecase{userRepo: userRepo, bcryptCost: bcryptCost}
}

func (u *authUsecase) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperror.BadRequest("Email and password are required.")
	}

	// Only the bcrypt hash is ever persisted.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), u.bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	id, err := u.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("User with this email already exists.")
		}
		return nil, err
	}

	user.ID = id
	user.PasswordHash = ""
	return user, nil
}

func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, apperror.BadRequest("Email and password are required.")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Unknown email and bad password are indistinguishable to the caller.
			return nil, apperror.Unauthorized("Invalid email or password.")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthorized("Invalid email or password.")
	}

	sanitized := *user
	sanitized.PasswordHash = ""
	return &sanitized, nil
}
