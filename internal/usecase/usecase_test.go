package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-talentpool-backend/internal/domain"
	"go-talentpool-backend/internal/usecase"
	"go-talentpool-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) ListAll(ctx context.Context) ([]domain.StudentProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentProfile), args.Error(1)
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.StudentProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentProfile), args.Error(1)
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.StudentProfile) (int64, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.StudentProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok, "expected *apperror.AppError, got %T: %v", err, err)
	return appErr.Code
}

func TestRegisterThenAuthenticate(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, bcrypt.MinCost)
	ctx := context.Background()

	var stored *domain.User
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			copied := *u
			copied.ID = 42
			stored = &copied
		}).
		Return(int64(42), nil)

	user, err := uc.Register(ctx, "alice@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Empty(t, user.PasswordHash, "hash must never leave the usecase")

	// The stored hash must not be the raw password.
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw1", stored.PasswordHash)

	mockRepo.On("GetByEmail", ctx, "alice@x.com").Return(stored, nil)

	t.Run("same pair authenticates with same id", func(t *testing.T) {
		got, err := uc.Authenticate(ctx, "alice@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Empty(t, got.PasswordHash)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, err := uc.Authenticate(ctx, "alice@x.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, 401, appErrCode(t, err))
	})
}

func TestRegisterValidation(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, bcrypt.MinCost)

	t.Run("empty email", func(t *testing.T) {
		_, err := uc.Register(context.Background(), "", "pw")
		require.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := uc.Register(context.Background(), "a@x.com", "")
		require.Error(t, err)
		assert.Equal(t, 400, appErrCode(t, err))
	})

	mockRepo.AssertNotCalled(t, "Create")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, bcrypt.MinCost)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(int64(0), domain.ErrDuplicate).Once()

	_, err := uc.Register(ctx, "taken@x.com", "pw")
	require.Error(t, err)
	assert.Equal(t, 409, appErrCode(t, err))
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, bcrypt.MinCost)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "ghost@x.com").Return(nil, domain.ErrNotFound)

	_, err := uc.Authenticate(ctx, "ghost@x.com", "pw")
	require.Error(t, err)
	assert.Equal(t, 401, appErrCode(t, err))
}

func TestProfileCreateConflictCarriesExistingID(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, validator.New())
	ctx := context.Background()

	profile := &domain.StudentProfile{UserID: 7, Name: "Alice", Skills: []string{"Java"}}

	mockRepo.On("Create", ctx, profile).Return(int64(0), domain.ErrDuplicate)
	mockRepo.On("GetByUserID", ctx, int64(7)).
		Return(&domain.StudentProfile{ID: 11, UserID: 7}, nil)

	_, err := uc.Create(ctx, profile)
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
	assert.Equal(t, int64(11), appErr.Details["profileId"])
}

func TestProfileCreateStampsLastUpdated(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, validator.New())
	ctx := context.Background()

	t.Run("zero timestamp is stamped to now", func(t *testing.T) {
		profile := &domain.StudentProfile{UserID: 1}
		mockRepo.On("Create", ctx, profile).Return(int64(5), nil).Once()

		before := time.Now()
		id, err := uc.Create(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
		assert.False(t, profile.LastUpdated.Before(before))
	})

	t.Run("caller timestamp is honored on create", func(t *testing.T) {
		supplied := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		profile := &domain.StudentProfile{UserID: 2, LastUpdated: supplied}
		mockRepo.On("Create", ctx, profile).Return(int64(6), nil).Once()

		_, err := uc.Create(ctx, profile)
		require.NoError(t, err)
		assert.Equal(t, supplied, profile.LastUpdated)
	})
}

func TestProfileCreateRequiresUserID(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, validator.New())

	_, err := uc.Create(context.Background(), &domain.StudentProfile{Name: "No User"})
	require.Error(t, err)
	assert.Equal(t, 400, appErrCode(t, err))
	mockRepo.AssertNotCalled(t, "Create")
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing user yields not found", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validator.New())

		mockRepo.On("Update", ctx, mock.Anything).Return(domain.ErrNotFound)

		err := uc.Update(ctx, 99, &domain.StudentProfile{Name: "Ghost"})
		require.Error(t, err)
		assert.Equal(t, 404, appErrCode(t, err))
	})

	t.Run("caller timestamp is ignored on update", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validator.New())

		stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		profile := &domain.StudentProfile{Name: "Alice B", LastUpdated: stale}
		mockRepo.On("Update", ctx, profile).Return(nil)

		require.NoError(t, uc.Update(ctx, 7, profile))
		assert.Equal(t, int64(7), profile.UserID)
		assert.True(t, profile.LastUpdated.After(stale))
	})
}
