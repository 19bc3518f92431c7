package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-talentpool-backend/internal/domain"
	"go-talentpool-backend/internal/repository/postgres"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profileCols = "id, user_id, name, email, skills, description, grades, resume_link, last_updated"

func newProfileRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "user_id", "name", "email", "skills",
		"description", "grades", "resume_link", "last_updated",
	})
}

func TestProfileListAllDecodesSkills(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + profileCols + " FROM student_profiles")).
		WillReturnRows(newProfileRows().
			AddRow(int64(1), int64(10), "Alice", "alice@x.com", `["Java","SQL"]`, "backend", "8.8", "https://cv", now).
			AddRow(int64(2), int64(11), "Bob", "bob@x.com", `[]`, "", "", "", now))

	repo := postgres.NewProfileRepository(mock)
	profiles, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	require.Len(t, profiles, 2)
	assert.Equal(t, []string{"Java", "SQL"}, profiles[0].Skills)
	assert.Equal(t, []string{}, profiles[1].Skills, "empty JSON array stays an empty slice, never nil")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileGetByUserIDNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM student_profiles WHERE user_id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(newProfileRows())

	repo := postgres.NewProfileRepository(mock)
	_, err = repo.GetByUserID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileCreateSerializesSkills(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	stamp := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	profile := &domain.StudentProfile{
		UserID:      10,
		Name:        "Alice",
		Email:       "alice@x.com",
		Skills:      []string{"Java", "SQL"},
		Description: "backend",
		Grades:      "8.8",
		ResumeLink:  "https://cv",
		LastUpdated: stamp,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO student_profiles")).
		WithArgs(int64(10), "Alice", "alice@x.com", `["Java","SQL"]`, "backend", "8.8", "https://cv", stamp).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))

	repo := postgres.NewProfileRepository(mock)
	id, err := repo.Create(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileCreateUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO student_profiles")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "student_profiles_user_id_key"})

	repo := postgres.NewProfileRepository(mock)
	_, err = repo.Create(context.Background(), &domain.StudentProfile{UserID: 10, LastUpdated: time.Now()})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdateNoRowsIsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_profiles")).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := postgres.NewProfileRepository(mock)
	err = repo.Update(context.Background(), &domain.StudentProfile{UserID: 99, LastUpdated: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileUpdateStorageError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	boom := errors.New("connection reset")
	mock.ExpectExec(regexp.QuoteMeta("UPDATE student_profiles")).WillReturnError(boom)

	repo := postgres.NewProfileRepository(mock)
	err = repo.Update(context.Background(), &domain.StudentProfile{UserID: 1, LastUpdated: time.Now()})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
