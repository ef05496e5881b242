package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"recipebox/internal/models"
	"recipebox/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name         string
		username     string
		mockBehavior func()
		expectedCode string
	}{
		{
			name:     "Success",
			username: "anna",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"username", "password", "dietary_restrictions", "allergies", "points"}).
					AddRow("anna", "hash", "vegan,kosher", "", 150)
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."username" LIMIT $2`)).
					WithArgs("anna", 1).
					WillReturnRows(rows)
			},
		},
		{
			name:     "Not Found",
			username: "ghost",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."username" LIMIT $2`)).
					WithArgs("ghost", 1).
					WillReturnRows(sqlmock.NewRows([]string{"username"}))
			},
			expectedCode: models.CodeNotFound,
		},
		{
			name:     "Store Failure",
			username: "anna",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
					WillReturnError(errors.New("connection reset"))
			},
			expectedCode: models.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByUsername(ctx, tt.username)

			if tt.expectedCode != "" {
				assert.True(t, models.HasCode(err, tt.expectedCode), "got %v", err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "anna", user.Username)
				assert.Equal(t, models.TagList{"vegan", "kosher"}, user.DietaryRestrictions)
				assert.Equal(t, 150, user.Points)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create_Duplicate(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "anna", Password: "hash"}))
	err := repo.Create(ctx, &models.User{Username: "anna", Password: "other"})
	assert.True(t, models.HasCode(err, models.CodeConflict), "got %v", err)

	exists, err := repo.Exists(ctx, "anna")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_UpdateTags(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	testutil.CreateUser(t, db, "anna", 0)

	require.NoError(t, repo.UpdateDietary(ctx, "anna", models.TagList{" vegan", "", "halal "}))
	require.NoError(t, repo.UpdateAllergies(ctx, "anna", models.TagList{"peanuts"}))

	user, err := repo.GetByUsername(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, models.TagList{"vegan", "halal"}, user.DietaryRestrictions)
	assert.Equal(t, models.TagList{"peanuts"}, user.Allergies)

	err = repo.UpdateDietary(ctx, "ghost", models.TagList{"vegan"})
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestUserRepository_DebitPoints(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	debitSQL := regexp.QuoteMeta(`UPDATE "users" SET "points"=points - $1 WHERE username = $2 AND points >= $3`)

	mock.ExpectExec(debitSQL).WithArgs(100, "anna", 100).WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.DebitPoints(ctx, "anna", 100)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(debitSQL).WithArgs(500, "anna", 500).WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.DebitPoints(ctx, "anna", 500)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreditPoints(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	creditSQL := regexp.QuoteMeta(`UPDATE "users" SET "points"=points + $1 WHERE username = $2`)

	mock.ExpectExec(creditSQL).WithArgs(100, "owner").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.CreditPoints(ctx, "owner", 100))

	mock.ExpectExec(creditSQL).WithArgs(50, "ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.CreditPoints(ctx, "ghost", 50)
	assert.True(t, models.HasCode(err, models.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Points(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	pointsSQL := regexp.QuoteMeta(`SELECT "points" FROM "users" WHERE username = $1 LIMIT $2`)

	mock.ExpectQuery(pointsSQL).WithArgs("anna", 1).
		WillReturnRows(sqlmock.NewRows([]string{"points"}).AddRow(250))
	points, err := repo.Points(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, 250, points)

	mock.ExpectQuery(pointsSQL).WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"points"}))
	points, err = repo.Points(ctx, "ghost")
	require.NoError(t, err)
	assert.Zero(t, points)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: reviews.username, reviews.recipe_id")))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
}
