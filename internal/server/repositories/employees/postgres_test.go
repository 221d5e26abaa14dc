package employees

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQ     = `(?s)^INSERT\s+INTO\s+employees\s*\(first_name,.*photo_public_id\)\s*VALUES\s*\(\$1,.*\$10\)\s*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`
	selectByIDQ = `(?s)^SELECT\s+id,.*FROM\s+employees\s+WHERE\s+id\s*=\s*\$1$`
	listQ       = `(?s)^SELECT\s+id,.*FROM\s+employees\s+ORDER\s+BY\s+created_at\s+DESC$`
	deleteQ     = `^DELETE\s+FROM\s+employees\s+WHERE\s+id\s*=\s*\$1$`
)

var columns = []string{"id", "first_name", "last_name", "email", "gender", "designation", "salary",
	"date_of_joining", "department", "photo_url", "photo_public_id", "created_at", "updated_at"}

var (
	joined  = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	created = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func strPtr(s string) *string { return &s }

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("Ann", "Lee", "ann@x.io", "Female", "Dev", 5000.0, joined, "R&D", nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("e-1", created, created))

	got, err := repo.Create(context.Background(), &models.Employee{
		FirstName: "Ann", LastName: "Lee", Email: "ann@x.io", Gender: strPtr("Female"),
		Designation: "Dev", Salary: 5000, DateOfJoining: joined, Department: "R&D",
	})
	require.NoError(t, err)
	assert.Equal(t, "e-1", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_WithPhoto(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WithArgs("Ann", "Lee", "ann@x.io", nil, "Dev", 5000.0, joined, "R&D", "http://h/b/k.png", "k.png").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("e-1", created, created))

	_, err := repo.Create(context.Background(), &models.Employee{
		FirstName: "Ann", LastName: "Lee", Email: "ann@x.io",
		Designation: "Dev", Salary: 5000, DateOfJoining: joined, Department: "R&D",
		Photo: &models.EmployeePhoto{URL: "http://h/b/k.png", PublicID: "k.png"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

	_, err := repo.Create(context.Background(), &models.Employee{Email: "ann@x.io"})

	var dup *common.DuplicateKeyError
	require.True(t, errors.As(err, &dup), "want DuplicateKeyError, got %v", err)
	assert.Equal(t, "email", dup.Field)
}

func TestFindByID(t *testing.T) {
	t.Run("found with photo and no gender", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(selectByIDQ).WithArgs("e-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("e-1", "Ann", "Lee", "ann@x.io", nil, "Dev", 5000.0,
				joined, "R&D", "http://h/b/k.png", "k.png", created, created))

		got, err := repo.FindByID(context.Background(), "e-1")
		require.NoError(t, err)
		assert.Nil(t, got.Gender)
		require.NotNil(t, got.Photo)
		assert.Equal(t, "k.png", got.Photo.PublicID)
		assert.Equal(t, joined, got.DateOfJoining)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(selectByIDQ).WithArgs("nope").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(context.Background(), "nope")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(selectByIDQ).WithArgs("e-1").WillReturnError(errors.New("boom"))

		_, err := repo.FindByID(context.Background(), "e-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
	})
}

func TestListNewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	later := created.Add(time.Hour)
	mock.ExpectQuery(listQ).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("e-2", "Bo", "Ng", "bo@x.io", "Male", "QA", 3000.0, joined, "Ops", nil, nil, later, later).
			AddRow("e-1", "Ann", "Lee", "ann@x.io", "Female", "Dev", 5000.0, joined, "R&D", nil, nil, created, created))

	got, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e-2", got[0].ID)
	assert.Equal(t, "Male", *got[0].Gender)
	assert.Nil(t, got[0].Photo)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListNewestFirst_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WillReturnRows(sqlmock.NewRows(columns))

	got, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindByFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter models.EmployeeFilter
		query  string
		args   []any
	}{
		{
			name:   "designation only",
			filter: models.EmployeeFilter{Designation: "Dev"},
			query:  `(?s)FROM\s+employees\s+WHERE\s+designation\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`,
			args:   []any{"Dev"},
		},
		{
			name:   "department only",
			filter: models.EmployeeFilter{Department: "Ops"},
			query:  `(?s)FROM\s+employees\s+WHERE\s+department\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`,
			args:   []any{"Ops"},
		},
		{
			name:   "both",
			filter: models.EmployeeFilter{Designation: "Dev", Department: "Ops"},
			query:  `(?s)FROM\s+employees\s+WHERE\s+designation\s*=\s*\$1\s+AND\s+department\s*=\s*\$2\s+ORDER\s+BY`,
			args:   []any{"Dev", "Ops"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectQuery(tt.query)
			if len(tt.args) == 1 {
				exp.WithArgs(tt.args[0])
			} else {
				exp.WithArgs(tt.args[0], tt.args[1])
			}
			exp.WillReturnRows(sqlmock.NewRows(columns))

			_, err := repo.FindByFilter(context.Background(), tt.filter)
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindByFilter_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+employees`).WillReturnError(errors.New("boom"))

	_, err := repo.FindByFilter(context.Background(), models.EmployeeFilter{Department: "Ops"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestUpdateByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	salary := 7000.0
	mock.ExpectQuery(`(?s)^UPDATE\s+employees\s+SET\s+designation\s*=\s*\$1,\s*salary\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$3\s+RETURNING\s+id,`).
		WithArgs("Lead", 7000.0, "e-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("e-1", "Ann", "Lee", "ann@x.io", "Female", "Lead", 7000.0,
			joined, "R&D", nil, nil, created, created.Add(time.Minute)))

	got, err := repo.UpdateByID(context.Background(), "e-1", models.EmployeePatch{Designation: strPtr("Lead"), Salary: &salary})
	require.NoError(t, err)
	assert.Equal(t, "Lead", got.Designation)
	assert.Equal(t, 7000.0, got.Salary)
	assert.Equal(t, "Lee", got.LastName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByID_Photo(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+employees\s+SET\s+photo_url\s*=\s*\$1,\s*photo_public_id\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$3`).
		WithArgs("http://h/b/k.png", "k.png", "e-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("e-1", "Ann", "Lee", "ann@x.io", nil, "Dev", 5000.0,
			joined, "R&D", "http://h/b/k.png", "k.png", created, created))

	got, err := repo.UpdateByID(context.Background(), "e-1", models.EmployeePatch{
		Photo: &models.EmployeePhoto{URL: "http://h/b/k.png", PublicID: "k.png"},
	})
	require.NoError(t, err)
	require.NotNil(t, got.Photo)
	assert.Equal(t, "http://h/b/k.png", got.Photo.URL)
}

func TestUpdateByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^UPDATE\s+employees`).WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateByID(context.Background(), "e-9", models.EmployeePatch{Department: strPtr("Ops")})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdateByID_EmptyPatchSkipsWrite(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDQ).WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("e-1", "Ann", "Lee", "ann@x.io", "Female", "Dev", 5000.0,
			joined, "R&D", nil, nil, created, created))

	got, err := repo.UpdateByID(context.Background(), "e-1", models.EmployeePatch{})
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, created, got.UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByID_EmptyPatchNotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByIDQ).WithArgs("e-9").WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateByID(context.Background(), "e-9", models.EmployeePatch{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByID_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^UPDATE\s+employees`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"})

	_, err := repo.UpdateByID(context.Background(), "e-1", models.EmployeePatch{Email: strPtr("bo@x.io")})
	assert.EqualError(t, err, "email already exists")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestDeleteByID(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteQ).WithArgs("e-1").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.DeleteByID(context.Background(), "e-1"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteQ).WithArgs("e-1").WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.DeleteByID(context.Background(), "e-1"), common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectExec(deleteQ).WithArgs("e-1").WillReturnError(errors.New("boom"))
		err := repo.DeleteByID(context.Background(), "e-1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db error")
	})
}
