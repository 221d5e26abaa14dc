package employees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/dbx"
	"github.com/dmitrijs2005/employeehub/internal/server/models"
)

const employeeColumns = `id, first_name, last_name, email, gender, designation, salary,
		 date_of_joining, department, photo_url, photo_public_id, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (*models.Employee, error) {
	var (
		e        models.Employee
		gender   sql.NullString
		photoURL sql.NullString
		photoID  sql.NullString
	)

	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &gender, &e.Designation, &e.Salary,
		&e.DateOfJoining, &e.Department, &photoURL, &photoID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if gender.Valid {
		e.Gender = &gender.String
	}
	if photoURL.Valid || photoID.Valid {
		e.Photo = &models.EmployeePhoto{URL: photoURL.String, PublicID: photoID.String}
	}

	return &e, nil
}

func photoColumns(p *models.EmployeePhoto) (sql.NullString, sql.NullString) {
	if p == nil {
		return sql.NullString{}, sql.NullString{}
	}
	return sql.NullString{String: p.URL, Valid: true}, sql.NullString{String: p.PublicID, Valid: true}
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func wrapWriteError(err error) error {
	if field, ok := dbx.DuplicateField(err, "employees", nil); ok {
		return &common.DuplicateKeyError{Field: field}
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) Create(ctx context.Context, employee *models.Employee) (*models.Employee, error) {

	query :=
		`INSERT INTO employees (first_name, last_name, email, gender, designation, salary,
		 date_of_joining, department, photo_url, photo_public_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at
		 `

	photoURL, photoID := photoColumns(employee.Photo)

	err := r.db.QueryRowContext(ctx, query,
		employee.FirstName, employee.LastName, employee.Email, nullable(employee.Gender), employee.Designation,
		employee.Salary, employee.DateOfJoining, employee.Department, photoURL, photoID,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)

	if err != nil {
		return nil, wrapWriteError(err)
	}

	return employee, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return e, nil
}

// FindByFilter returns employees matching every non-empty filter field,
// newest first.
func (r *PostgresRepository) FindByFilter(ctx context.Context, filter models.EmployeeFilter) ([]*models.Employee, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Designation != "" {
		args = append(args, filter.Designation)
		conds = append(conds, fmt.Sprintf("designation = $%d", len(args)))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		conds = append(conds, fmt.Sprintf("department = $%d", len(args)))
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	return r.list(ctx, query, args...)
}

func (r *PostgresRepository) ListNewestFirst(ctx context.Context) ([]*models.Employee, error) {
	return r.FindByFilter(ctx, models.EmployeeFilter{})
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// UpdateByID writes only the columns set in patch and bumps updated_at.
// It returns the stored record after the update. An empty patch writes
// nothing and returns the record as stored.
func (r *PostgresRepository) UpdateByID(ctx context.Context, id string, patch models.EmployeePatch) (*models.Employee, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.FirstName != nil {
		set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.Gender != nil {
		set("gender", *patch.Gender)
	}
	if patch.Designation != nil {
		set("designation", *patch.Designation)
	}
	if patch.Salary != nil {
		set("salary", *patch.Salary)
	}
	if patch.DateOfJoining != nil {
		set("date_of_joining", *patch.DateOfJoining)
	}
	if patch.Department != nil {
		set("department", *patch.Department)
	}
	if patch.Photo != nil {
		set("photo_url", patch.Photo.URL)
		set("photo_public_id", patch.Photo.PublicID)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), employeeColumns)

	e, err := scanEmployee(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, wrapWriteError(err)
	}

	return e, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
