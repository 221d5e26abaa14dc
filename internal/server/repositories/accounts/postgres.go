package accounts

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the account and fills ID and timestamps. A taken username
// or email comes back as *common.DuplicateKeyError.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.UserName, account.Email, account.PasswordHash).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if field, ok := dbx.DuplicateField(err, "accounts", nil); ok {
			return nil, &common.DuplicateKeyError{Field: field}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// FindByHandleOrEmail looks the account up by exact username or by
// lower-cased email. A username match wins if both exist.
func (r *PostgresRepository) FindByHandleOrEmail(ctx context.Context, login string) (*models.Account, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at, updated_at FROM accounts
		 WHERE username = $1 OR email = $2
		 ORDER BY (username = $1) DESC
		 LIMIT 1
		 `

	account := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, login, strings.ToLower(login)).
		Scan(&account.ID, &account.UserName, &account.Email, &account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}
