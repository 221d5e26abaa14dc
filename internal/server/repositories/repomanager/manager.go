package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/employeehub/internal/dbx"
	"github.com/dmitrijs2005/employeehub/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/employeehub/internal/server/repositories/employees"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Employees(db dbx.DBTX) employees.Repository
}
