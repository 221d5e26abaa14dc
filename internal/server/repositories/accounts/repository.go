package accounts

import (
	"context"

	"github.com/dmitrijs2005/employeehub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	FindByHandleOrEmail(ctx context.Context, login string) (*models.Account, error)
}
