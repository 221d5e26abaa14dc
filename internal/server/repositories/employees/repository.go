package employees

import (
	"context"

	"github.com/dmitrijs2005/employeehub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	FindByFilter(ctx context.Context, filter models.EmployeeFilter) ([]*models.Employee, error)
	ListNewestFirst(ctx context.Context) ([]*models.Employee, error)
	UpdateByID(ctx context.Context, id string, patch models.EmployeePatch) (*models.Employee, error)
	DeleteByID(ctx context.Context, id string) error
}
