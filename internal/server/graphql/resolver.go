// Package graphql serves the employee API over GraphQL: the schema, its
// resolvers and the HTTP server that hosts them.
package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/logging"
	"github.com/dmitrijs2005/employeehub/internal/server/apperr"
	"github.com/dmitrijs2005/employeehub/internal/server/auth"
	"github.com/dmitrijs2005/employeehub/internal/server/metrics"
	"github.com/dmitrijs2005/employeehub/internal/server/models"
	"github.com/dmitrijs2005/employeehub/internal/server/services"
	"github.com/graph-gophers/graphql-go"
)

const (
	msgLoginSuccessful  = "login successful"
	msgAccountCreated   = "account created"
	msgEmployeesFetched = "employees fetched"
	msgEmployeeFetched  = "employee fetched"
	msgEmployeeCreated  = "employee created"
	msgEmployeeUpdated  = "employee updated"
	msgEmployeeDeleted  = "employee deleted"
)

type AccountService interface {
	Signup(ctx context.Context, username, email, password string) (*models.Account, error)
	Login(ctx context.Context, login, password string) (*services.LoginResult, error)
}

type EmployeeService interface {
	List(ctx context.Context) ([]*models.Employee, error)
	GetByID(ctx context.Context, eid string) (*models.Employee, error)
	Search(ctx context.Context, designation, department *string) ([]*models.Employee, error)
	Add(ctx context.Context, in services.EmployeeInput) (*models.Employee, error)
	Update(ctx context.Context, eid string, in services.EmployeeUpdateInput) (*models.Employee, error)
	Delete(ctx context.Context, eid string) error
}

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	accounts    AccountService
	employees   EmployeeService
	metrics     *metrics.Metrics
	logger      logging.Logger
	requireAuth bool
}

func NewResolver(as AccountService, es EmployeeService, m *metrics.Metrics, l logging.Logger, requireAuth bool) *Resolver {
	return &Resolver{
		accounts:    as,
		employees:   es,
		metrics:     m,
		logger:      l.With("module", "graphql"),
		requireAuth: requireAuth,
	}
}

// observe normalises *errp into an *apperr.Error, logs failures and records
// the operation in metrics. It is deferred by every root field.
func (r *Resolver) observe(ctx context.Context, operation string, start time.Time, errp *error) {
	code := metrics.CodeOK

	if *errp != nil {
		ae := apperr.From(*errp, apperr.CodeBadRequest)
		*errp = ae
		code = string(ae.Code)

		args := []any{"operation", operation, "code", code, "error", ae.Message}
		if ae.Err != nil && len(ae.Details) == 0 {
			args = append(args, "cause", ae.Err.Error())
		}
		r.logger.Warn(ctx, "operation failed", args...)
	} else {
		r.logger.Debug(ctx, "operation completed", "operation", operation)
	}

	if r.metrics != nil {
		r.metrics.Observe(operation, code, time.Since(start))
	}
}

// authorize enforces the bearer-token gate on employee operations when enabled.
func (r *Resolver) authorize(ctx context.Context) error {
	if !r.requireAuth {
		return nil
	}
	if _, ok := auth.ClaimsFromContext(ctx); ok {
		return nil
	}
	if errors.Is(tokenErrorFromContext(ctx), common.ErrTokenExpired) {
		return apperr.New(apperr.CodeUnauthenticated, "token expired")
	}
	return apperr.New(apperr.CodeUnauthenticated, "authentication required")
}

// Queries

func (r *Resolver) Login(ctx context.Context, args struct{ Login, Password string }) (res *authResponse, err error) {
	defer r.observe(ctx, "login", time.Now(), &err)

	out, err := r.accounts.Login(ctx, args.Login, args.Password)
	if err != nil {
		return nil, apperr.From(err, apperr.CodeUnauthenticated)
	}

	token := out.Token
	return &authResponse{
		message: msgLoginSuccessful,
		token:   &token,
		user:    &userResolver{a: out.Account},
	}, nil
}

func (r *Resolver) GetAllEmployees(ctx context.Context) (res *employeesResponse, err error) {
	defer r.observe(ctx, "getAllEmployees", time.Now(), &err)

	if err := r.authorize(ctx); err != nil {
		return nil, err
	}

	list, err := r.employees.List(ctx)
	if err != nil {
		return nil, err
	}
	return newEmployeesResponse(msgEmployeesFetched, list), nil
}

func (r *Resolver) SearchEmployeeByEid(ctx context.Context, args struct{ Eid graphql.ID }) (res *employeeResponse, err error) {
	defer r.observe(ctx, "searchEmployeeByEid", time.Now(), &err)

	if err := r.authorize(ctx); err != nil {
		return nil, err
	}

	e, err := r.employees.GetByID(ctx, string(args.Eid))
	if err != nil {
		return nil, err
	}
	return newEmployeeResponse(msgEmployeeFetched, e), nil
}

func (r *Resolver) SearchEmployeesByDesignationOrDepartment(ctx context.Context, args struct {
	Designation *string
	Department  *string
}) (res *employeesResponse, err error) {
	defer r.observe(ctx, "searchEmployeesByDesignationOrDepartment", time.Now(), &err)

	if err := r.authorize(ctx); err != nil {
		return nil, err
	}

	list, err := r.employees.Search(ctx, args.Designation, args.Department)
	if err != nil {
		return nil, err
	}
	return newEmployeesResponse(msgEmployeesFetched, list), nil
}

// Mutations

func (r *Resolver) Signup(ctx context.Context, args struct{ Username, Email, Password string }) (res *authResponse, err error) {
	defer r.observe(ctx, "signup", time.Now(), &err)

	account, err := r.accounts.Signup(ctx, args.Username, args.Email, args.Password)
	if err != nil {
		return nil, err
	}
	return &authResponse{message: msgAccountCreated, user: &userResolver{a: account}}, nil
}

func (r *Resolver) AddEmployee(ctx context.Context, args struct{ Input employeeInput }) (res *employeeResponse, err error) {
	defer r.observe(ctx, "addEmployee", time.Now(), &err)

	if err := r.authorize(ctx); err != nil {
		return nil, err
	}

	e, err := r.employees.Add(ctx, args.Input.toService())
	if err != nil {
		return nil, err
	}
	return newEmployeeResponse(msgEmployeeCreated, e), nil
}

func (r *Resolver) UpdateEmployeeByEid(ctx context.Context, args struct {
	Eid   graphql.ID
	Input employeeUpdateInput
}) (res *employeeResponse, err error) {
	defer r.observe(ctx, "updateEmployeeByEid", time.Now(), &err)

	if err := r.authorize(ctx); err != nil {
		return nil, err
	}

	e, err := r.employees.Update(ctx, string(args.Eid), args.Input.toService())
	if err != nil {
		return nil, err
	}
	return newEmployeeResponse(msgEmployeeUpdated, e), nil
}

func (r *Resolver) DeleteEmployeeByEid(ctx context.Context, args struct{ Eid graphql.ID }) (res *deleteResponse, err error) {
	defer r.observe(ctx, "deleteEmployeeByEid", time.Now(), &err)

	if err := r.authorize(ctx); err != nil {
		return nil, err
	}

	if err := r.employees.Delete(ctx, string(args.Eid)); err != nil {
		return nil, err
	}
	return &deleteResponse{message: msgEmployeeDeleted}, nil
}
