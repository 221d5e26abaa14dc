package graphql

import (
	"github.com/dmitrijs2005/employeehub/internal/server/models"
	"github.com/dmitrijs2005/employeehub/internal/server/services"
	"github.com/graph-gophers/graphql-go"
)

// Response envelopes. A response only exists for a successful operation,
// so Success is always true.

type authResponse struct {
	message string
	token   *string
	user    *userResolver
}

func (r *authResponse) Success() bool       { return true }
func (r *authResponse) Message() string     { return r.message }
func (r *authResponse) Token() *string      { return r.token }
func (r *authResponse) User() *userResolver { return r.user }

type employeeResponse struct {
	message  string
	employee *employeeResolver
}

func newEmployeeResponse(message string, e *models.Employee) *employeeResponse {
	return &employeeResponse{message: message, employee: &employeeResolver{e: e}}
}

func (r *employeeResponse) Success() bool               { return true }
func (r *employeeResponse) Message() string             { return r.message }
func (r *employeeResponse) Employee() *employeeResolver { return r.employee }

type employeesResponse struct {
	message   string
	employees []*employeeResolver
}

func newEmployeesResponse(message string, list []*models.Employee) *employeesResponse {
	out := make([]*employeeResolver, len(list))
	for i, e := range list {
		out[i] = &employeeResolver{e: e}
	}
	return &employeesResponse{message: message, employees: out}
}

func (r *employeesResponse) Success() bool                  { return true }
func (r *employeesResponse) Message() string                { return r.message }
func (r *employeesResponse) Employees() []*employeeResolver { return r.employees }

type deleteResponse struct {
	message string
}

func (r *deleteResponse) Success() bool   { return true }
func (r *deleteResponse) Message() string { return r.message }

// Entities

type userResolver struct {
	a *models.Account
}

func (u *userResolver) ID() graphql.ID   { return graphql.ID(u.a.ID) }
func (u *userResolver) Username() string { return u.a.UserName }
func (u *userResolver) Email() string    { return u.a.Email }
func (u *userResolver) CreatedAt() *Date { return NewDate(u.a.CreatedAt) }
func (u *userResolver) UpdatedAt() *Date { return NewDate(u.a.UpdatedAt) }

type employeeResolver struct {
	e *models.Employee
}

func (r *employeeResolver) ID() graphql.ID      { return graphql.ID(r.e.ID) }
func (r *employeeResolver) FirstName() string   { return r.e.FirstName }
func (r *employeeResolver) LastName() string    { return r.e.LastName }
func (r *employeeResolver) Email() string       { return r.e.Email }
func (r *employeeResolver) Gender() *string     { return r.e.Gender }
func (r *employeeResolver) Designation() string { return r.e.Designation }
func (r *employeeResolver) Salary() float64     { return r.e.Salary }
func (r *employeeResolver) DateOfJoining() Date { return Date{Time: r.e.DateOfJoining} }
func (r *employeeResolver) Department() string  { return r.e.Department }
func (r *employeeResolver) CreatedAt() *Date    { return NewDate(r.e.CreatedAt) }
func (r *employeeResolver) UpdatedAt() *Date    { return NewDate(r.e.UpdatedAt) }

func (r *employeeResolver) EmployeePhoto() *photoResolver {
	if r.e.Photo == nil {
		return nil
	}
	return &photoResolver{p: r.e.Photo}
}

type photoResolver struct {
	p *models.EmployeePhoto
}

func (r *photoResolver) URL() *string      { return &r.p.URL }
func (r *photoResolver) PublicID() *string { return &r.p.PublicID }

// Inputs

type employeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	Gender        *string
	Designation   string
	Salary        float64
	DateOfJoining Date
	Department    string
	EmployeePhoto *string
}

func (in employeeInput) toService() services.EmployeeInput {
	return services.EmployeeInput{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Gender:        in.Gender,
		Designation:   in.Designation,
		Salary:        in.Salary,
		DateOfJoining: in.DateOfJoining.Raw,
		Department:    in.Department,
		EmployeePhoto: in.EmployeePhoto,
	}
}

type employeeUpdateInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Gender        *string
	Designation   *string
	Salary        *float64
	DateOfJoining *Date
	Department    *string
	EmployeePhoto *string
}

func (in employeeUpdateInput) toService() services.EmployeeUpdateInput {
	out := services.EmployeeUpdateInput{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Gender:        in.Gender,
		Designation:   in.Designation,
		Salary:        in.Salary,
		Department:    in.Department,
		EmployeePhoto: in.EmployeePhoto,
	}
	if in.DateOfJoining != nil {
		raw := in.DateOfJoining.Raw
		out.DateOfJoining = &raw
	}
	return out
}
