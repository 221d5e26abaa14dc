package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/dbx"
	"github.com/dmitrijs2005/employeehub/internal/server/models"
	"github.com/dmitrijs2005/employeehub/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/employeehub/internal/server/repositories/employees"
	"github.com/google/uuid"
)

// memStore imitates the Postgres repositories closely enough for the
// service flows: unique columns, generated ids and timestamps.
type memStore struct {
	mu        sync.Mutex
	clock     time.Time
	accounts  []*models.Account
	employees map[string]*models.Employee

	// forced failures
	accountsErr  error
	employeesErr error
}

func newMemStore() *memStore {
	return &memStore{
		clock:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		employees: map[string]*models.Employee{},
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Accounts(dbx.DBTX) accounts.Repository     { return (*memAccounts)(m) }
func (m *memStore) Employees(dbx.DBTX) employees.Repository   { return (*memEmployees)(m) }

type memAccounts memStore

func (r *memAccounts) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accountsErr != nil {
		return nil, m.accountsErr
	}
	for _, ex := range m.accounts {
		if ex.UserName == a.UserName {
			return nil, &common.DuplicateKeyError{Field: "username"}
		}
		if ex.Email == a.Email {
			return nil, &common.DuplicateKeyError{Field: "email"}
		}
	}
	cp := *a
	cp.ID = uuid.NewString()
	cp.CreatedAt = m.tick()
	cp.UpdatedAt = cp.CreatedAt
	m.accounts = append(m.accounts, &cp)
	out := cp
	return &out, nil
}

func (r *memAccounts) FindByHandleOrEmail(ctx context.Context, login string) (*models.Account, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accountsErr != nil {
		return nil, m.accountsErr
	}
	lower := strings.ToLower(login)
	var byEmail *models.Account
	for _, a := range m.accounts {
		if a.UserName == login {
			out := *a
			return &out, nil
		}
		if a.Email == lower && byEmail == nil {
			byEmail = a
		}
	}
	if byEmail == nil {
		return nil, common.ErrorNotFound
	}
	out := *byEmail
	return &out, nil
}

type memEmployees memStore

func (r *memEmployees) emailTaken(email, except string) bool {
	for id, e := range r.employees {
		if id != except && e.Email == email {
			return true
		}
	}
	return false
}

func (r *memEmployees) Create(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.employeesErr != nil {
		return nil, m.employeesErr
	}
	if r.emailTaken(e.Email, "") {
		return nil, &common.DuplicateKeyError{Field: "email"}
	}
	cp := *e
	cp.ID = uuid.NewString()
	cp.CreatedAt = m.tick()
	cp.UpdatedAt = cp.CreatedAt
	m.employees[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memEmployees) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *e
	return &out, nil
}

func (r *memEmployees) FindByFilter(ctx context.Context, f models.EmployeeFilter) ([]*models.Employee, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.employeesErr != nil {
		return nil, m.employeesErr
	}
	out := make([]*models.Employee, 0)
	for _, e := range m.employees {
		if f.Designation != "" && e.Designation != f.Designation {
			continue
		}
		if f.Department != "" && e.Department != f.Department {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memEmployees) ListNewestFirst(ctx context.Context) ([]*models.Employee, error) {
	return r.FindByFilter(ctx, models.EmployeeFilter{})
}

func (r *memEmployees) UpdateByID(ctx context.Context, id string, p models.EmployeePatch) (*models.Employee, error) {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if p.Email != nil && r.emailTaken(*p.Email, id) {
		return nil, &common.DuplicateKeyError{Field: "email"}
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&e.FirstName, p.FirstName)
	set(&e.LastName, p.LastName)
	set(&e.Email, p.Email)
	set(&e.Designation, p.Designation)
	set(&e.Department, p.Department)
	if p.Gender != nil {
		g := *p.Gender
		e.Gender = &g
	}
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if p.DateOfJoining != nil {
		e.DateOfJoining = *p.DateOfJoining
	}
	if p.Photo != nil {
		ph := *p.Photo
		e.Photo = &ph
	}
	e.UpdatedAt = m.tick()
	out := *e
	return &out, nil
}

func (r *memEmployees) DeleteByID(ctx context.Context, id string) error {
	m := (*memStore)(r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.employees, id)
	return nil
}

type fakeUploader struct {
	calls []string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, source string) (*models.EmployeePhoto, error) {
	f.calls = append(f.calls, source)
	if f.err != nil {
		return nil, f.err
	}
	return &models.EmployeePhoto{URL: "http://cdn/assets/p/1.png", PublicID: "p/1.png"}, nil
}
