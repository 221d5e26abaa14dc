package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/employeehub/internal/common"
	"github.com/dmitrijs2005/employeehub/internal/server/apperr"
	"github.com/dmitrijs2005/employeehub/internal/server/models"
	"github.com/dmitrijs2005/employeehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/employeehub/internal/server/validation"
	"github.com/google/uuid"
)

// PhotoUploader stores an image given as a data URI or URL.
type PhotoUploader interface {
	Upload(ctx context.Context, source string) (*models.EmployeePhoto, error)
}

// EmployeeInput is the payload of addEmployee. DateOfJoining is the raw
// ISO-8601 string; it is parsed after validation.
type EmployeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	Gender        *string
	Designation   string
	Salary        float64
	DateOfJoining string
	Department    string
	EmployeePhoto *string
}

// EmployeeUpdateInput is the payload of updateEmployeeByEid. Nil fields are left unchanged.
type EmployeeUpdateInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Gender        *string
	Designation   *string
	Salary        *float64
	DateOfJoining *string
	Department    *string
	EmployeePhoto *string
}

type EmployeeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	photos      PhotoUploader
}

func NewEmployeeService(db *sql.DB, m repomanager.RepositoryManager, photos PhotoUploader) *EmployeeService {
	return &EmployeeService{db: db, repomanager: m, photos: photos}
}

// List returns every employee, newest first.
func (s *EmployeeService) List(ctx context.Context) ([]*models.Employee, error) {
	list, err := s.repomanager.Employees(s.db).ListNewestFirst(ctx)
	if err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}
	return list, nil
}

func (s *EmployeeService) GetByID(ctx context.Context, eid string) (*models.Employee, error) {
	id, ok := canonicalID(eid)
	if !ok {
		return nil, notFound()
	}

	e, err := s.repomanager.Employees(s.db).FindByID(ctx, id)
	if err != nil {
		return nil, fromRepo(err)
	}
	return e, nil
}

// Search filters by designation and/or department. At least one must be non-empty.
func (s *EmployeeService) Search(ctx context.Context, designation, department *string) ([]*models.Employee, error) {
	filter := models.EmployeeFilter{Designation: deref(designation), Department: deref(department)}
	if filter.Designation == "" && filter.Department == "" {
		return nil, apperr.New(apperr.CodeBadRequest, apperr.MsgFilterRequired)
	}

	list, err := s.repomanager.Employees(s.db).FindByFilter(ctx, filter)
	if err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}
	return list, nil
}

func (s *EmployeeService) Add(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	r := validation.Record{
		"first_name":      in.FirstName,
		"last_name":       in.LastName,
		"email":           in.Email,
		"designation":     in.Designation,
		"salary":          in.Salary,
		"date_of_joining": in.DateOfJoining,
		"department":      in.Department,
	}
	putOptional(r, "gender", in.Gender)
	putOptional(r, "employee_photo", in.EmployeePhoto)

	if errs := validation.Validate(r, validation.EmployeeCreateRules); errs != nil {
		return nil, apperr.Validation(apperr.CodeBadRequest, errs)
	}

	joined, err := validation.ParseISO8601(in.DateOfJoining)
	if err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}

	e := &models.Employee{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Gender:        in.Gender,
		Designation:   in.Designation,
		Salary:        in.Salary,
		DateOfJoining: joined,
		Department:    in.Department,
	}

	if e.Photo, err = s.uploadPhoto(ctx, in.EmployeePhoto); err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}

	created, err := s.repomanager.Employees(s.db).Create(ctx, e)
	if err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}
	return created, nil
}

// Update applies a partial update. Fields absent from in keep their stored values.
func (s *EmployeeService) Update(ctx context.Context, eid string, in EmployeeUpdateInput) (*models.Employee, error) {
	r := validation.Record{}
	putOptional(r, "first_name", in.FirstName)
	putOptional(r, "last_name", in.LastName)
	putOptional(r, "email", in.Email)
	putOptional(r, "gender", in.Gender)
	putOptional(r, "designation", in.Designation)
	if in.Salary != nil {
		r["salary"] = *in.Salary
	}
	putOptional(r, "date_of_joining", in.DateOfJoining)
	putOptional(r, "department", in.Department)
	putOptional(r, "employee_photo", in.EmployeePhoto)

	if errs := validation.Validate(r, validation.EmployeeUpdateRules); errs != nil {
		return nil, apperr.Validation(apperr.CodeBadRequest, errs)
	}

	id, ok := canonicalID(eid)
	if !ok {
		return nil, notFound()
	}

	patch := models.EmployeePatch{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Gender:      in.Gender,
		Designation: in.Designation,
		Salary:      in.Salary,
		Department:  in.Department,
	}
	if in.DateOfJoining != nil {
		joined, err := validation.ParseISO8601(*in.DateOfJoining)
		if err != nil {
			return nil, apperr.From(err, apperr.CodeBadRequest)
		}
		patch.DateOfJoining = &joined
	}

	var err error
	if patch.Photo, err = s.uploadPhoto(ctx, in.EmployeePhoto); err != nil {
		return nil, apperr.From(err, apperr.CodeBadRequest)
	}

	updated, err := s.repomanager.Employees(s.db).UpdateByID(ctx, id, patch)
	if err != nil {
		return nil, fromRepo(err)
	}
	return updated, nil
}

func (s *EmployeeService) Delete(ctx context.Context, eid string) error {
	id, ok := canonicalID(eid)
	if !ok {
		return notFound()
	}

	if err := s.repomanager.Employees(s.db).DeleteByID(ctx, id); err != nil {
		return fromRepo(err)
	}
	return nil
}

// uploadPhoto returns nil when no photo was supplied.
func (s *EmployeeService) uploadPhoto(ctx context.Context, source *string) (*models.EmployeePhoto, error) {
	if source == nil || *source == "" {
		return nil, nil
	}
	if s.photos == nil {
		return nil, errors.New("photo uploads are not configured")
	}
	return s.photos.Upload(ctx, *source)
}

func canonicalID(eid string) (string, bool) {
	id, err := uuid.Parse(eid)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func notFound() *apperr.Error {
	return apperr.New(apperr.CodeNotFound, apperr.MsgEmployeeNotFound)
}

func fromRepo(err error) *apperr.Error {
	if errors.Is(err, common.ErrorNotFound) {
		return notFound()
	}
	return apperr.From(err, apperr.CodeBadRequest)
}

func putOptional(r validation.Record, key string, v *string) {
	if v != nil {
		r[key] = *v
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
