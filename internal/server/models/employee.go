// Package models defines server-side data models persisted in the database.
package models

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Genders lists the accepted gender values in display order.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// MinSalary is the inclusive lower bound for Employee.Salary.
const MinSalary = 1000

// Employee is a staff record.
type Employee struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	Gender        *string
	Designation   string
	Salary        float64
	DateOfJoining time.Time
	Department    string
	Photo         *EmployeePhoto
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeePhoto references an image kept by the external asset host.
type EmployeePhoto struct {
	// URL is where clients fetch the image.
	URL string
	// PublicID is the asset host's identifier (object key).
	PublicID string
}

// EmployeePatch carries the fields of a partial update. Nil means "leave as is".
type EmployeePatch struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Gender        *string
	Designation   *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
	Photo         *EmployeePhoto
}

// IsEmpty reports whether the patch changes nothing.
func (p EmployeePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Gender == nil &&
		p.Designation == nil && p.Salary == nil && p.DateOfJoining == nil &&
		p.Department == nil && p.Photo == nil
}

// EmployeeFilter narrows a search. Empty strings do not filter.
type EmployeeFilter struct {
	Designation string
	Department  string
}
