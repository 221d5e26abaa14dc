package validation

import "github.com/dmitrijs2005/employeehub/internal/server/models"

const genderMessage = "gender must be Male, Female, or Other"

var SignupRules = Ruleset{
	{Name: "username", Rules: []Rule{
		Required("username is required"),
		MinLength(3, "username min 3 chars"),
	}},
	{Name: "email", Rules: []Rule{
		Required("email is required"),
		Format(FormatEmail, "email is invalid"),
	}},
	{Name: "password", Rules: []Rule{
		Required("password is required"),
		MinLength(6, "password min 6 chars"),
	}},
}

var LoginRules = Ruleset{
	{Name: "login", Rules: []Rule{Required("username or email is required")}},
	{Name: "password", Rules: []Rule{Required("password is required")}},
}

var EmployeeCreateRules = Ruleset{
	{Name: "first_name", Rules: []Rule{Required("first_name is required")}},
	{Name: "last_name", Rules: []Rule{Required("last_name is required")}},
	{Name: "email", Rules: []Rule{
		Required("email is required"),
		Format(FormatEmail, "email is invalid"),
	}},
	{Name: "gender", Rules: []Rule{
		Optional(),
		OneOf(genderMessage, models.Genders...),
	}},
	{Name: "designation", Rules: []Rule{Required("designation is required")}},
	{Name: "salary", Rules: []Rule{
		Required("salary is required"),
		AtLeast(models.MinSalary, "salary must be >= 1000"),
	}},
	{Name: "date_of_joining", Rules: []Rule{
		Required("date_of_joining is required"),
		Format(FormatISO8601, "date_of_joining must be a valid date"),
	}},
	{Name: "department", Rules: []Rule{Required("department is required")}},
	{Name: "employee_photo", Rules: []Rule{Optional()}},
}

// EmployeeUpdateRules applies the create checks to whichever fields are present.
var EmployeeUpdateRules = Ruleset{
	{Name: "first_name", Rules: []Rule{Optional(), Required("first_name must not be empty")}},
	{Name: "last_name", Rules: []Rule{Optional(), Required("last_name must not be empty")}},
	{Name: "email", Rules: []Rule{Optional(), Format(FormatEmail, "email is invalid")}},
	{Name: "gender", Rules: []Rule{Optional(), OneOf(genderMessage, models.Genders...)}},
	{Name: "designation", Rules: []Rule{Optional(), Required("designation must not be empty")}},
	{Name: "salary", Rules: []Rule{Optional(), AtLeast(models.MinSalary, "salary must be >= 1000")}},
	{Name: "date_of_joining", Rules: []Rule{Optional(), Format(FormatISO8601, "date_of_joining must be a valid date")}},
	{Name: "department", Rules: []Rule{Optional(), Required("department must not be empty")}},
	{Name: "employee_photo", Rules: []Rule{Optional()}},
}
