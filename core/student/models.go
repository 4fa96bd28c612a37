package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

// Year levels
const (
	MinYearLevel = 1
	MaxYearLevel = 4
)

type Student struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	StudentNumber string    `json:"student_number"`
	YearLevel     int       `json:"year_level"`
	Course        string    `json:"course"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// FullName is the display name duplicated onto grade records.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	StudentNumber string `json:"student_number" validate:"required,alphanumdash"`
	YearLevel     int    `json:"year_level" validate:"omitempty,min=1,max=4"`
	Course        string `json:"course"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.StudentNumber = core.CleanString(ns.StudentNumber)
	ns.Course = core.CleanString(ns.Course)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields fall back to the original record's values.
type UpdateStudent struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	StudentNumber string `json:"student_number" validate:"omitempty,alphanumdash"`
	YearLevel     int    `json:"year_level" validate:"omitempty,min=1,max=4"`
	Course        string `json:"course"`
}

func (us *UpdateStudent) Validate(origStd Student, validate *validator.Validate) error {
	if firstName := core.CleanString(us.FirstName); firstName != "" {
		us.FirstName = firstName
	} else {
		us.FirstName = origStd.FirstName
	}

	if lastName := core.CleanString(us.LastName); lastName != "" {
		us.LastName = lastName
	} else {
		us.LastName = origStd.LastName
	}

	if number := core.CleanString(us.StudentNumber); number != "" {
		us.StudentNumber = number
	} else {
		us.StudentNumber = origStd.StudentNumber
	}

	if us.YearLevel == 0 {
		us.YearLevel = origStd.YearLevel
	}

	if course := core.CleanString(us.Course); course != "" {
		us.Course = course
	} else {
		us.Course = origStd.Course
	}

	return validate.Struct(us)
}
