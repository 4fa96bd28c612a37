package subject

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

type Subject struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Instructor string    `json:"instructor"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Code       string `json:"code" validate:"required,alphanumdash"`
	Name       string `json:"name" validate:"required"`
	Instructor string `json:"instructor" validate:"required"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Code = core.CleanString(ns.Code)
	ns.Name = core.CleanString(ns.Name)
	ns.Instructor = core.CleanString(ns.Instructor)
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
// Empty fields fall back to the original record's values.
type UpdateSubject struct {
	Code       string `json:"code" validate:"omitempty,alphanumdash"`
	Name       string `json:"name"`
	Instructor string `json:"instructor"`
}

func (us *UpdateSubject) Validate(origSub Subject, validate *validator.Validate) error {
	if code := core.CleanString(us.Code); code != "" {
		us.Code = code
	} else {
		us.Code = origSub.Code
	}

	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = origSub.Name
	}

	if instructor := core.CleanString(us.Instructor); instructor != "" {
		us.Instructor = instructor
	} else {
		us.Instructor = origSub.Instructor
	}

	return validate.Struct(us)
}
