package student

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

func newValidate() *validator.Validate {
	validate := validator.New()
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate
}

func TestNewStudent_Validate(t *testing.T) {
	validate := newValidate()

	tests := []struct {
		name    string
		ns      NewStudent
		wantErr bool
	}{
		{name: "empty", ns: NewStudent{}, wantErr: true},
		{name: "missing last name", ns: NewStudent{FirstName: "Alice", StudentNumber: "2024-001"}, wantErr: true},
		{name: "missing student number", ns: NewStudent{FirstName: "Alice", LastName: "Tan"}, wantErr: true},
		{name: "student number with spaces", ns: NewStudent{FirstName: "Alice", LastName: "Tan", StudentNumber: "2024 001"}, wantErr: true},
		{name: "year level too high", ns: NewStudent{FirstName: "Alice", LastName: "Tan", StudentNumber: "2024-001", YearLevel: 5}, wantErr: true},
		{name: "minimal", ns: NewStudent{FirstName: "Alice", LastName: "Tan", StudentNumber: "2024-001"}},
		{name: "full", ns: NewStudent{FirstName: "Alice", LastName: "Tan", StudentNumber: "2024-001", YearLevel: 2, Course: "BSIT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.ns.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewStudent_Validate_cleansFields(t *testing.T) {
	validate := newValidate()

	ns := NewStudent{FirstName: "  Alice ", LastName: " Tan ", StudentNumber: " 2024-001 ", Course: "  BSIT "}
	if err := ns.Validate(validate); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if ns.FirstName != "Alice" || ns.LastName != "Tan" || ns.StudentNumber != "2024-001" || ns.Course != "BSIT" {
		t.Errorf("fields not cleaned: %+v", ns)
	}
}

func TestUpdateStudent_Validate(t *testing.T) {
	validate := newValidate()

	orig := Student{
		ID:            "std-1",
		FirstName:     "Alice",
		LastName:      "Tan",
		StudentNumber: "2024-001",
		YearLevel:     2,
		Course:        "BSIT",
	}

	t.Run("empty fields fall back to original", func(t *testing.T) {
		us := UpdateStudent{FirstName: "Alicia"}
		if err := us.Validate(orig, validate); err != nil {
			t.Fatalf("Validate(): %v", err)
		}
		if us.FirstName != "Alicia" {
			t.Errorf("FirstName = %s, want Alicia", us.FirstName)
		}
		if us.LastName != orig.LastName || us.StudentNumber != orig.StudentNumber ||
			us.YearLevel != orig.YearLevel || us.Course != orig.Course {
			t.Errorf("unchanged fields not filled from original: %+v", us)
		}
	})

	t.Run("invalid student number still rejected", func(t *testing.T) {
		us := UpdateStudent{StudentNumber: "20 24"}
		if err := us.Validate(orig, validate); err == nil {
			t.Error("Validate() expected an error")
		}
	})
}
