package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/student"
	testutil "github.com/trezcool/alama/tests"
)

func Test_studentApi_query(t *testing.T) {
	env := setup(t)

	// empty roster
	req, rec := newRequest(http.MethodGet, "/api/students")
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: []byte(`[]`)}, rec)

	now := time.Now()
	std1 := testutil.CreateStudent(t, env.stdRepo, "Alice", "Tan", "2024-001", 1, "BSIT", now)
	std2 := testutil.CreateStudent(t, env.stdRepo, "Bob", "Cruz", "2024-002", 2, "BSCS", now.Add(time.Minute))

	req, rec = newRequest(http.MethodGet, "/api/students")
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marchallList(t, std1, std2)}, rec)
}

func Test_studentApi_create(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name: "empty payload", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"first_name":     "this field is required",
				"last_name":      "this field is required",
				"student_number": "this field is required",
			}),
		},
		{
			name: "student number with spaces", body: marchallObj(t, student.NewStudent{FirstName: "Alice", LastName: "Tan", StudentNumber: "2024 001"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_number": "only alphanumeric characters and dashes are allowed"}),
		},
		{
			name: "year level out of range", body: marchallObj(t, student.NewStudent{FirstName: "Alice", LastName: "Tan", StudentNumber: "2024-001", YearLevel: 5}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"year_level": "year_level must be 4 or less"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/students", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("created with initial grade record", func(t *testing.T) {
		body := marchallObj(t, student.NewStudent{FirstName: "Alice", LastName: "Tan", StudentNumber: "2024-001", Course: "BSIT"})
		req, rec := newRequest(http.MethodPost, "/api/students", body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var std student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &std); err != nil {
			t.Fatalf("Unmarshal(): %v", err)
		}
		if std.ID == "" {
			t.Error("ID not set")
		}
		if std.YearLevel != student.MinYearLevel {
			t.Errorf("YearLevel = %d, want default %d", std.YearLevel, student.MinYearLevel)
		}

		grades, err := env.grdRepo.QueryGradesByStudent(context.Background(), std.ID)
		if err != nil {
			t.Fatalf("QueryGradesByStudent(): %v", err)
		}
		if len(grades) != 1 || grades[0].StudentName != "Alice Tan" {
			t.Errorf("initial grade record missing or wrong: %+v", grades)
		}
	})
}

func Test_studentApi_retrieve(t *testing.T) {
	env := setup(t)

	std := testutil.CreateStudent(t, env.stdRepo, "Alice", "Tan", "2024-001", 1, "BSIT")

	tests := []httpTest{
		{
			name: "not found", path: "/api/students/deadbeef",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{name: "found", path: "/api/students/" + std.ID, wantData: marchallObj(t, std)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_update(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	std := testutil.CreateStudent(t, env.stdRepo, "Alice", "Tan", "2024-001", 1, "BSIT")
	if _, err := env.grdRepo.CreateGrade(ctx, grade.NewBlankGrade(std.ID, std.FullName(), "")); err != nil {
		t.Fatalf("CreateGrade(): %v", err)
	}

	t.Run("not found", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/api/students/deadbeef", []byte(`{}`))
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"})}, rec)
	})

	t.Run("rename propagates to grade records", func(t *testing.T) {
		body := marchallObj(t, student.UpdateStudent{FirstName: "Alicia"})
		req, rec := newRequest(http.MethodPut, "/api/students/"+std.ID, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var updated student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("Unmarshal(): %v", err)
		}
		if updated.FirstName != "Alicia" || updated.LastName != "Tan" {
			t.Errorf("name = %s %s, want Alicia Tan", updated.FirstName, updated.LastName)
		}
		// untouched fields kept
		if updated.StudentNumber != std.StudentNumber || updated.Course != std.Course {
			t.Errorf("unchanged fields lost: %+v", updated)
		}

		grades, err := env.grdRepo.QueryGradesByStudent(ctx, std.ID)
		if err != nil {
			t.Fatalf("QueryGradesByStudent(): %v", err)
		}
		for _, grd := range grades {
			if grd.StudentName != "Alicia Tan" {
				t.Errorf("grade StudentName = %s, want Alicia Tan", grd.StudentName)
			}
		}
	})
}

func Test_studentApi_destroy(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	std := testutil.CreateStudent(t, env.stdRepo, "Alice", "Tan", "2024-001", 1, "BSIT")
	if _, err := env.grdRepo.CreateGrade(ctx, grade.NewBlankGrade(std.ID, std.FullName(), "")); err != nil {
		t.Fatalf("CreateGrade(): %v", err)
	}

	tests := []httpTest{
		{
			name: "not found", path: "/api/students/deadbeef",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{name: "deleted", path: "/api/students/" + std.ID, wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodDelete, tt.path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// cascade
	grades, err := env.grdRepo.QueryGradesByStudent(ctx, std.ID)
	if err != nil {
		t.Fatalf("QueryGradesByStudent(): %v", err)
	}
	if len(grades) != 0 {
		t.Errorf("len(grades) = %d, want 0", len(grades))
	}
}
