package tests

import (
	"net/http"
	"strings"
	"testing"
	"time"

	. "github.com/trezcool/alama/apps/api/echo"
	"github.com/trezcool/alama/core/grade"
	testutil "github.com/trezcool/alama/tests"
)

func Test_gradeApi_view(t *testing.T) {
	env := setup(t)

	now := time.Now()
	sub := testutil.CreateSubject(t, env.subRepo, "MATH101", "Mathematics", "A. Kalonji")
	alice := testutil.CreateStudent(t, env.stdRepo, "Alice", "Tan", "2024-001", 1, "BSIT", now)
	bob := testutil.CreateStudent(t, env.stdRepo, "Bob", "Cruz", "2024-002", 1, "BSIT", now.Add(time.Minute))

	tests := []httpTest{
		{
			name: "subject not found", path: "/api/subjects/deadbeef/grades",
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject not found"}),
		},
		{
			name: "ungraded defaults", path: "/api/subjects/" + sub.ID + "/grades",
			wantData: marchallList(t,
				grade.StudentGrades{StudentID: alice.ID, StudentName: "Alice Tan", Remark: grade.RemarkNotGraded},
				grade.StudentGrades{StudentID: bob.ID, StudentName: "Bob Cruz", Remark: grade.RemarkNotGraded},
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodGet, tt.path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_gradeApi_save(t *testing.T) {
	env := setup(t)

	now := time.Now()
	sub := testutil.CreateSubject(t, env.subRepo, "MATH101", "Mathematics", "A. Kalonji")
	alice := testutil.CreateStudent(t, env.stdRepo, "Alice", "Tan", "2024-001", 1, "BSIT", now)
	bob := testutil.CreateStudent(t, env.stdRepo, "Bob", "Cruz", "2024-002", 1, "BSIT", now.Add(time.Minute))

	path := "/api/subjects/" + sub.ID + "/grades"

	tests := []httpTest{
		{
			name: "subject not found", path: "/api/subjects/deadbeef/grades", body: []byte(`{"entries":[]}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject not found"}),
		},
		{
			name: "entries required", path: path, body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"entries": "this field is required"}),
		},
		{
			name: "score out of range", path: path,
			body:     marchallObj(t, SaveGradesRequest{Entries: []grade.Entry{{StudentID: alice.ID, Prelim: 5.5}}}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"prelim": "prelim must be 5 or less"}),
		},
		{
			name: "unknown student rejected", path: path,
			body:     marchallObj(t, SaveGradesRequest{Entries: []grade.Entry{{StudentID: "ghost", Prelim: 1}}}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "saving grades for: ghost"}),
		},
		{
			name: "saved", path: path,
			body: marchallObj(t, SaveGradesRequest{Entries: []grade.Entry{
				{StudentID: alice.ID, Prelim: 5, Midterm: 3, Semifinal: 3, Final: 3},
				{StudentID: bob.ID, Prelim: 2, Midterm: 2, Semifinal: 2, Final: 2},
			}}),
			wantData: marchallList(t,
				grade.StudentGrades{StudentID: alice.ID, StudentName: "Alice Tan", Prelim: 5, Midterm: 3, Semifinal: 3, Final: 3, Average: 3.5, Remark: grade.RemarkFailed},
				grade.StudentGrades{StudentID: bob.ID, StudentName: "Bob Cruz", Prelim: 2, Midterm: 2, Semifinal: 2, Final: 2, Average: 2, Remark: grade.RemarkPassed},
			),
		},
		{
			name: "numeric string scores accepted", path: path,
			body: []byte(`{"entries":[{"student_id":"` + bob.ID + `","prelim":"1.5","midterm":"1.5","semifinal":"1.5","final":"1.5"}]}`),
			wantData: marchallList(t,
				grade.StudentGrades{StudentID: alice.ID, StudentName: "Alice Tan", Prelim: 5, Midterm: 3, Semifinal: 3, Final: 3, Average: 3.5, Remark: grade.RemarkFailed},
				grade.StudentGrades{StudentID: bob.ID, StudentName: "Bob Cruz", Prelim: 1.5, Midterm: 1.5, Semifinal: 1.5, Final: 1.5, Average: 1.5, Remark: grade.RemarkPassed},
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPut, tt.path, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_gradeApi_report(t *testing.T) {
	env := setup(t)

	now := time.Now()
	sub := testutil.CreateSubject(t, env.subRepo, "MATH101", "Mathematics", "A. Kalonji")

	t.Run("empty roster", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/subjects/"+sub.ID+"/report")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantData: marchallObj(t, grade.Report{FailedStudents: []string{}})}, rec)
	})

	alice := testutil.CreateStudent(t, env.stdRepo, "Alice", "Tan", "2024-001", 1, "BSIT", now)
	bob := testutil.CreateStudent(t, env.stdRepo, "Bob", "Cruz", "2024-002", 1, "BSIT", now.Add(time.Minute))

	t.Run("ungraded roster counts neither passed nor failed", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/subjects/"+sub.ID+"/report")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantData: marchallObj(t, grade.Report{Total: 2, FailedStudents: []string{}})}, rec)
	})

	body := marchallObj(t, SaveGradesRequest{Entries: []grade.Entry{
		{StudentID: alice.ID, Prelim: 5, Midterm: 3, Semifinal: 3, Final: 3},
		{StudentID: bob.ID, Prelim: 2, Midterm: 2, Semifinal: 2, Final: 2},
	}})
	req, rec := newRequest(http.MethodPut, "/api/subjects/"+sub.ID+"/grades", body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("saving grades: code = %v: %s", rec.Code, rec.Body.String())
	}

	t.Run("graded roster", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/subjects/"+sub.ID+"/report")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantData: marchallObj(t, grade.Report{
			Total:          2,
			Passed:         1,
			Failed:         1,
			OverallAverage: 2.75,
			FailedStudents: []string{"Alice Tan"},
		})}, rec)
	})

	t.Run("pdf export", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/subjects/"+sub.ID+"/report/pdf")
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v", rec.Code, http.StatusOK)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Errorf("Content-Type = %s, want application/pdf", ct)
		}
		if !strings.HasPrefix(rec.Body.String(), "%PDF") {
			t.Error("body is not a PDF document")
		}
	})

	t.Run("deleted student drops out", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/api/students/"+alice.ID)
		env.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("deleting student: code = %v", rec.Code)
		}

		req, rec = newRequest(http.MethodGet, "/api/subjects/"+sub.ID+"/report")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantData: marchallObj(t, grade.Report{
			Total:          1,
			Passed:         1,
			OverallAverage: 2,
			FailedStudents: []string{},
		})}, rec)
	})
}
