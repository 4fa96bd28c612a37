package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/alama/core/subject"
	testutil "github.com/trezcool/alama/tests"
)

func Test_subjectApi_query(t *testing.T) {
	env := setup(t)

	// empty
	req, rec := newRequest(http.MethodGet, "/api/subjects")
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: []byte(`[]`)}, rec)

	now := time.Now()
	math := testutil.CreateSubject(t, env.subRepo, "MATH101", "Mathematics", "A. Kalonji", now)
	sci := testutil.CreateSubject(t, env.subRepo, "SCI101", "Science", "B. Mukendi", now.Add(time.Minute))

	// newest first
	req, rec = newRequest(http.MethodGet, "/api/subjects")
	env.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantData: marchallList(t, sci, math)}, rec)

	var subs []subject.Subject
	if err := json.Unmarshal(rec.Body.Bytes(), &subs); err != nil {
		t.Fatalf("Unmarshal(): %v", err)
	}
	if len(subs) != 2 || subs[0].ID != sci.ID {
		t.Errorf("subjects not newest first: %+v", subs)
	}
}

func Test_subjectApi_create(t *testing.T) {
	env := setup(t)

	tests := []httpTest{
		{
			name: "empty payload", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"code":       "this field is required",
				"name":       "this field is required",
				"instructor": "this field is required",
			}),
		},
		{
			name: "code with spaces", body: marchallObj(t, subject.NewSubject{Code: "MATH 101", Name: "Mathematics", Instructor: "A. Kalonji"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"code": "only alphanumeric characters and dashes are allowed"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/subjects", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("created", func(t *testing.T) {
		body := marchallObj(t, subject.NewSubject{Code: "MATH101", Name: "Mathematics", Instructor: "A. Kalonji"})
		req, rec := newRequest(http.MethodPost, "/api/subjects", body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var sub subject.Subject
		if err := json.Unmarshal(rec.Body.Bytes(), &sub); err != nil {
			t.Fatalf("Unmarshal(): %v", err)
		}
		if sub.ID == "" || sub.Code != "MATH101" || sub.Name != "Mathematics" {
			t.Errorf("subject = %+v", sub)
		}
	})
}

func Test_subjectApi_retrieveUpdateDestroy(t *testing.T) {
	env := setup(t)

	sub := testutil.CreateSubject(t, env.subRepo, "MATH101", "Mathematics", "A. Kalonji")

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/subjects/"+sub.ID)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantData: marchallObj(t, sub)}, rec)
	})

	t.Run("retrieve not found", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/subjects/deadbeef")
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject not found"})}, rec)
	})

	t.Run("update keeps unchanged fields", func(t *testing.T) {
		body := marchallObj(t, subject.UpdateSubject{Instructor: "B. Mukendi"})
		req, rec := newRequest(http.MethodPut, "/api/subjects/"+sub.ID, body)
		env.app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; want %v: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var updated subject.Subject
		if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
			t.Fatalf("Unmarshal(): %v", err)
		}
		if updated.Instructor != "B. Mukendi" || updated.Code != sub.Code || updated.Name != sub.Name {
			t.Errorf("subject = %+v", updated)
		}
	})

	t.Run("destroy", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/api/subjects/"+sub.ID)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNoContent}, rec)

		req, rec = newRequest(http.MethodGet, "/api/subjects/"+sub.ID)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "subject not found"})}, rec)
	})
}
