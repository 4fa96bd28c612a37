package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/student"
	"github.com/trezcool/alama/core/subject"
)

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	firstName, lastName, number string,
	yearLevel int,
	course string,
	createdAt ...time.Time,
) student.Student {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	std := student.Student{
		FirstName:     firstName,
		LastName:      lastName,
		StudentNumber: number,
		YearLevel:     yearLevel,
		Course:        course,
		CreatedAt:     tstamp,
		UpdatedAt:     tstamp,
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateSubject(
	t *testing.T,
	repo subject.Repository,
	code, name, instructor string,
	createdAt ...time.Time,
) subject.Subject {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	sub := subject.Subject{
		Code:       code,
		Name:       name,
		Instructor: instructor,
		CreatedAt:  tstamp,
		UpdatedAt:  tstamp,
	}
	sub, err := repo.CreateSubject(context.Background(), sub)
	if err != nil {
		t.Fatalf("CreateSubject() failed: %v", err)
	}
	return sub
}

// NopLogger discards all messages.
type NopLogger struct{}

var _ core.Logger = (*NopLogger)(nil)

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}
