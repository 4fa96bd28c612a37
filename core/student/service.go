package student

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/alama/core"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudentByID(ctx context.Context, id string) error
	}

	// GradeSyncer keeps grade records in step with roster changes.
	// Sync failures never reverse the triggering roster operation.
	GradeSyncer interface {
		StudentCreated(ctx context.Context, std Student) error
		StudentNameChanged(ctx context.Context, studentID, fullName string) error
		StudentDeleted(ctx context.Context, studentID string) (int, error)
	}

	Service struct {
		repo   Repository
		syncer GradeSyncer
		logger core.Logger
	}
)

func NewService(repo Repository, syncer GradeSyncer, logger core.Logger) *Service {
	return &Service{
		repo:   repo,
		syncer: syncer,
		logger: logger,
	}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	now := time.Now().UTC()
	std := Student{
		FirstName:     ns.FirstName,
		LastName:      ns.LastName,
		StudentNumber: ns.StudentNumber,
		YearLevel:     ns.YearLevel,
		Course:        ns.Course,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if std.YearLevel == 0 {
		std.YearLevel = MinYearLevel
	}

	std, err := svc.repo.CreateStudent(ctx, std)
	if err != nil {
		return Student{}, err
	}

	if err := svc.syncer.StudentCreated(ctx, std); err != nil {
		svc.logger.Warn(fmt.Sprintf("creating blank grade record for %s: %v", std.FullName(), err), err)
	}
	return std, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStudent) (Student, error) {
	std := Student{
		ID:            id,
		FirstName:     us.FirstName,
		LastName:      us.LastName,
		StudentNumber: us.StudentNumber,
		YearLevel:     us.YearLevel,
		Course:        us.Course,
		UpdatedAt:     time.Now().UTC(),
	}

	std, err := svc.repo.UpdateStudent(ctx, std)
	if err != nil {
		return Student{}, err
	}

	// rewrite the denormalized name on the student's grade records
	if err := svc.syncer.StudentNameChanged(ctx, std.ID, std.FullName()); err != nil {
		svc.logger.Warn(fmt.Sprintf("propagating name change for %s: %v", std.FullName(), err), err)
	}
	return std, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if err := svc.repo.DeleteStudentByID(ctx, id); err != nil {
		return err
	}

	// cascade to the student's grade records; the student stays deleted on failure
	if _, err := svc.syncer.StudentDeleted(ctx, id); err != nil {
		svc.logger.Warn(fmt.Sprintf("deleting grade records for student %s: %v", id, err), err)
	}
	return nil
}
