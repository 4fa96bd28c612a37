package subject

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound = errors.New("subject not found")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, sub Subject) (Subject, error)
		// QueryAllSubjects returns all subjects, newest first.
		QueryAllSubjects(ctx context.Context) ([]Subject, error)
		GetSubjectByID(ctx context.Context, id string) (Subject, error)
		UpdateSubject(ctx context.Context, sub Subject) (Subject, error)
		DeleteSubjectByID(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	sub := Subject{
		Code:       ns.Code,
		Name:       ns.Name,
		Instructor: ns.Instructor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateSubject(ctx, sub)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Subject, error) {
	return svc.repo.QueryAllSubjects(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Subject, error) {
	return svc.repo.GetSubjectByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateSubject) (Subject, error) {
	sub := Subject{
		ID:         id,
		Code:       us.Code,
		Name:       us.Name,
		Instructor: us.Instructor,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateSubject(ctx, sub)
}

// Delete removes a subject. Grade records for the subject are left in place;
// they are only ever removed as a cascade of student deletion.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteSubjectByID(ctx, id)
}
