package grade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/student"
)

var (
	// errors
	ErrNotFound = errors.New("grade record not found")
)

type (
	Repository interface {
		// CreateGrade inserts a new grade record unconditionally.
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		// EnsureGrade inserts grd unless a record already exists for its
		// (student, subject) pair. Reports whether a record was created.
		EnsureGrade(ctx context.Context, grd Grade) (bool, error)
		// UpsertGrade inserts or overwrites the record for grd's
		// (student, subject) pair in a single conditional write.
		UpsertGrade(ctx context.Context, grd Grade) (Grade, error)
		GetGrade(ctx context.Context, studentID, subjectID string) (Grade, error)
		QueryGradesBySubject(ctx context.Context, subjectID string) ([]Grade, error)
		QueryGradesByStudent(ctx context.Context, studentID string) ([]Grade, error)
		UpdateStudentName(ctx context.Context, studentID, name string) error
		DeleteGradesByStudent(ctx context.Context, studentID string) (int, error)
	}

	// Roster provides the current student list.
	Roster interface {
		QueryAllStudents(ctx context.Context) ([]student.Student, error)
		GetStudentByID(ctx context.Context, id string) (student.Student, error)
	}

	Service struct {
		repo   Repository
		roster Roster
		logger core.Logger
	}
)

var _ student.GradeSyncer = (*Service)(nil) // interface compliance check

func NewService(repo Repository, roster Roster, logger core.Logger) *Service {
	return &Service{
		repo:   repo,
		roster: roster,
		logger: logger,
	}
}

// EnsureRecords creates a blank grade record for every roster student missing
// one for the subject. Creation is best-effort: a failure for one student is
// logged and processing continues; failures are reported back in aggregate.
func (svc *Service) EnsureRecords(ctx context.Context, subjectID string, roster []student.Student) error {
	var failed []string
	for _, std := range roster {
		if _, err := svc.repo.EnsureGrade(ctx, NewBlankGrade(std.ID, std.FullName(), subjectID)); err != nil {
			svc.logger.Error(fmt.Sprintf("creating blank grade record for %s: %v", std.FullName(), err), err)
			failed = append(failed, std.FullName())
		}
	}
	if len(failed) > 0 {
		return errors.Errorf("creating blank grade records for: %s", strings.Join(failed, ", "))
	}
	return nil
}

// GradeView returns one row per roster student for the subject, creating any
// missing blank records first so the view is always complete. Students whose
// record could not be created still appear, with zero scores and an
// ungraded remark.
func (svc *Service) GradeView(ctx context.Context, subjectID string) ([]StudentGrades, error) {
	roster, err := svc.roster.QueryAllStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying roster")
	}

	if err := svc.EnsureRecords(ctx, subjectID, roster); err != nil {
		svc.logger.Warn(fmt.Sprintf("subject %s: %v", subjectID, err), err)
	}

	grades, err := svc.repo.QueryGradesBySubject(ctx, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grade records")
	}
	byStudent := make(map[string]Grade, len(grades))
	for _, grd := range grades {
		byStudent[grd.StudentID] = grd
	}

	view := make([]StudentGrades, 0, len(roster))
	for _, std := range roster {
		row := StudentGrades{
			StudentID:   std.ID,
			StudentName: std.FullName(),
			Remark:      RemarkNotGraded,
		}
		if grd, ok := byStudent[std.ID]; ok {
			row.Prelim = grd.Prelim
			row.Midterm = grd.Midterm
			row.Semifinal = grd.Semifinal
			row.Final = grd.Final
			row.Average = grd.Average
			row.Remark = grd.Remark
		}
		view = append(view, row)
	}
	return view, nil
}

// SaveAll recomputes and upserts one grade record per entry. A failure for one
// entry does not abort the rest; any failures are reported back in aggregate.
func (svc *Service) SaveAll(ctx context.Context, subjectID string, entries []Entry) error {
	now := time.Now().UTC()

	var failed []string
	for _, entry := range entries {
		std, err := svc.roster.GetStudentByID(ctx, entry.StudentID)
		if err != nil {
			svc.logger.Error(fmt.Sprintf("saving grades for student %s: %v", entry.StudentID, err), err)
			failed = append(failed, entry.StudentID)
			continue
		}

		prelim, midterm, semifinal, final := float64(entry.Prelim), float64(entry.Midterm), float64(entry.Semifinal), float64(entry.Final)
		grd := Grade{
			StudentID:   std.ID,
			StudentName: std.FullName(),
			SubjectID:   subjectID,
			Prelim:      prelim,
			Midterm:     midterm,
			Semifinal:   semifinal,
			Final:       final,
			Average:     Average(prelim, midterm, semifinal, final),
			Remark:      ComputeRemark(prelim, midterm, semifinal, final),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if _, err := svc.repo.UpsertGrade(ctx, grd); err != nil {
			svc.logger.Error(fmt.Sprintf("saving grades for %s: %v", std.FullName(), err), err)
			failed = append(failed, std.FullName())
		}
	}
	if len(failed) > 0 {
		return core.NewValidationError(errors.Errorf("saving grades for: %s", strings.Join(failed, ", ")))
	}
	return nil
}

// StudentCreated creates the new student's initial grade record, not yet tied
// to any subject.
func (svc *Service) StudentCreated(ctx context.Context, std student.Student) error {
	if _, err := svc.repo.CreateGrade(ctx, NewBlankGrade(std.ID, std.FullName(), "")); err != nil {
		return errors.Wrap(err, "creating initial grade record")
	}
	return nil
}

// StudentNameChanged rewrites the denormalized student name on all of the
// student's grade records.
func (svc *Service) StudentNameChanged(ctx context.Context, studentID, fullName string) error {
	if err := svc.repo.UpdateStudentName(ctx, studentID, fullName); err != nil {
		return errors.Wrap(err, "updating student name on grade records")
	}
	return nil
}

// StudentDeleted removes all of the student's grade records, returning the
// number deleted.
func (svc *Service) StudentDeleted(ctx context.Context, studentID string) (int, error) {
	cnt, err := svc.repo.DeleteGradesByStudent(ctx, studentID)
	if err != nil {
		return 0, errors.Wrap(err, "deleting grade records")
	}
	return cnt, nil
}
