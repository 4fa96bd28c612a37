package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/alama/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db}
}

// find returns the record for a (student, subject) pair; subject-less initial
// records never match.
func (repo *gradeRepository) find(studentID, subjectID string) *grade.Grade {
	if subjectID == "" {
		return nil
	}
	for _, grd := range repo.db.grades {
		if grd.StudentID == studentID && grd.SubjectID == subjectID {
			return grd
		}
	}
	return nil
}

func (repo *gradeRepository) CreateGrade(_ context.Context, grd grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	grd.ID = uuid.New().String()
	repo.db.grades[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) EnsureGrade(_ context.Context, grd grade.Grade) (bool, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if existing := repo.find(grd.StudentID, grd.SubjectID); existing != nil {
		return false, nil
	}
	grd.ID = uuid.New().String()
	repo.db.grades[grd.ID] = &grd
	return true, nil
}

func (repo *gradeRepository) UpsertGrade(_ context.Context, grd grade.Grade) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if existing := repo.find(grd.StudentID, grd.SubjectID); existing != nil {
		grd.ID = existing.ID
		grd.CreatedAt = existing.CreatedAt
		repo.db.grades[grd.ID] = &grd
		return grd, nil
	}
	grd.ID = uuid.New().String()
	repo.db.grades[grd.ID] = &grd
	return grd, nil
}

func (repo *gradeRepository) GetGrade(_ context.Context, studentID, subjectID string) (grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if grd := repo.find(studentID, subjectID); grd != nil {
		return *grd, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) QueryGradesBySubject(_ context.Context, subjectID string) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, grd := range repo.db.grades {
		if grd.SubjectID == subjectID {
			grades = append(grades, *grd)
		}
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].StudentName < grades[j].StudentName })
	return grades, nil
}

func (repo *gradeRepository) QueryGradesByStudent(_ context.Context, studentID string) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, grd := range repo.db.grades {
		if grd.StudentID == studentID {
			grades = append(grades, *grd)
		}
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].CreatedAt.Before(grades[j].CreatedAt) })
	return grades, nil
}

func (repo *gradeRepository) UpdateStudentName(_ context.Context, studentID, name string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	now := time.Now().UTC()
	for _, grd := range repo.db.grades {
		if grd.StudentID == studentID {
			grd.StudentName = name
			grd.UpdatedAt = now
		}
	}
	return nil
}

func (repo *gradeRepository) DeleteGradesByStudent(_ context.Context, studentID string) (int, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	var cnt int
	for id, grd := range repo.db.grades {
		if grd.StudentID == studentID {
			delete(repo.db.grades, id)
			cnt++
		}
	}
	return cnt, nil
}
