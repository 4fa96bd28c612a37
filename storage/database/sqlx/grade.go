package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/alama/core/grade"
)

type gradeRow struct {
	ID          string      `db:"id"`
	StudentID   string      `db:"student_id"`
	StudentName string      `db:"student_name"`
	SubjectID   null.String `db:"subject_id"`
	Prelim      float64     `db:"prelim"`
	Midterm     float64     `db:"midterm"`
	Semifinal   float64     `db:"semifinal"`
	Final       float64     `db:"final"`
	Average     float64     `db:"average"`
	Remark      string      `db:"remark"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (row gradeRow) model() grade.Grade {
	return grade.Grade{
		ID:          row.ID,
		StudentID:   row.StudentID,
		StudentName: row.StudentName,
		SubjectID:   row.SubjectID.String,
		Prelim:      row.Prelim,
		Midterm:     row.Midterm,
		Semifinal:   row.Semifinal,
		Final:       row.Final,
		Average:     row.Average,
		Remark:      row.Remark,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to grade.ErrNotFound
func (repo gradeRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return grade.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo gradeRepository) insertArgs(grd grade.Grade) []interface{} {
	return []interface{}{
		grd.ID, grd.StudentID, grd.StudentName, null.NewString(grd.SubjectID, grd.SubjectID != ""),
		grd.Prelim, grd.Midterm, grd.Semifinal, grd.Final, grd.Average, grd.Remark,
		grd.CreatedAt.UTC(), grd.UpdatedAt.UTC(),
	}
}

func (repo gradeRepository) CreateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	grd.ID = uuid.New().String()

	var row gradeRow
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO grade (id, student_id, student_name, subject_id, prelim, midterm, semifinal, final, average, remark, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING *`,
		repo.insertArgs(grd)...,
	).StructScan(&row)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade record")
	}
	return row.model(), nil
}

func (repo gradeRepository) EnsureGrade(ctx context.Context, grd grade.Grade) (bool, error) {
	grd.ID = uuid.New().String()

	res, err := repo.db.ExecContext(ctx, `
		INSERT INTO grade (id, student_id, student_name, subject_id, prelim, midterm, semifinal, final, average, remark, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (student_id, subject_id) WHERE subject_id IS NOT NULL DO NOTHING`,
		repo.insertArgs(grd)...,
	)
	if err != nil {
		return false, errors.Wrap(err, "ensuring grade record")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "ensuring grade record")
	}
	return cnt > 0, nil
}

func (repo gradeRepository) UpsertGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	grd.ID = uuid.New().String()

	var row gradeRow
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO grade (id, student_id, student_name, subject_id, prelim, midterm, semifinal, final, average, remark, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (student_id, subject_id) WHERE subject_id IS NOT NULL DO UPDATE
		SET student_name = EXCLUDED.student_name,
		    prelim = EXCLUDED.prelim,
		    midterm = EXCLUDED.midterm,
		    semifinal = EXCLUDED.semifinal,
		    final = EXCLUDED.final,
		    average = EXCLUDED.average,
		    remark = EXCLUDED.remark,
		    updated_at = EXCLUDED.updated_at
		RETURNING *`,
		repo.insertArgs(grd)...,
	).StructScan(&row)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "upserting grade record")
	}
	return row.model(), nil
}

func (repo gradeRepository) GetGrade(ctx context.Context, studentID, subjectID string) (grade.Grade, error) {
	var row gradeRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM grade WHERE student_id = $1 AND subject_id = $2`, studentID, subjectID)
	if err != nil {
		return grade.Grade{}, repo.trapNoRowsErr(err, "finding grade record")
	}
	return row.model(), nil
}

func (repo gradeRepository) QueryGradesBySubject(ctx context.Context, subjectID string) ([]grade.Grade, error) {
	var rows []gradeRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM grade WHERE subject_id = $1 ORDER BY student_name`, subjectID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grade records by subject")
	}

	grades := make([]grade.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, row.model())
	}
	return grades, nil
}

func (repo gradeRepository) QueryGradesByStudent(ctx context.Context, studentID string) ([]grade.Grade, error) {
	var rows []gradeRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM grade WHERE student_id = $1 ORDER BY created_at`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying grade records by student")
	}

	grades := make([]grade.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, row.model())
	}
	return grades, nil
}

func (repo gradeRepository) UpdateStudentName(ctx context.Context, studentID, name string) error {
	_, err := repo.db.ExecContext(ctx,
		`UPDATE grade SET student_name = $2, updated_at = $3 WHERE student_id = $1`,
		studentID, name, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "updating student name on grade records")
	}
	return nil
}

func (repo gradeRepository) DeleteGradesByStudent(ctx context.Context, studentID string) (int, error) {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM grade WHERE student_id = $1`, studentID)
	if err != nil {
		return 0, errors.Wrap(err, "deleting grade records")
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "deleting grade records")
	}
	return int(cnt), nil
}
