package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/alama/core/student"
)

type studentRow struct {
	ID            string      `db:"id"`
	FirstName     string      `db:"first_name"`
	LastName      string      `db:"last_name"`
	StudentNumber string      `db:"student_number"`
	YearLevel     int         `db:"year_level"`
	Course        null.String `db:"course"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (row studentRow) model() student.Student {
	return student.Student{
		ID:            row.ID,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		StudentNumber: row.StudentNumber,
		YearLevel:     row.YearLevel,
		Course:        row.Course.String,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	std.ID = uuid.New().String()

	var row studentRow
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO student (id, first_name, last_name, student_number, year_level, course, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *`,
		std.ID, std.FirstName, std.LastName, std.StudentNumber, std.YearLevel,
		null.NewString(std.Course, std.Course != ""), std.CreatedAt.UTC(), std.UpdatedAt.UTC(),
	).StructScan(&row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return row.model(), nil
}

func (repo studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM student ORDER BY created_at, last_name`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.model())
	}
	return students, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	if _, err := uuid.Parse(id); err != nil {
		return student.Student{}, student.ErrNotFound
	}

	var row studentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by ID")
	}
	return row.model(), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	var row studentRow
	err := repo.db.QueryRowxContext(ctx, `
		UPDATE student
		SET first_name = $2, last_name = $3, student_number = $4, year_level = $5, course = $6, updated_at = $7
		WHERE id = $1
		RETURNING *`,
		std.ID, std.FirstName, std.LastName, std.StudentNumber, std.YearLevel,
		null.NewString(std.Course, std.Course != ""), std.UpdatedAt.UTC(),
	).StructScan(&row)
	if err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "updating student")
	}
	return row.model(), nil
}

func (repo studentRepository) DeleteStudentByID(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM student WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return student.ErrNotFound
	}
	return nil
}
