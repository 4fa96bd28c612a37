package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/subject"
)

type subjectRow struct {
	ID         string    `db:"id"`
	Code       string    `db:"code"`
	Name       string    `db:"name"`
	Instructor string    `db:"instructor"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (row subjectRow) model() subject.Subject {
	return subject.Subject{
		ID:         row.ID,
		Code:       row.Code,
		Name:       row.Name,
		Instructor: row.Instructor,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *sqlx.DB) *subjectRepository {
	return &subjectRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to subject.ErrNotFound
func (repo subjectRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return subject.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo subjectRepository) CreateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	sub.ID = uuid.New().String()

	var row subjectRow
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO subject (id, code, name, instructor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`,
		sub.ID, sub.Code, sub.Name, sub.Instructor, sub.CreatedAt.UTC(), sub.UpdatedAt.UTC(),
	).StructScan(&row)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return row.model(), nil
}

func (repo subjectRepository) QueryAllSubjects(ctx context.Context) ([]subject.Subject, error) {
	var rows []subjectRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM subject ORDER BY created_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}

	subjects := make([]subject.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.model())
	}
	return subjects, nil
}

func (repo subjectRepository) GetSubjectByID(ctx context.Context, id string) (subject.Subject, error) {
	if _, err := uuid.Parse(id); err != nil {
		return subject.Subject{}, subject.ErrNotFound
	}

	var row subjectRow
	if err := repo.db.GetContext(ctx, &row, `SELECT * FROM subject WHERE id = $1`, id); err != nil {
		return subject.Subject{}, repo.trapNoRowsErr(err, "finding subject by ID")
	}
	return row.model(), nil
}

func (repo subjectRepository) UpdateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	var row subjectRow
	err := repo.db.QueryRowxContext(ctx, `
		UPDATE subject
		SET code = $2, name = $3, instructor = $4, updated_at = $5
		WHERE id = $1
		RETURNING *`,
		sub.ID, sub.Code, sub.Name, sub.Instructor, sub.UpdatedAt.UTC(),
	).StructScan(&row)
	if err != nil {
		return subject.Subject{}, repo.trapNoRowsErr(err, "updating subject")
	}
	return row.model(), nil
}

func (repo subjectRepository) DeleteSubjectByID(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM subject WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	if cnt, err := res.RowsAffected(); err == nil && cnt == 0 {
		return subject.ErrNotFound
	}
	return nil
}
