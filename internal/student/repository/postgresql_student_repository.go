// Package repository implements student persistence for PostgreSQL and MySQL with soft deletion.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/recordseal/internal/database"
	apperrors "github.com/allisson/recordseal/internal/errors"
	studentDomain "github.com/allisson/recordseal/internal/student/domain"
)

// PostgreSQLStudentRepository implements Student persistence for PostgreSQL databases.
type PostgreSQLStudentRepository struct {
	db *sql.DB
}

// NewPostgreSQLStudentRepository creates a new PostgreSQL Student repository instance.
func NewPostgreSQLStudentRepository(db *sql.DB) *PostgreSQLStudentRepository {
	return &PostgreSQLStudentRepository{db: db}
}

// Create inserts a new student.
func (p *PostgreSQLStudentRepository) Create(ctx context.Context, student *studentDomain.Student) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO students (id, ciphertext, created_at, updated_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		student.ID,
		student.Ciphertext,
		student.CreatedAt,
		student.UpdatedAt,
		student.DeletedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create student")
	}
	return nil
}

// Get retrieves a non-deleted student by id.
func (p *PostgreSQLStudentRepository) Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ciphertext, created_at, updated_at, deleted_at
			  FROM students
			  WHERE id = $1 AND deleted_at IS NULL`

	var student studentDomain.Student
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&student.ID,
		&student.Ciphertext,
		&student.CreatedAt,
		&student.UpdatedAt,
		&student.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, studentDomain.ErrStudentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get student")
	}

	return &student, nil
}

// List returns non-deleted students ordered by id (creation order for UUIDv7).
func (p *PostgreSQLStudentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*studentDomain.Student, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, ciphertext, created_at, updated_at, deleted_at
			  FROM students
			  WHERE deleted_at IS NULL
			  ORDER BY id ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list students")
	}
	defer func() {
		_ = rows.Close()
	}()

	students := make([]*studentDomain.Student, 0)
	for rows.Next() {
		var student studentDomain.Student
		if err := rows.Scan(
			&student.ID,
			&student.Ciphertext,
			&student.CreatedAt,
			&student.UpdatedAt,
			&student.DeletedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan student")
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate students")
	}

	return students, nil
}

// Update replaces the ciphertext of a non-deleted student.
func (p *PostgreSQLStudentRepository) Update(ctx context.Context, student *studentDomain.Student) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE students
			  SET ciphertext = $1, updated_at = $2
			  WHERE id = $3 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, student.Ciphertext, student.UpdatedAt, student.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update student")
	}
	return requireAffected(result)
}

// Delete soft deletes a student by setting deleted_at.
func (p *PostgreSQLStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE students
			  SET deleted_at = $1
			  WHERE id = $2 AND deleted_at IS NULL`

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete student")
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return studentDomain.ErrStudentNotFound
	}
	return nil
}
