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

// MySQLStudentRepository implements Student persistence for MySQL databases. Ids are stored
// as BINARY(16).
type MySQLStudentRepository struct {
	db *sql.DB
}

// NewMySQLStudentRepository creates a new MySQL Student repository instance.
func NewMySQLStudentRepository(db *sql.DB) *MySQLStudentRepository {
	return &MySQLStudentRepository{db: db}
}

// Create inserts a new student.
func (m *MySQLStudentRepository) Create(ctx context.Context, student *studentDomain.Student) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO students (id, ciphertext, created_at, updated_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := student.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal student id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
func (m *MySQLStudentRepository) Get(ctx context.Context, id uuid.UUID) (*studentDomain.Student, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ciphertext, created_at, updated_at, deleted_at
			  FROM students
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal student id")
	}

	student, err := scanMySQLStudent(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, studentDomain.ErrStudentNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get student")
	}
	return student, nil
}

// List returns non-deleted students ordered by id.
func (m *MySQLStudentRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*studentDomain.Student, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, ciphertext, created_at, updated_at, deleted_at
			  FROM students
			  WHERE deleted_at IS NULL
			  ORDER BY id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list students")
	}
	defer func() {
		_ = rows.Close()
	}()

	students := make([]*studentDomain.Student, 0)
	for rows.Next() {
		student, err := scanMySQLStudent(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan student")
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate students")
	}

	return students, nil
}

// Update replaces the ciphertext of a non-deleted student.
func (m *MySQLStudentRepository) Update(ctx context.Context, student *studentDomain.Student) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE students
			  SET ciphertext = ?, updated_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	id, err := student.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal student id")
	}

	result, err := querier.ExecContext(ctx, query, student.Ciphertext, student.UpdatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update student")
	}
	return requireAffected(result)
}

// Delete soft deletes a student by setting deleted_at.
func (m *MySQLStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE students
			  SET deleted_at = ?
			  WHERE id = ? AND deleted_at IS NULL`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal student id")
	}

	result, err := querier.ExecContext(ctx, query, time.Now().UTC(), idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete student")
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLStudent(row rowScanner) (*studentDomain.Student, error) {
	var student studentDomain.Student
	var id []byte

	if err := row.Scan(
		&id,
		&student.Ciphertext,
		&student.CreatedAt,
		&student.UpdatedAt,
		&student.DeletedAt,
	); err != nil {
		return nil, err
	}

	if err := student.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal student id")
	}
	return &student, nil
}
