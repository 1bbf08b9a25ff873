package db

import (
	"database/sql"
	"time"

	"github.com/mockstage/interviewd/src/common/errors"
)

// InterviewRepository handles interview persistence
type InterviewRepository struct {
	db *Database
}

// NewInterviewRepository creates a new interview repository
func NewInterviewRepository(database *Database) *InterviewRepository {
	return &InterviewRepository{db: database}
}

// List returns all interviews joined with the owner's display name.
// The join is a single batched query, not a per-record lookup, and is a
// LEFT JOIN so a dangling user reference yields an empty username.
func (r *InterviewRepository) List() ([]InterviewWithUser, error) {
	rows, err := r.db.DB().Query(`
		SELECT i.id, i.user_id, i.title, i.created_at, i.updated_at,
		       COALESCE(u.first_name || ' ' || u.last_name, '') AS username
		FROM interviews i
		LEFT JOIN users u ON i.user_id = u.id
		ORDER BY i.created_at
	`)
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}
	defer rows.Close()

	var interviews []InterviewWithUser
	for rows.Next() {
		var iv InterviewWithUser
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.Title, &iv.CreatedAt, &iv.UpdatedAt, &iv.Username); err != nil {
			return nil, errors.ErrDatabaseQuery.WithCause(err)
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return interviews, nil
}

// GetByID retrieves an interview by ID
func (r *InterviewRepository) GetByID(id string) (*Interview, error) {
	iv := &Interview{}
	err := r.db.DB().QueryRow(`
		SELECT id, user_id, title, created_at, updated_at
		FROM interviews
		WHERE id = ?
	`, id).Scan(&iv.ID, &iv.UserID, &iv.Title, &iv.CreatedAt, &iv.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.ErrInterviewNotFound
	}
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return iv, nil
}

// Create persists a new interview inside a transaction.
// Titles are unique across all interviews regardless of owner, compared
// case- and accent-insensitively. The unique index on interviews.title is
// the atomic backstop for the duplicate check.
func (r *InterviewRepository) Create(iv *Interview) error {
	tx, err := r.db.DB().Begin()
	if err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM interviews WHERE title = ?", iv.Title).Scan(&count); err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	if count > 0 {
		return errors.ErrDuplicateTitle
	}

	_, err = tx.Exec(`
		INSERT INTO interviews (id, user_id, title, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, iv.ID, iv.UserID, iv.Title, iv.CreatedAt, iv.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.ErrDuplicateTitle
		}
		return errors.ErrDatabaseQuery.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}

	return nil
}

// Update mutates an existing interview. The duplicate-title check excludes
// the interview itself, so renaming an interview to its current title is
// permitted.
func (r *InterviewRepository) Update(iv *Interview) error {
	tx, err := r.db.DB().Begin()
	if err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM interviews WHERE id = ?", iv.ID).Scan(&count); err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	if count == 0 {
		return errors.ErrInterviewNotFound
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM interviews WHERE title = ? AND id != ?", iv.Title, iv.ID).Scan(&count); err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	if count > 0 {
		return errors.ErrDuplicateTitle
	}

	iv.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(`
		UPDATE interviews
		SET user_id = ?, title = ?, updated_at = ?
		WHERE id = ?
	`, iv.UserID, iv.Title, iv.UpdatedAt, iv.ID)
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.ErrDuplicateTitle
		}
		return errors.ErrDatabaseQuery.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}

	return nil
}

// Delete removes an interview by ID and returns the deleted record.
// Questions referencing the interview are left in place.
func (r *InterviewRepository) Delete(id string) (*Interview, error) {
	iv, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.DB().Exec("DELETE FROM interviews WHERE id = ?", id); err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return iv, nil
}
