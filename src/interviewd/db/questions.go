package db

import (
	"database/sql"
	"time"

	"github.com/mockstage/interviewd/src/common/errors"
)

// QuestionRepository handles question persistence
type QuestionRepository struct {
	db *Database
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(database *Database) *QuestionRepository {
	return &QuestionRepository{db: database}
}

// List returns all questions joined with the owner's display name, batched
// in a single query.
func (r *QuestionRepository) List() ([]QuestionWithUser, error) {
	rows, err := r.db.DB().Query(`
		SELECT q.id, q.user_id, q.interview_id, q.body, q.toggled, q.notes, q.created_at, q.updated_at,
		       COALESCE(u.first_name || ' ' || u.last_name, '') AS username
		FROM questions q
		LEFT JOIN users u ON q.user_id = u.id
		ORDER BY q.created_at
	`)
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}
	defer rows.Close()

	var questions []QuestionWithUser
	for rows.Next() {
		var q QuestionWithUser
		var notes sql.NullString
		if err := rows.Scan(&q.ID, &q.UserID, &q.InterviewID, &q.Body, &q.Toggled, &notes,
			&q.CreatedAt, &q.UpdatedAt, &q.Username); err != nil {
			return nil, errors.ErrDatabaseQuery.WithCause(err)
		}
		q.Notes = notes.String
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return questions, nil
}

// GetByID retrieves a question by ID
func (r *QuestionRepository) GetByID(id string) (*Question, error) {
	q := &Question{}
	var notes sql.NullString
	err := r.db.DB().QueryRow(`
		SELECT id, user_id, interview_id, body, toggled, notes, created_at, updated_at
		FROM questions
		WHERE id = ?
	`, id).Scan(&q.ID, &q.UserID, &q.InterviewID, &q.Body, &q.Toggled, &notes, &q.CreatedAt, &q.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.ErrQuestionNotFound
	}
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}
	q.Notes = notes.String

	return q, nil
}

// Create persists a new question. Bodies carry no uniqueness constraint, so
// there is no duplicate check.
func (r *QuestionRepository) Create(q *Question) error {
	_, err := r.db.DB().Exec(`
		INSERT INTO questions (id, user_id, interview_id, body, toggled, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.UserID, q.InterviewID, q.Body, q.Toggled, nullableString(q.Notes), q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}

	return nil
}

// Update overwrites an existing question. The owning user, interview
// (reassignment permitted), body, toggled state, and notes are all mutable.
func (r *QuestionRepository) Update(q *Question) error {
	q.UpdatedAt = time.Now().UTC()

	res, err := r.db.DB().Exec(`
		UPDATE questions
		SET user_id = ?, interview_id = ?, body = ?, toggled = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, q.UserID, q.InterviewID, q.Body, q.Toggled, nullableString(q.Notes), q.UpdatedAt, q.ID)
	if err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	if affected == 0 {
		return errors.ErrQuestionNotFound
	}

	return nil
}

// Delete removes a question by ID and returns the deleted record
func (r *QuestionRepository) Delete(id string) (*Question, error) {
	q, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.DB().Exec("DELETE FROM questions WHERE id = ?", id); err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return q, nil
}

// nullableString maps an empty string to NULL for optional text columns
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
