package db

import (
	"database/sql"
	"time"

	"github.com/mockstage/interviewd/src/common/errors"
)

// UserRepository handles user persistence
type UserRepository struct {
	db *Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *Database) *UserRepository {
	return &UserRepository{db: database}
}

// List returns all users, oldest first. The password hash is never selected.
// An empty collection yields an empty slice, not an error; the protocol
// boundary decides how to surface it.
func (r *UserRepository) List() ([]User, error) {
	rows, err := r.db.DB().Query(`
		SELECT id, email, first_name, last_name, dark_mode, interview_font_size, created_at, updated_at
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName,
			&u.DarkMode, &u.InterviewFontSize, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, errors.ErrDatabaseQuery.WithCause(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return users, nil
}

// GetByID retrieves a user by ID, including the password hash
func (r *UserRepository) GetByID(id string) (*User, error) {
	u := &User{}
	err := r.db.DB().QueryRow(`
		SELECT id, email, first_name, last_name, password_hash, dark_mode, interview_font_size, created_at, updated_at
		FROM users
		WHERE id = ?
	`, id).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.DarkMode, &u.InterviewFontSize, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return u, nil
}

// GetByEmail retrieves a user by email. The lookup folds case and accents,
// so "A@x.com" resolves a user stored as "a@x.com".
func (r *UserRepository) GetByEmail(email string) (*User, error) {
	u := &User{}
	err := r.db.DB().QueryRow(`
		SELECT id, email, first_name, last_name, password_hash, dark_mode, interview_font_size, created_at, updated_at
		FROM users
		WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.DarkMode, &u.InterviewFontSize, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return u, nil
}

// Create persists a new user inside a transaction.
// The duplicate-email check runs first for a friendly conflict error; the
// unique index on users.email is the atomic backstop should a concurrent
// create slip past the check.
func (r *UserRepository) Create(user *User) error {
	tx, err := r.db.DB().Begin()
	if err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", user.Email).Scan(&count); err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	if count > 0 {
		return errors.ErrEmailInUse
	}

	_, err = tx.Exec(`
		INSERT INTO users (id, email, first_name, last_name, password_hash, dark_mode, interview_font_size, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, user.ID, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		user.DarkMode, user.InterviewFontSize, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.ErrEmailInUse
		}
		return errors.ErrDatabaseQuery.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}

	return nil
}

// Update mutates an existing user. A duplicate-email check excludes the user
// itself, so updating a user to its current email is permitted.
// If user.PasswordHash is empty the stored hash is left untouched.
func (r *UserRepository) Update(user *User) error {
	tx, err := r.db.DB().Begin()
	if err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE id = ?", user.ID).Scan(&count); err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	if count == 0 {
		return errors.ErrUserNotFound
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE email = ? AND id != ?", user.Email, user.ID).Scan(&count); err != nil {
		return errors.ErrDatabaseQuery.WithCause(err)
	}
	if count > 0 {
		return errors.ErrEmailInUse
	}

	user.UpdatedAt = time.Now().UTC()

	if user.PasswordHash != "" {
		_, err = tx.Exec(`
			UPDATE users
			SET email = ?, first_name = ?, last_name = ?, password_hash = ?, dark_mode = ?, interview_font_size = ?, updated_at = ?
			WHERE id = ?
		`, user.Email, user.FirstName, user.LastName, user.PasswordHash,
			user.DarkMode, user.InterviewFontSize, user.UpdatedAt, user.ID)
	} else {
		_, err = tx.Exec(`
			UPDATE users
			SET email = ?, first_name = ?, last_name = ?, dark_mode = ?, interview_font_size = ?, updated_at = ?
			WHERE id = ?
		`, user.Email, user.FirstName, user.LastName,
			user.DarkMode, user.InterviewFontSize, user.UpdatedAt, user.ID)
	}
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.ErrEmailInUse
		}
		return errors.ErrDatabaseQuery.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.ErrDatabaseTransaction.WithCause(err)
	}

	return nil
}

// Delete removes a user by ID and returns the deleted record for the
// confirmation message.
func (r *UserRepository) Delete(id string) (*User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if _, err := r.db.DB().Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return nil, errors.ErrDatabaseQuery.WithCause(err)
	}

	return user, nil
}
