package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account.
// JSON field names match the wire format consumed by the existing frontend.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	PasswordHash      string    `json:"-"` // Never expose in JSON
	DarkMode          bool      `json:"darkMode"`
	InterviewFontSize int       `json:"interviewFontSize"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DisplayName returns the name shown alongside joined records.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// NewUser creates a new user with a generated UUID and preference defaults
func NewUser(email, firstName, lastName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:                uuid.New().String(),
		Email:             email,
		FirstName:         firstName,
		LastName:          lastName,
		PasswordHash:      passwordHash,
		DarkMode:          false,
		InterviewFontSize: 16,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Interview represents an interview owned by a user.
// The user reference is advisory: it is not enforced by the store.
type Interview struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewInterview creates a new interview with a generated UUID
func NewInterview(userID, title string) *Interview {
	now := time.Now().UTC()
	return &Interview{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// InterviewWithUser is an interview joined with its owner's display name
type InterviewWithUser struct {
	Interview
	Username string `json:"username"`
}

// Question represents an interview question owned by a user
type Question struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user"`
	InterviewID string    `json:"interview"`
	Body        string    `json:"body"`
	Toggled     bool      `json:"toggled"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewQuestion creates a new question with a generated UUID.
// Toggled defaults to true; its meaning belongs to the frontend.
func NewQuestion(userID, interviewID, body string) *Question {
	now := time.Now().UTC()
	return &Question{
		ID:          uuid.New().String(),
		UserID:      userID,
		InterviewID: interviewID,
		Body:        body,
		Toggled:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// QuestionWithUser is a question joined with its owner's display name
type QuestionWithUser struct {
	Question
	Username string `json:"username"`
}
