// Package users provides the /users CRUD endpoints.
package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/interviewd/src/common/errors"
	"github.com/mockstage/interviewd/src/interviewd/api/common"
	"github.com/mockstage/interviewd/src/interviewd/auth"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// Handler provides the users endpoints
type Handler struct {
	repo   *db.UserRepository
	hasher auth.PasswordHasher
}

// Config holds the users handler dependencies
type Config struct {
	Repo   *db.UserRepository
	Hasher auth.PasswordHasher
}

// NewHandler creates a new users handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		repo:   cfg.Repo,
		hasher: cfg.Hasher,
	}
}

// HandleList returns all users with the password field excluded.
// An empty collection is a 400 by contract: the legacy frontend treats
// "no users" as a client error, and that behavior is preserved.
func (h *Handler) HandleList(c *gin.Context) {
	users, err := h.repo.List()
	if err != nil {
		common.Error(c, err)
		return
	}

	if len(users) == 0 {
		common.Error(c, errors.ErrNoUsersFound)
		return
	}

	c.JSON(http.StatusOK, users)
}

// HandleCreate creates a new user
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		common.Error(c, errors.ErrAllFieldsRequired)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		common.Error(c, errors.ErrInvalidUserData.WithCause(err))
		return
	}

	user := db.NewUser(req.Email, req.FirstName, req.LastName, passwordHash)
	if err := h.repo.Create(user); err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusCreated, "New user %s created", user.Email)
}

// HandleUpdate mutates an existing user. All fields except password are
// required; when password is supplied it is re-hashed, otherwise the stored
// hash is untouched.
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.ID == "" || req.Email == "" || req.FirstName == "" || req.LastName == "" ||
		req.DarkMode == nil || req.InterviewFontSize == nil {
		common.Error(c, errors.ErrAllFieldsRequired.WithMessage("All fields except password are required"))
		return
	}

	var passwordHash string
	if req.Password != "" {
		var err error
		passwordHash, err = h.hasher.Hash(req.Password)
		if err != nil {
			common.Error(c, errors.ErrInvalidUserData.WithCause(err))
			return
		}
	}

	user := &db.User{
		ID:                req.ID,
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		PasswordHash:      passwordHash,
		DarkMode:          *req.DarkMode,
		InterviewFontSize: *req.InterviewFontSize,
	}

	if err := h.repo.Update(user); err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusOK, "%s %s updated", user.FirstName, user.LastName)
}

// HandleDelete removes a user
func (h *Handler) HandleDelete(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.ID == "" {
		common.Error(c, errors.ErrUserIDRequired)
		return
	}

	deleted, err := h.repo.Delete(req.ID)
	if err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusOK, "User %s with ID %s deleted", deleted.Email, deleted.ID)
}
