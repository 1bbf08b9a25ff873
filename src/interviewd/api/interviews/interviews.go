// Package interviews provides the /interviews CRUD endpoints.
package interviews

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/interviewd/src/common/errors"
	"github.com/mockstage/interviewd/src/interviewd/api/common"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// Handler provides the interviews endpoints
type Handler struct {
	repo *db.InterviewRepository
}

// Config holds the interviews handler dependencies
type Config struct {
	Repo *db.InterviewRepository
}

// NewHandler creates a new interviews handler
func NewHandler(cfg Config) *Handler {
	return &Handler{repo: cfg.Repo}
}

// HandleList returns all interviews joined with the owning user's display
// name. An empty collection is a 400 by contract, same as the other
// resources.
func (h *Handler) HandleList(c *gin.Context) {
	interviews, err := h.repo.List()
	if err != nil {
		common.Error(c, err)
		return
	}

	if len(interviews) == 0 {
		common.Error(c, errors.ErrNoInterviewsFound)
		return
	}

	c.JSON(http.StatusOK, interviews)
}

// HandleCreate creates a new interview. Titles are unique across all
// interviews, not per user.
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.User == "" || req.Title == "" {
		common.Error(c, errors.ErrAllFieldsRequired)
		return
	}

	interview := db.NewInterview(req.User, req.Title)
	if err := h.repo.Create(interview); err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusCreated, "New interview created")
}

// HandleUpdate mutates an existing interview
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req UpdateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.ID == "" || req.User == "" || req.Title == "" {
		common.Error(c, errors.ErrAllFieldsRequired)
		return
	}

	interview := &db.Interview{
		ID:     req.ID,
		UserID: req.User,
		Title:  req.Title,
	}

	if err := h.repo.Update(interview); err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusOK, "'%s' updated", interview.Title)
}

// HandleDelete removes an interview. Its questions are left in place.
func (h *Handler) HandleDelete(c *gin.Context) {
	var req DeleteInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.ID == "" {
		common.Error(c, errors.ErrInterviewIDRequired)
		return
	}

	deleted, err := h.repo.Delete(req.ID)
	if err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusOK, "Interview '%s' with ID %s deleted", deleted.Title, deleted.ID)
}
