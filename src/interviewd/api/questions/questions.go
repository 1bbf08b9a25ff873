// Package questions provides the /questions CRUD endpoints.
package questions

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/interviewd/src/common/errors"
	"github.com/mockstage/interviewd/src/interviewd/api/common"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// Handler provides the questions endpoints
type Handler struct {
	repo *db.QuestionRepository
}

// Config holds the questions handler dependencies
type Config struct {
	Repo *db.QuestionRepository
}

// NewHandler creates a new questions handler
func NewHandler(cfg Config) *Handler {
	return &Handler{repo: cfg.Repo}
}

// HandleList returns all questions joined with the owning user's display
// name. An empty collection is a 400 by contract.
func (h *Handler) HandleList(c *gin.Context) {
	questions, err := h.repo.List()
	if err != nil {
		common.Error(c, err)
		return
	}

	if len(questions) == 0 {
		common.Error(c, errors.ErrNoQuestionsFound)
		return
	}

	c.JSON(http.StatusOK, questions)
}

// HandleCreate creates a new question. Bodies are not unique, so there is
// no duplicate check.
func (h *Handler) HandleCreate(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.User == "" || req.Interview == "" || req.Body == "" {
		common.Error(c, errors.ErrAllFieldsRequired)
		return
	}

	question := db.NewQuestion(req.User, req.Interview, req.Body)
	if req.Toggled != nil {
		question.Toggled = *req.Toggled
	}
	question.Notes = req.Notes

	if err := h.repo.Create(question); err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusCreated, "New question created")
}

// HandleUpdate mutates an existing question. Owning user, interview
// (reassignment permitted), and body are required; toggled and notes are
// merged with the stored record when omitted.
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.ID == "" || req.User == "" || req.Interview == "" || req.Body == "" {
		common.Error(c, errors.ErrAllFieldsRequired)
		return
	}

	question, err := h.repo.GetByID(req.ID)
	if err != nil {
		common.Error(c, err)
		return
	}

	question.UserID = req.User
	question.InterviewID = req.Interview
	question.Body = req.Body
	if req.Toggled != nil {
		question.Toggled = *req.Toggled
	}
	if req.Notes != nil {
		question.Notes = *req.Notes
	}

	if err := h.repo.Update(question); err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusOK, "'%s' updated", question.Body)
}

// HandleDelete removes a question
func (h *Handler) HandleDelete(c *gin.Context) {
	var req DeleteQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, errors.ErrInvalidJSON)
		return
	}

	if req.ID == "" {
		common.Error(c, errors.ErrQuestionIDRequired)
		return
	}

	deleted, err := h.repo.Delete(req.ID)
	if err != nil {
		common.Error(c, err)
		return
	}

	common.Message(c, http.StatusOK, "Question '%s' with ID %s deleted", deleted.Body, deleted.ID)
}
