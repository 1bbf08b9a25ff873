package api

import (
	"github.com/mockstage/interviewd/src/interviewd/api/base"
	"github.com/mockstage/interviewd/src/interviewd/api/interviews"
	"github.com/mockstage/interviewd/src/interviewd/api/questions"
	"github.com/mockstage/interviewd/src/interviewd/api/users"
	"github.com/mockstage/interviewd/src/interviewd/auth"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// API holds all handler instances and dependencies
type API struct {
	Base       *base.Handler
	Auth       *auth.Handler
	Users      *users.Handler
	Interviews *interviews.Handler
	Questions  *questions.Handler

	// Direct dependency for the authentication middleware
	jwtService *auth.JWTService
}

// Config contains API configuration options
type Config struct {
	UserRepo      *db.UserRepository
	InterviewRepo *db.InterviewRepository
	QuestionRepo  *db.QuestionRepository
	JWTService    *auth.JWTService
	Hasher        auth.PasswordHasher
}
