// Package api wires the HTTP handler packages together and registers routes.
package api

import (
	"github.com/mockstage/interviewd/src/common/logs"
	"github.com/mockstage/interviewd/src/common/version"
	"github.com/mockstage/interviewd/src/interviewd/api/base"
	"github.com/mockstage/interviewd/src/interviewd/api/interviews"
	"github.com/mockstage/interviewd/src/interviewd/api/questions"
	"github.com/mockstage/interviewd/src/interviewd/api/users"
	"github.com/mockstage/interviewd/src/interviewd/auth"
)

var log = logs.NewDefault()

// SetLogger sets the logger for the api package
func SetLogger(l *logs.Logger) {
	log = l
}

// SetVersionInfo sets the version info for the base endpoints
func SetVersionInfo(v *version.Info) {
	base.SetVersionInfo(v)
}

// New creates a new API instance with all subpackage handlers
func New(cfg Config) *API {
	return &API{
		Base: base.NewHandler(),

		Auth: auth.NewHandler(auth.Config{
			Users:      cfg.UserRepo,
			JWTService: cfg.JWTService,
			Hasher:     cfg.Hasher,
		}),

		Users: users.NewHandler(users.Config{
			Repo:   cfg.UserRepo,
			Hasher: cfg.Hasher,
		}),

		Interviews: interviews.NewHandler(interviews.Config{
			Repo: cfg.InterviewRepo,
		}),

		Questions: questions.NewHandler(questions.Config{
			Repo: cfg.QuestionRepo,
		}),

		jwtService: cfg.JWTService,
	}
}
