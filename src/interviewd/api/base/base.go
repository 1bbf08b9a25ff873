// Package base provides the discovery, health, and version endpoints.
package base

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/interviewd/src/common/version"
)

var versionInfo = version.New()

// SetVersionInfo sets the version info reported by the version endpoint
func SetVersionInfo(v *version.Info) {
	versionInfo = v
}

// Handler provides the base endpoints
type Handler struct{}

// NewHandler creates a new base handler
func NewHandler() *Handler {
	return &Handler{}
}

// HandleRoot returns API discovery information
func (h *Handler) HandleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "interviewd",
		"version": versionInfo.ReleaseVersion,
		"resources": []string{
			"/users",
			"/interviews",
			"/questions",
		},
		"auth": "/auth/login",
	})
}

// HandleHealth returns a liveness check
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleVersion returns build version information
func (h *Handler) HandleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         versionInfo.Version,
		"release_name":    versionInfo.ReleaseName,
		"release_version": versionInfo.ReleaseVersion,
		"build_date":      versionInfo.BuildDate,
		"git_commit":      versionInfo.GitCommit,
		"go_version":      version.GoVersion(),
	})
}
