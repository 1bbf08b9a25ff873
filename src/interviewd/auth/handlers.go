package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/interviewd/src/common/errors"
	"github.com/mockstage/interviewd/src/interviewd/db"
)

// Handler provides the /auth HTTP endpoints
type Handler struct {
	users      *db.UserRepository
	jwtService *JWTService
	hasher     PasswordHasher
}

// Config holds the auth handler dependencies
type Config struct {
	Users      *db.UserRepository
	JWTService *JWTService
	Hasher     PasswordHasher
}

// NewHandler creates a new auth handler
func NewHandler(cfg Config) *Handler {
	return &Handler{
		users:      cfg.Users,
		jwtService: cfg.JWTService,
		hasher:     cfg.Hasher,
	}
}

// BearerToken extracts the bearer token from the Authorization header
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// HandleLogin authenticates a user by email and password and issues a token
func (h *Handler) HandleLogin(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, errors.ErrInvalidJSON.ToResponse())
		return
	}

	if creds.Email == "" || creds.Password == "" {
		c.JSON(http.StatusBadRequest, errors.ErrAllFieldsRequired.ToResponse())
		return
	}

	user, err := h.users.GetByEmail(creds.Email)
	if err != nil {
		// Indistinguishable from a wrong password
		c.JSON(http.StatusUnauthorized, errors.ErrInvalidCredentials.ToResponse())
		return
	}

	if !h.hasher.Verify(user.PasswordHash, creds.Password) {
		c.JSON(http.StatusUnauthorized, errors.ErrInvalidCredentials.ToResponse())
		return
	}

	token, err := h.jwtService.GenerateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errors.ErrInternal.ToResponse())
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresIn: int64(h.jwtService.TokenDuration().Seconds()),
	})
}

// HandleLogout revokes the presented token
func (h *Handler) HandleLogout(c *gin.Context) {
	token := BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, errors.ErrNoToken.ToResponse())
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(errors.GetHTTPStatus(err), errors.NewResponse(err))
		return
	}

	if err := h.jwtService.RevokeToken(claims); err != nil {
		c.JSON(errors.GetHTTPStatus(err), errors.NewResponse(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// HandleValidate echoes the claims of a valid token
func (h *Handler) HandleValidate(c *gin.Context) {
	token := BearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, errors.ErrNoToken.ToResponse())
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(errors.GetHTTPStatus(err), errors.NewResponse(err))
		return
	}

	c.JSON(http.StatusOK, claims)
}
