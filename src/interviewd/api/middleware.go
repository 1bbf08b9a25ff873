package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mockstage/interviewd/src/common/errors"
	"github.com/mockstage/interviewd/src/interviewd/auth"
)

// authRequired is a middleware that requires a valid, unrevoked JWT token.
// Unauthenticated requests never reach the resource handlers.
func (a *API) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errors.ErrNoToken.ToResponse())
			return
		}

		claims, err := a.jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(errors.GetHTTPStatus(err), errors.NewResponse(err))
			return
		}

		// Store claims in context for handlers to use
		c.Set("claims", claims)
		c.Next()
	}
}

// GetClaims extracts the validated claims placed by authRequired.
// Returns nil when the request was not authenticated.
func GetClaims(c *gin.Context) *auth.TokenClaims {
	v, ok := c.Get("claims")
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
