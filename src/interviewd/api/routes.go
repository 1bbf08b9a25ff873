package api

import "github.com/gin-gonic/gin"

// RegisterRoutes configures all API routes on the given router
func (a *API) RegisterRoutes(router *gin.Engine) {
	// Root endpoint - API discovery
	router.GET("/", a.Base.HandleRoot)
	router.GET("/v1/health", a.Base.HandleHealth)
	router.GET("/v1/version", a.Base.HandleVersion)

	// Auth routes
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", a.Auth.HandleLogin)
		authGroup.POST("/logout", a.Auth.HandleLogout)
		authGroup.GET("/validate", a.Auth.HandleValidate)
	}

	// Resource routes - all behind the authentication gate.
	// PATCH and DELETE take the record id in the JSON body.
	usersGroup := router.Group("/users")
	usersGroup.Use(a.authRequired())
	{
		usersGroup.GET("", a.Users.HandleList)
		usersGroup.POST("", a.Users.HandleCreate)
		usersGroup.PATCH("", a.Users.HandleUpdate)
		usersGroup.DELETE("", a.Users.HandleDelete)
	}

	interviewsGroup := router.Group("/interviews")
	interviewsGroup.Use(a.authRequired())
	{
		interviewsGroup.GET("", a.Interviews.HandleList)
		interviewsGroup.POST("", a.Interviews.HandleCreate)
		interviewsGroup.PATCH("", a.Interviews.HandleUpdate)
		interviewsGroup.DELETE("", a.Interviews.HandleDelete)
	}

	questionsGroup := router.Group("/questions")
	questionsGroup.Use(a.authRequired())
	{
		questionsGroup.GET("", a.Questions.HandleList)
		questionsGroup.POST("", a.Questions.HandleCreate)
		questionsGroup.PATCH("", a.Questions.HandleUpdate)
		questionsGroup.DELETE("", a.Questions.HandleDelete)
	}
}
