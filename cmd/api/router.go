package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dialogue-backend/internal/config"
	"dialogue-backend/internal/shared/middleware"
	"dialogue-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupMovieRoutes(v1, c)
		setupCharacterRoutes(v1, c)
		setupLineRoutes(v1, c)
		setupConversationRoutes(v1, c)
	}

	return router
}

func setupMovieRoutes(v1 *gin.RouterGroup, c *container.Container) {
	movies := v1.Group("/movies")
	{
		movies.GET("", c.MovieHandler.ListMovies)
		movies.GET("/:id", c.MovieHandler.GetMovie)
		movies.POST("/:id/conversations", c.ConversationHandler.AddConversation)
	}
}

func setupCharacterRoutes(v1 *gin.RouterGroup, c *container.Container) {
	characters := v1.Group("/characters")
	{
		characters.GET("", c.CharacterHandler.ListCharacters)
		characters.GET("/:id", c.CharacterHandler.GetCharacter)
	}
}

func setupLineRoutes(v1 *gin.RouterGroup, c *container.Container) {
	lines := v1.Group("/lines")
	{
		lines.GET("", c.LineHandler.ListLines)
		lines.GET("/:id", c.LineHandler.GetLine)
	}
}

func setupConversationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	conversations := v1.Group("/conversations")
	{
		conversations.GET("/:id", c.ConversationHandler.GetConversation)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := gin.H{
			"status":  "ok",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
			"backend": c.Config.Corpus.Backend,
		}
		if c.Config.Corpus.Backend == config.BackendPostgres {
			if err := c.DB.Ping(ctx.Request.Context()); err != nil {
				status["status"] = "degraded"
				status["database"] = err.Error()
				ctx.JSON(http.StatusServiceUnavailable, status)
				return
			}
		}
		ctx.JSON(http.StatusOK, status)
	}
}
