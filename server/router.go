package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpHandler "music-contest/interfaces/http"
	"music-contest/interfaces/middleware"
)

func InitiateRouter(
	contestHandler httpHandler.IContestHandler,
	submissionHandler httpHandler.ISubmissionHandler,
	statsHandler httpHandler.IStatsHandler,
	voteHandler httpHandler.IVoteHandler,
	secretKey string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:4201"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	admin := api.Group("")
	admin.Use(middleware.AdminOnly())
	admin.POST("/contests", contestHandler.Create)
	admin.PATCH("/contests/:contestId", contestHandler.Edit)
	admin.DELETE("/contests/:contestId", contestHandler.Delete)
	admin.GET("/contests/:contestId/export", contestHandler.Export)

	api.GET("/contests/:contestId", contestHandler.Get)
	api.GET("/contests/:contestId/stats", statsHandler.ContestStats)

	api.POST("/submissions", submissionHandler.Submit)
	api.DELETE("/submissions/:id", submissionHandler.Delete)

	api.PUT("/submissions/:id/vote", voteHandler.Add)
	api.DELETE("/submissions/:id/vote", voteHandler.Remove)

	return router
}
