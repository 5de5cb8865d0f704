package routes

import (
	"repairdesk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathJobs        = "/jobs"
	PathTechnicians = "/technicians"
	PathInvites     = "/invites"
	PathMe          = "/me"
)

func addJobRoutes(rg *gin.RouterGroup, jobHandler *handlers.JobHandler, eventsHandler *handlers.EventsHandler) {
	jobs := rg.Group(PathJobs)
	{
		jobs.POST("", jobHandler.CreateJob)
		jobs.GET("", jobHandler.ListJobs)
		// Static segments are registered before /:id.
		jobs.POST("/transition", jobHandler.Transition)
		jobs.POST("/assign", jobHandler.Assign)
		jobs.GET("/events", eventsHandler.Stream)
		jobs.GET("/export", jobHandler.ExportJobs)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.GET("/:id/history", jobHandler.GetHistory)
		jobs.GET("/:id/audit", jobHandler.GetAudit)
	}
}

func addUserRoutes(rg *gin.RouterGroup, userHandler *handlers.UserHandler) {
	rg.GET(PathMe, userHandler.Me)
	rg.GET(PathTechnicians, userHandler.ListTechnicians)

	invites := rg.Group(PathInvites)
	{
		invites.POST("", userHandler.CreateInvite)
		invites.POST("/accept", userHandler.AcceptInvite)
	}
}
