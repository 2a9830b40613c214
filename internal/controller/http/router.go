package http

import (
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	ScheduleHandler *ScheduleHandler
	CourseHandler   *CourseHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()

	r.GET("/healthcheck", func(c *gin.Context) {
		RespondOK(c, gin.H{"status": "ok"})
	})

	r.GET("/slots", cfg.ScheduleHandler.Slots)

	sched := r.Group("/schedule")
	{
		sched.POST("/plan", cfg.ScheduleHandler.Plan)
		sched.GET("/access", cfg.ScheduleHandler.Access)
		sched.POST("/reschedule", cfg.ScheduleHandler.Reschedule)
		sched.GET("/conflicts", cfg.ScheduleHandler.Conflicts)
		sched.POST("/session-status", cfg.ScheduleHandler.SessionStatus)
	}

	courses := r.Group("/courses")
	{
		courses.POST("", cfg.CourseHandler.Create)
		courses.GET("/:id", cfg.CourseHandler.Get)
		courses.GET("/:id/schedule", cfg.CourseHandler.GetSchedule)
		courses.POST("/:id/enroll", cfg.CourseHandler.Enroll)
	}

	return r
}
