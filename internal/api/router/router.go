package router

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/notify-pipeline/internal/api/handlers/event"
	"github.com/aliskhannn/notify-pipeline/internal/api/handlers/job"
	"github.com/aliskhannn/notify-pipeline/internal/api/handlers/notification"
	"github.com/aliskhannn/notify-pipeline/internal/api/respond"
	"github.com/aliskhannn/notify-pipeline/internal/middlewares"
)

func New(
	notifications *notification.Handler,
	jobs *job.Handler,
	events *event.Handler,
) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	e.GET("/api/health", func(c *ginext.Context) {
		respond.OK(c.Writer, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", func(c *ginext.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	api := e.Group("/api/notifications")
	{
		api.POST("", notifications.Create)
		api.GET("", notifications.List)
		api.GET("/stats", notifications.Stats)
		api.GET("/:id", notifications.GetByID)
		api.GET("/:id/events", events.ForAggregate)
	}

	jobsAPI := e.Group("/api/jobs")
	{
		jobsAPI.POST("", jobs.Enqueue)
		jobsAPI.GET("", jobs.List)
		jobsAPI.GET("/:id", jobs.GetByID)
	}

	e.GET("/api/events", events.List)

	return e
}
