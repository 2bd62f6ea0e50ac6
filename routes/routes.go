package routes

import (
	"coursehive_server/controllers"
	"coursehive_server/middleware"
	"coursehive_server/websocket"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	router.Use(middleware.CORSMiddleware())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", controllers.GetStatus)

		auth := v1.Group("/auth")
		{
			auth.POST("/google", controllers.GoogleAuth)
		}

		internal := v1.Group("/internal")
		internal.Use(middleware.InternalOnlyMiddleware())
		{
			internal.POST("/verify-token", controllers.VerifyToken)
		}

		protected := v1.Group("/")
		protected.Use(middleware.SessionMiddleware())
		{
			protected.GET("/me", controllers.GetMe)
			protected.GET("/ws", websocket.HandleProgressSocket)

			protected.GET("/courses/:courseId/access", middleware.RequirePremium(), controllers.CheckCourseAccess)

			protected.POST("/progress/lesson", controllers.RecordLessonProgress)
			protected.GET("/progress/course/:courseId", controllers.GetCourseProgress)
			protected.POST("/progress/fix", controllers.FixCourseProgress)
			protected.GET("/progress/stats", controllers.GetProgressStats)
		}
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "CourseHive API v1.0",
			"status":  "running",
		})
	})
}
