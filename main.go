package main

import (
	"fmt"
	"log"

	"coursehive_server/config"
	"coursehive_server/models"
	"coursehive_server/routes"
	"coursehive_server/scheduler"
	"coursehive_server/utils"
	"coursehive_server/websocket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := config.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.LessonProgress{},
		&models.CourseProgress{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if err := config.DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_lesson_progress_unique
		ON lesson_progress(user_id, course_id, lesson_id)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		log.Println("⚠️  Warning: Failed to create unique index on lesson_progress:", err)
	} else {
		log.Println("✓ Lesson progress indexes created successfully")
	}

	if err := config.DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_course_progress_unique
		ON course_progress(user_id, course_id)
		WHERE deleted_at IS NULL
	`).Error; err != nil {
		log.Println("⚠️  Warning: Failed to create unique index on course_progress:", err)
	} else {
		log.Println("✓ Course progress indexes created successfully")
	}

	if err := utils.InitSessionAuth(); err != nil {
		log.Fatal("Failed to initialize session auth:", err)
	}
	log.Println("✓ Session auth initialized successfully")

	websocket.InitHub()
	log.Println("✓ Progress sync hub initialized")

	router := gin.Default()
	routes.SetupRoutes(router)
	scheduler.StartReconcileScheduler(config.DB)

	port := config.GetEnv("PORT", "8080")
	addr := fmt.Sprintf(":%s", port)
	log.Printf("🚀 CourseHive Server starting on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
