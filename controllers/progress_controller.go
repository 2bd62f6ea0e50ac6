package controllers

import (
	"errors"
	"log"
	"net/http"

	"coursehive_server/config"
	"coursehive_server/dto"
	"coursehive_server/services"
	"coursehive_server/websocket"

	"github.com/gin-gonic/gin"
)

// RecordLessonProgress is the lesson-watch event intake. Replays are safe;
// the response carries the recomputed course rollup, which is also pushed
// to the user's other open tabs.
func RecordLessonProgress(c *gin.Context) {
	var req dto.RecordProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id and lesson_id are required"})
		return
	}

	userID := c.GetUint("user_id")

	svc := services.NewProgressService(config.DB)
	progress, err := svc.RecordWatchEvent(c.Request.Context(), services.WatchEvent{
		UserID:        userID,
		CourseID:      req.CourseID,
		LessonID:      req.LessonID,
		WatchTime:     req.WatchTime,
		TotalDuration: req.TotalDuration,
		Completed:     req.Completed,
		TotalLessons:  req.TotalLessons,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ Failed to record progress for user %d course %s lesson %s: %v",
			userID, req.CourseID, req.LessonID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record lesson progress"})
		return
	}

	websocket.NotifyCourseProgress(userID, progress)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Progress recorded",
		"progress": progress,
	})
}

func GetCourseProgress(c *gin.Context) {
	courseID := c.Param("courseId")
	if courseID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Course ID is required"})
		return
	}

	userID := c.GetUint("user_id")

	svc := services.NewProgressService(config.DB)
	progress, err := svc.GetCourseProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		log.Printf("❌ Failed to load progress for user %d course %s: %v", userID, courseID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load course progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": progress})
}

// FixCourseProgress corrects a rollup denominator after a catalog change.
// Operational endpoint; the before/after snapshots make corrections
// auditable.
func FixCourseProgress(c *gin.Context) {
	var req dto.FixProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "course_id and total_lessons are required"})
		return
	}

	userID := c.GetUint("user_id")

	svc := services.NewProgressService(config.DB)
	result, err := svc.FixTotalLessons(c.Request.Context(), userID, req.CourseID, req.TotalLessons)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No progress found for this course"})
		default:
			log.Printf("❌ Failed to repair progress for user %d course %s: %v", userID, req.CourseID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fix course progress"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"before":  result.Before,
		"after":   result.After,
	})
}

func GetProgressStats(c *gin.Context) {
	userID := c.GetUint("user_id")

	svc := services.NewProgressService(config.DB)
	stats, courses, err := svc.ComputeStats(c.Request.Context(), userID)
	if err != nil {
		log.Printf("❌ Failed to compute stats for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute progress stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":          stats,
		"courseProgress": courses,
	})
}
