package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"coursehive_server/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("concurrent update conflict")
)

// rollupRetryLimit bounds optimistic retries on course_progress version
// conflicts before the error surfaces to the caller.
const rollupRetryLimit = 3

type WatchEvent struct {
	UserID        uint
	CourseID      string
	LessonID      string
	WatchTime     int
	TotalDuration int
	Completed     bool

	// TotalLessons seeds the rollup denominator on first contact with a
	// course. An existing rollup keeps its stored denominator; catalog
	// drift is corrected through FixTotalLessons, not through events.
	TotalLessons int
}

type RepairResult struct {
	Before models.CourseProgress `json:"before"`
	After  models.CourseProgress `json:"after"`
}

type ProgressStats struct {
	TotalCoursesEnrolled      int `json:"total_courses_enrolled"`
	TotalCoursesCompleted     int `json:"total_courses_completed"`
	TotalLessons              int `json:"total_lessons"`
	CompletedLessons          int `json:"completed_lessons"`
	TotalWatchTime            int `json:"total_watch_time"`
	AverageProgressPercentage int `json:"average_progress_percentage"`
	CoursesInProgress         int `json:"courses_in_progress"`
	CoursesCompleted          int `json:"courses_completed"`
}

type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// rollupPercentage derives the stored percentage from the counts; it is
// never accepted as input.
func rollupPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(completed) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func lessonPercentage(watchTime, totalDuration int) int {
	if totalDuration <= 0 {
		return 0
	}
	pct := int(math.Round(float64(watchTime) / float64(totalDuration) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// RecordWatchEvent upserts the lesson record and recomputes the owning
// course rollup in one transaction. Replays of the same or an older event
// are no-ops; watch time never decreases.
func (ps *ProgressService) RecordWatchEvent(ctx context.Context, event WatchEvent) (*models.CourseProgress, error) {
	if event.UserID == 0 || event.CourseID == "" || event.LessonID == "" {
		return nil, fmt.Errorf("%w: user, course and lesson are required", ErrInvalidInput)
	}
	if event.WatchTime < 0 {
		return nil, fmt.Errorf("%w: watch time must be >= 0", ErrInvalidInput)
	}

	var result *models.CourseProgress
	var err error
	for attempt := 1; attempt <= rollupRetryLimit; attempt++ {
		result, err = ps.applyWatchEvent(ctx, event)
		if !errors.Is(err, ErrConflict) {
			return result, err
		}
		log.Printf("⚠️ Rollup conflict for user %d course %s (attempt %d/%d), retrying",
			event.UserID, event.CourseID, attempt, rollupRetryLimit)
	}
	return nil, err
}

func (ps *ProgressService) applyWatchEvent(ctx context.Context, event WatchEvent) (*models.CourseProgress, error) {
	var snapshot models.CourseProgress

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var lesson models.LessonProgress
		findErr := tx.Where(
			"user_id = ? AND course_id = ? AND lesson_id = ?",
			event.UserID, event.CourseID, event.LessonID,
		).First(&lesson).Error

		isNew := errors.Is(findErr, gorm.ErrRecordNotFound)
		if findErr != nil && !isNew {
			return fmt.Errorf("failed to load lesson progress: %w", findErr)
		}

		if !isNew && lesson.Completed && lesson.WatchTime >= event.WatchTime {
			// Replay of the same or an older event: leave everything as is.
			return tx.Where(
				"user_id = ? AND course_id = ?", event.UserID, event.CourseID,
			).First(&snapshot).Error
		}

		if isNew {
			lesson = models.LessonProgress{
				UserID:   event.UserID,
				CourseID: event.CourseID,
				LessonID: event.LessonID,
			}
		}

		if event.WatchTime > lesson.WatchTime {
			lesson.WatchTime = event.WatchTime
		}
		if event.TotalDuration > 0 {
			lesson.TotalDuration = event.TotalDuration
		}
		if lesson.TotalDuration > 0 {
			lesson.ProgressPercentage = lessonPercentage(lesson.WatchTime, lesson.TotalDuration)
		}
		if event.Completed || lesson.ProgressPercentage >= 100 {
			lesson.Completed = true
		}
		if lesson.Completed {
			lesson.ProgressPercentage = 100
			if lesson.CompletedAt == nil {
				lesson.CompletedAt = &now
			}
		}
		lesson.LastAccessedAt = now

		if err := tx.Save(&lesson).Error; err != nil {
			return fmt.Errorf("failed to save lesson progress: %w", err)
		}

		var completedCount int64
		if err := tx.Model(&models.LessonProgress{}).
			Where("user_id = ? AND course_id = ? AND completed = ?", event.UserID, event.CourseID, true).
			Count(&completedCount).Error; err != nil {
			return fmt.Errorf("failed to count completed lessons: %w", err)
		}

		var course models.CourseProgress
		courseErr := tx.Where(
			"user_id = ? AND course_id = ?", event.UserID, event.CourseID,
		).First(&course).Error

		courseIsNew := errors.Is(courseErr, gorm.ErrRecordNotFound)
		if courseErr != nil && !courseIsNew {
			return fmt.Errorf("failed to load course progress: %w", courseErr)
		}

		if courseIsNew {
			course = models.CourseProgress{
				UserID:       event.UserID,
				CourseID:     event.CourseID,
				TotalLessons: event.TotalLessons,
				StartedAt:    now,
			}
		}

		course.CompletedLessons = int(completedCount)
		course.ProgressPercentage = rollupPercentage(course.CompletedLessons, course.TotalLessons)
		course.CurrentLessonID = event.LessonID
		course.LastAccessedAt = now
		if course.TotalLessons > 0 && course.CompletedLessons == course.TotalLessons {
			if course.CompletedAt == nil {
				course.CompletedAt = &now
			}
		} else {
			course.CompletedAt = nil
		}

		if courseIsNew {
			if err := tx.Create(&course).Error; err != nil {
				// The unique (user_id, course_id) index turns a racing
				// first-event insert into a retryable conflict.
				return fmt.Errorf("%w: %v", ErrConflict, err)
			}
			snapshot = course
			return nil
		}

		updates := map[string]interface{}{
			"completed_lessons":   course.CompletedLessons,
			"progress_percentage": course.ProgressPercentage,
			"current_lesson_id":   course.CurrentLessonID,
			"last_accessed_at":    course.LastAccessedAt,
			"completed_at":        course.CompletedAt,
			"version":             course.Version + 1,
		}
		res := tx.Model(&models.CourseProgress{}).
			Where("id = ? AND version = ?", course.ID, course.Version).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update course progress: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: course progress version moved", ErrConflict)
		}

		course.Version++
		snapshot = course
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetCourseProgress returns the user's rollup for a course, or nil when the
// user has not touched the course yet.
func (ps *ProgressService) GetCourseProgress(ctx context.Context, userID uint, courseID string) (*models.CourseProgress, error) {
	if userID == 0 || courseID == "" {
		return nil, fmt.Errorf("%w: user and course are required", ErrInvalidInput)
	}

	var course models.CourseProgress
	err := ps.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load course progress: %w", err)
	}
	return &course, nil
}

// FixTotalLessons corrects a rollup's denominator after the course catalog
// changed shape. It re-derives the percentage and completion state from the
// counts already on the row; lesson records are never touched.
func (ps *ProgressService) FixTotalLessons(ctx context.Context, userID uint, courseID string, newTotal int) (*RepairResult, error) {
	if userID == 0 || courseID == "" {
		return nil, fmt.Errorf("%w: user and course are required", ErrInvalidInput)
	}
	if newTotal <= 0 {
		return nil, fmt.Errorf("%w: total lessons must be positive", ErrInvalidInput)
	}

	var result *RepairResult
	var err error
	for attempt := 1; attempt <= rollupRetryLimit; attempt++ {
		result, err = ps.applyRepair(ctx, userID, courseID, newTotal)
		if !errors.Is(err, ErrConflict) {
			return result, err
		}
		log.Printf("⚠️ Repair conflict for user %d course %s (attempt %d/%d), retrying",
			userID, courseID, attempt, rollupRetryLimit)
	}
	return nil, err
}

func (ps *ProgressService) applyRepair(ctx context.Context, userID uint, courseID string, newTotal int) (*RepairResult, error) {
	var result RepairResult

	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.CourseProgress
		findErr := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&course).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no progress for user %d in course %s", ErrNotFound, userID, courseID)
		}
		if findErr != nil {
			return fmt.Errorf("failed to load course progress: %w", findErr)
		}

		result.Before = course

		now := time.Now()
		course.TotalLessons = newTotal
		if course.CompletedLessons > newTotal {
			// Catalog shrank below what the user already finished. The
			// rollup count is capped to keep the invariant; the lesson
			// records themselves stay untouched.
			course.CompletedLessons = newTotal
		}
		course.ProgressPercentage = rollupPercentage(course.CompletedLessons, course.TotalLessons)
		if course.CompletedLessons == course.TotalLessons {
			if course.CompletedAt == nil {
				course.CompletedAt = &now
			}
		} else {
			course.CompletedAt = nil
		}

		updates := map[string]interface{}{
			"total_lessons":       course.TotalLessons,
			"completed_lessons":   course.CompletedLessons,
			"progress_percentage": course.ProgressPercentage,
			"completed_at":        course.CompletedAt,
			"version":             course.Version + 1,
		}
		res := tx.Model(&models.CourseProgress{}).
			Where("id = ? AND version = ?", course.ID, course.Version).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to repair course progress: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: course progress version moved", ErrConflict)
		}

		course.Version++
		result.After = course
		return nil
	})

	if err != nil {
		return nil, err
	}

	log.Printf("✓ Repaired course %s for user %d: total %d → %d, percentage %d → %d",
		courseID, userID,
		result.Before.TotalLessons, result.After.TotalLessons,
		result.Before.ProgressPercentage, result.After.ProgressPercentage)
	return &result, nil
}

// ComputeStats reduces all of a user's course rollups into one cross-course
// summary. The rollup list and the watch-time sum are independent reads and
// run concurrently.
func (ps *ProgressService) ComputeStats(ctx context.Context, userID uint) (*ProgressStats, []models.CourseProgress, error) {
	if userID == 0 {
		return nil, nil, fmt.Errorf("%w: user is required", ErrInvalidInput)
	}

	var courses []models.CourseProgress
	var totalWatchTime int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ps.db.WithContext(gctx).
			Where("user_id = ?", userID).
			Order("last_accessed_at DESC").
			Find(&courses).Error; err != nil {
			return fmt.Errorf("failed to load course progress list: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := ps.db.WithContext(gctx).
			Model(&models.LessonProgress{}).
			Where("user_id = ?", userID).
			Select("COALESCE(SUM(watch_time), 0)").
			Scan(&totalWatchTime).Error; err != nil {
			return fmt.Errorf("failed to sum watch time: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := ProgressStats{
		TotalCoursesEnrolled: len(courses),
		TotalWatchTime:       totalWatchTime,
	}

	percentageSum := 0
	for _, course := range courses {
		stats.TotalLessons += course.TotalLessons
		stats.CompletedLessons += course.CompletedLessons
		percentageSum += course.ProgressPercentage

		switch {
		case course.ProgressPercentage == 100:
			stats.CoursesCompleted++
		case course.ProgressPercentage > 0:
			stats.CoursesInProgress++
		}
		if course.CompletedAt != nil {
			stats.TotalCoursesCompleted++
		}
	}
	if len(courses) > 0 {
		stats.AverageProgressPercentage = int(math.Round(float64(percentageSum) / float64(len(courses))))
	}

	return &stats, courses, nil
}

// ReconcileRollups recounts completed lessons for every rollup and rewrites
// the ones that drifted. Operational safety net behind the same recompute
// rules as the live path.
func (ps *ProgressService) ReconcileRollups(ctx context.Context) error {
	var rollups []models.CourseProgress
	if err := ps.db.WithContext(ctx).Find(&rollups).Error; err != nil {
		return fmt.Errorf("failed to list course progress: %w", err)
	}

	repaired := 0
	for _, course := range rollups {
		var completedCount int64
		if err := ps.db.WithContext(ctx).Model(&models.LessonProgress{}).
			Where("user_id = ? AND course_id = ? AND completed = ?", course.UserID, course.CourseID, true).
			Count(&completedCount).Error; err != nil {
			return fmt.Errorf("failed to recount lessons for course %s: %w", course.CourseID, err)
		}

		completed := int(completedCount)
		if course.TotalLessons > 0 && completed > course.TotalLessons {
			completed = course.TotalLessons
		}
		percentage := rollupPercentage(completed, course.TotalLessons)
		if completed == course.CompletedLessons && percentage == course.ProgressPercentage {
			continue
		}

		log.Printf("⚠️ Drifted rollup for user %d course %s: stored %d/%d, recounted %d",
			course.UserID, course.CourseID, course.CompletedLessons, course.TotalLessons, completed)

		now := time.Now()
		var completedAt *time.Time = course.CompletedAt
		if course.TotalLessons > 0 && completed == course.TotalLessons {
			if completedAt == nil {
				completedAt = &now
			}
		} else {
			completedAt = nil
		}

		res := ps.db.WithContext(ctx).Model(&models.CourseProgress{}).
			Where("id = ? AND version = ?", course.ID, course.Version).
			Updates(map[string]interface{}{
				"completed_lessons":   completed,
				"progress_percentage": percentage,
				"completed_at":        completedAt,
				"version":             course.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to reconcile course %s: %w", course.CourseID, res.Error)
		}
		if res.RowsAffected == 0 {
			// A live writer got there first; its recount is fresher.
			continue
		}
		repaired++
	}

	if repaired > 0 {
		log.Printf("✓ Reconciled %d drifted rollups", repaired)
	}
	return nil
}
