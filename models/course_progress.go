package models

import (
	"time"

	"gorm.io/gorm"
)

type CourseProgress struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"not null;index:idx_course_user" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	CourseID string `gorm:"not null;index:idx_course_user" json:"course_id"`

	TotalLessons       int `gorm:"default:0" json:"total_lessons"`
	CompletedLessons   int `gorm:"default:0" json:"completed_lessons"`
	ProgressPercentage int `gorm:"default:0" json:"progress_percentage"`

	CurrentLessonID string `json:"current_lesson_id"`

	StartedAt      time.Time  `gorm:"not null" json:"started_at"`
	LastAccessedAt time.Time  `gorm:"not null" json:"last_accessed_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`

	// Version is bumped on every rollup write; concurrent writers that
	// read the same version lose the compare-and-swap and retry.
	Version uint `gorm:"default:0" json:"-"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
