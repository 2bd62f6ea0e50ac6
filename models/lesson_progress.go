package models

import (
	"time"

	"gorm.io/gorm"
)

type LessonProgress struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID uint `gorm:"not null;index:idx_lesson_user_course" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	CourseID string `gorm:"not null;index:idx_lesson_user_course" json:"course_id"`
	LessonID string `gorm:"not null" json:"lesson_id"`

	WatchTime          int  `gorm:"default:0" json:"watch_time"`
	TotalDuration      int  `gorm:"default:0" json:"total_duration"`
	ProgressPercentage int  `gorm:"default:0" json:"progress_percentage"`
	Completed          bool `gorm:"default:false" json:"completed"`

	LastAccessedAt time.Time  `gorm:"not null" json:"last_accessed_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
