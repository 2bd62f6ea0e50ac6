package dto

type RecordProgressRequest struct {
	CourseID      string `json:"course_id" binding:"required"`
	LessonID      string `json:"lesson_id" binding:"required"`
	WatchTime     int    `json:"watch_time"`
	TotalDuration int    `json:"total_duration"`
	Completed     bool   `json:"completed"`
	TotalLessons  int    `json:"total_lessons"`
}

type FixProgressRequest struct {
	CourseID     string `json:"course_id" binding:"required"`
	TotalLessons int    `json:"total_lessons" binding:"required"`
}
