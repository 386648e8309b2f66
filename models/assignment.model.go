package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment represents graded work within a course
type Assignment struct {
	gorm.Model
	CourseID       uint       `json:"course_id" gorm:"index;not null"`
	Title          string     `json:"title"`
	Instructions   string     `json:"instructions" gorm:"type:text"`
	DueAt          *time.Time `json:"due_at"`
	MaxPoints      float64    `json:"max_points" gorm:"default:100"`
	Weight         float64    `json:"weight" gorm:"default:1"` // Relative weight in course average
	AllowLate      bool       `json:"allow_late" gorm:"default:false"`
	IsPublished    bool       `json:"is_published" gorm:"default:false"`
	ReminderSentAt *time.Time `json:"-"` // Set once the due-date reminder job has run
	IsDeleted      bool       `gorm:"default:false"`
}
