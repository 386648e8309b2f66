package models

import (
	"time"

	"gorm.io/gorm"
)

// Grade is the instructor's score for one student on one assignment.
// There is at most one live row per (assignment_id, student_id); grade
// edits update the same row, last write wins.
type Grade struct {
	gorm.Model
	AssignmentID uint      `json:"assignment_id" gorm:"index;not null"`
	StudentID    uint      `json:"student_id" gorm:"index;not null"`
	SubmissionID *uint     `json:"submission_id"` // Nil when grading unsubmitted work
	Score        float64   `json:"score"`
	Feedback     string    `json:"feedback" gorm:"type:text"`
	GradedByID   uint      `json:"graded_by_id"`
	GradedAt     time.Time `json:"graded_at"`
	IsDeleted    bool      `gorm:"default:false"`
}
