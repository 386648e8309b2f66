package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission is a student's answer to an assignment. Resubmitting replaces
// the previous text/attachments on the same row.
type Submission struct {
	gorm.Model
	AssignmentID uint           `json:"assignment_id" gorm:"index;not null"`
	StudentID    uint           `json:"student_id" gorm:"index;not null"`
	Text         string         `json:"text" gorm:"type:text"`
	Attachments  datatypes.JSON `json:"attachments"` // Array of uploaded file URLs
	SubmittedAt  time.Time      `json:"submitted_at"`
	IsLate       bool           `json:"is_late" gorm:"default:false"`
	IsDeleted    bool           `gorm:"default:false"`
}
