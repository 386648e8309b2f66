package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment status values
const (
	EnrollmentEnrolled  = "ENROLLED"
	EnrollmentDropped   = "DROPPED"
	EnrollmentCompleted = "COMPLETED"
)

// Enrollment links a student to a course
type Enrollment struct {
	gorm.Model
	StudentID   uint       `json:"student_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, DROPPED, COMPLETED
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`

	Course  Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Student User   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}
