package models

import "gorm.io/gorm"

// Course status values
const (
	CourseDraft    = "DRAFT"
	CourseActive   = "ACTIVE"
	CourseArchived = "ARCHIVED"
)

// Course represents a course in the catalog
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Code         string  `json:"code" gorm:"index"` // e.g. CS-101
	Description  string  `json:"description" gorm:"type:text"`
	InstructorID uint    `json:"instructor_id" gorm:"index;not null"`
	Term         string  `json:"term"` // e.g. FALL-2026
	Credits      float64 `json:"credits" gorm:"default:3"`
	Status       string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, ACTIVE, ARCHIVED
	ThumbnailURL string  `json:"thumbnail_url"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false"`
}
