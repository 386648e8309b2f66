package models

import "gorm.io/gorm"

// Announcement is an instructor-authored notice shown to enrolled students
type Announcement struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	AuthorID  uint   `json:"author_id" gorm:"not null"`
	Title     string `json:"title"`
	Body      string `json:"body" gorm:"type:text"`
	IsPinned  bool   `json:"is_pinned" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
