package models

import "gorm.io/gorm"

// Content represents a course material item (lecture notes, video, file, link)
type Content struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO, FILE, LINK
	Body        string `json:"body" gorm:"type:text"`              // For TEXT type
	URL         string `json:"url"`                                // For VIDEO, FILE, LINK types
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
