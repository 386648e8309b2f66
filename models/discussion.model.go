package models

import "gorm.io/gorm"

// Discussion is a course forum thread
type Discussion struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	AuthorID  uint   `json:"author_id" gorm:"not null"`
	Title     string `json:"title"`
	Body      string `json:"body" gorm:"type:text"`
	IsPinned  bool   `json:"is_pinned" gorm:"default:false"`
	IsLocked  bool   `json:"is_locked" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}

// DiscussionReply is a post within a thread
type DiscussionReply struct {
	gorm.Model
	DiscussionID uint   `json:"discussion_id" gorm:"index;not null"`
	AuthorID     uint   `json:"author_id" gorm:"not null"`
	Body         string `json:"body" gorm:"type:text"`
	IsDeleted    bool   `gorm:"default:false"`
}
