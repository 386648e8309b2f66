package models

import "gorm.io/gorm"

// FeedbackTemplate is a reusable feedback snippet. The body may contain
// placeholder tokens ({{student_name}}, {{course_name}}, {{assignment_title}},
// {{score}}, {{max_points}}) substituted when the template is applied.
type FeedbackTemplate struct {
	gorm.Model
	InstructorID uint   `json:"instructor_id" gorm:"index;not null"`
	Name         string `json:"name"`
	Body         string `json:"body" gorm:"type:text"`
	IsDeleted    bool   `gorm:"default:false"`
}
