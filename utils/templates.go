package utils

import (
	"fmt"
	"strings"
)

// TemplateData carries the values substituted into a feedback template
type TemplateData struct {
	StudentName     string
	CourseName      string
	AssignmentTitle string
	Score           float64
	MaxPoints       float64
}

// RenderFeedbackTemplate substitutes the closed set of placeholder tokens in a
// feedback template body. Unknown tokens are left untouched.
func RenderFeedbackTemplate(body string, data TemplateData) string {
	replacer := strings.NewReplacer(
		"{{student_name}}", data.StudentName,
		"{{course_name}}", data.CourseName,
		"{{assignment_title}}", data.AssignmentTitle,
		"{{score}}", trimFloat(data.Score),
		"{{max_points}}", trimFloat(data.MaxPoints),
	)
	return replacer.Replace(body)
}

// trimFloat formats a score without trailing zeros (87.5 -> "87.5", 90 -> "90")
func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
