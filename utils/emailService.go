package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid. When no API key is
// configured (local dev, tests) the message is logged and dropped.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Printf("Email skipped (no SENDGRID_API_KEY): to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := sgmail.NewEmail("LMS", config.AppConfig.EmailSender)
	to := sgmail.NewEmail(toName, toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B3A5C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A5C; line-height: 1.6; }
			.content h2 { color: #1B3A5C; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6DA8D7; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LMS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LMS. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered user
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to the LMS! Your account has been created.</p>
		<p>Verify your email address with the code we sent separately, then sign in to browse the course catalog.</p>
	`, name)

	go SendEmail(name, email, "Welcome to the LMS", body)
}

// SendOTPEmail delivers a verification or password-reset code
func SendOTPEmail(email, name, code, purpose string) {
	subject := "Your verification code"
	if purpose == "RESET_PASSWORD" {
		subject = "Your password reset code"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your one-time code is:</p>
		<div class="info-box"><strong style="font-size:22px;letter-spacing:4px;">%s</strong></div>
		<p>The code expires in 10 minutes. If you did not request it, you can ignore this email.</p>
	`, name, code)

	go SendEmail(name, email, subject, body)
}

// SendEnrollmentEmail confirms a course enrollment
func SendEnrollmentEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<p>Course materials, announcements and assignments are available on your dashboard.</p>
	`, name, courseTitle)

	go SendEmail(name, email, "Enrollment confirmed: "+courseTitle, body)
}

// SendDueReminderEmail nudges a student about an assignment due soon
func SendDueReminderEmail(email, name, courseTitle, assignmentTitle string, dueAt string) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The assignment <strong>%s</strong> in <strong>%s</strong> is due at %s and we have not received a submission from you yet.</p>
	`, name, assignmentTitle, courseTitle, dueAt)

	go SendEmail(name, email, "Due soon: "+assignmentTitle, body)
}

// SendGradePostedEmail notifies a student that work was graded
func SendGradePostedEmail(email, name, assignmentTitle string, score, maxPoints float64) {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your submission for <strong>%s</strong> has been graded: <strong>%.1f / %.1f</strong>.</p>
		<p>Open the assignment to read the instructor's feedback.</p>
	`, name, assignmentTitle, score, maxPoints)

	go SendEmail(name, email, "Grade posted: "+assignmentTitle, body)
}
