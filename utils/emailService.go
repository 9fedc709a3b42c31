package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML mail through the configured SMTP sender.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>LEARNING PORTAL</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">This is an automated message from your learning portal.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail mails the generated credentials to a newly created user.
func SendWelcomeEmail(email, name, tempPassword string) {
	subject := "Your learning portal account"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An account has been created for you on the learning portal.</p>
		<p>Your temporary password is: <strong>%s</strong></p>
		<p>Please log in and change it as soon as possible.</p>
	`, name, tempPassword)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome!", body))
}

// SendEnrollmentEmail notifies a user about a new course assignment.
func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "New course assigned: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have been enrolled in <strong>%s</strong>.</p>
		<p>Log in to the portal to start learning.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Assigned", body))
}

// SendCourseCompletedEmail congratulates a user on finishing a course.
func SendCourseCompletedEmail(email, name, courseTitle string) {
	subject := "Course completed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong>.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Congratulations!", body))
}
