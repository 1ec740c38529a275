package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"mentorconnect-backend/internal/models"
)

type EmailService struct {
	host        string
	port        string
	user        string
	pass        string
	from        string
	frontendURL string
	devMode     bool
}

func NewEmailService(host, port, user, pass, from, frontendURL string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
	}
	return &EmailService{
		host:        host,
		port:        port,
		user:        user,
		pass:        pass,
		from:        from,
		frontendURL: frontendURL,
		devMode:     devMode,
	}
}

// SendSessionResponseEmail notifies a mentee about the outcome of a session
// request: approved, rescheduled, or rejected.
func (s *EmailService) SendSessionResponseEmail(job models.EmailJob) error {
	var subject, headline, detail string

	schedule := job.Schedule.Format("Monday, 2 January 2006 at 15:04")

	switch job.Type {
	case models.NotificationSessionApproved:
		subject = "Your session request was approved"
		headline = "Session Approved"
		detail = fmt.Sprintf("%s approved your session <strong>%s</strong>, scheduled for %s.", job.MentorName, job.Topic, schedule)
	case models.NotificationSessionRescheduled:
		subject = "Your session was approved with a new schedule"
		headline = "Session Rescheduled"
		detail = fmt.Sprintf("%s approved your session <strong>%s</strong> and moved it to %s.", job.MentorName, job.Topic, schedule)
	case models.NotificationSessionRejected:
		subject = "Your session request was declined"
		headline = "Session Request Declined"
		detail = fmt.Sprintf("%s declined your session request <strong>%s</strong>.", job.MentorName, job.Topic)
		if job.RejectReason != "" {
			detail += fmt.Sprintf(" Reason: %s", job.RejectReason)
		}
	default:
		return fmt.Errorf("unknown email job type %q", job.Type)
	}

	body := s.renderCard(headline, fmt.Sprintf(`
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 24px;">
        Hi %s, %s
      </p>
      <a href="%s/sessions" style="display: inline-block; background: #0ea5e9; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        View My Sessions
      </a>`, job.MenteeName, detail, s.frontendURL))

	return s.sendHTML(job.To, subject, body)
}

// SendSessionReminderEmail nudges a mentee about an upcoming session.
func (s *EmailService) SendSessionReminderEmail(to, menteeName, mentorName, topic string, schedule time.Time) error {
	subject := fmt.Sprintf("Reminder: %s is coming up", topic)
	body := s.renderCard("Upcoming Session", fmt.Sprintf(`
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 24px;">
        Hi %s, your session <strong>%s</strong> with %s starts on %s.
      </p>
      <a href="%s/sessions" style="display: inline-block; background: #0ea5e9; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        View Session
      </a>`, menteeName, topic, mentorName, schedule.Format("Monday, 2 January 2006 at 15:04"), s.frontendURL))

	return s.sendHTML(to, subject, body)
}

func (s *EmailService) renderCard(headline, inner string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f8fafc;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 12px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: linear-gradient(135deg, #0ea5e9 0%%, #6366f1 100%%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px; font-weight: 700;">MentorConnect</h1>
      <p style="color: rgba(255,255,255,0.85); margin: 8px 0 0; font-size: 14px;">Learn from people who've been there</p>
    </div>
    <div style="padding: 32px;">
      <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">%s</h2>%s
    </div>
  </div>
</body>
</html>`, headline, inner)
}

func (s *EmailService) sendHTML(to, subject, htmlBody string) error {
	if s.devMode {
		log.Printf("📧 [DEV EMAIL] To: %s | Subject: %s", to, subject)
		log.Printf("📧 Body:\n%s", htmlBody)
		return nil
	}

	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}
