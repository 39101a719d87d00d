package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"smartpulse-backend/internal/models"
)

type EmailService struct {
	host    string
	port    string
	user    string
	pass    string
	from    string
	devMode bool
}

func NewEmailService(host, port, user, pass, from string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
	}
	return &EmailService{
		host:    host,
		port:    port,
		user:    user,
		pass:    pass,
		from:    from,
		devMode: devMode,
	}
}

// SendLowProductivityAlert notifies a user that a tracked session fell
// below their configured productivity threshold.
func (s *EmailService) SendLowProductivityAlert(to, name string, productivity float64, threshold int) error {
	subject := "SmartPulse: low productivity alert"
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Arial, sans-serif;">
  <h2>Hi %s,</h2>
  <p>Your latest tracked session came in at <strong>%.1f%%</strong> productive,
  below your alert threshold of %d%%.</p>
  <p>Open your SmartPulse dashboard for the full breakdown.</p>
</body>
</html>`, name, productivity, threshold)

	return s.send(to, subject, body)
}

// SendDailyReport emails yesterday's work summary to users who opted
// into daily reports.
func (s *EmailService) SendDailyReport(to, name string, days []models.WorkSummaryDay) error {
	var rows strings.Builder
	for _, d := range days {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%.2fh</td><td>%d%%</td></tr>", d.Date, d.Hours, d.Productivity)
	}
	if rows.Len() == 0 {
		rows.WriteString(`<tr><td colspan="3">No tracked activity.</td></tr>`)
	}

	subject := "SmartPulse: your daily work report"
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: 'Segoe UI', Arial, sans-serif;">
  <h2>Hi %s,</h2>
  <p>Here is your work summary:</p>
  <table border="1" cellpadding="6" cellspacing="0">
    <tr><th>Date</th><th>Hours</th><th>Productivity</th></tr>
    %s
  </table>
</body>
</html>`, name, rows.String())

	return s.send(to, subject, body)
}

func (s *EmailService) send(to, subject, body string) error {
	if s.devMode {
		log.Printf("📧 [DEV MODE] Email to %s: %s", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		log.Printf("✗ Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}
