package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"gopkg.in/gomail.v2"
	"pacearena-api/config"
	"pacearena-api/models"
)

// MailSender delivers composed messages. *gomail.Dialer satisfies it.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	config *config.Config
	sender MailSender
}

// NewEmailService returns a service that dials cfg's SMTP server. When SMTP is
// not configured the returned service logs and skips every send.
func NewEmailService(cfg *config.Config) *EmailService {
	if !cfg.SMTPEnabled() {
		return &EmailService{config: cfg}
	}
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return NewEmailServiceWithSender(cfg, dialer)
}

func NewEmailServiceWithSender(cfg *config.Config, sender MailSender) *EmailService {
	return &EmailService{config: cfg, sender: sender}
}

func (es *EmailService) Enabled() bool {
	return es != nil && es.sender != nil
}

var registrationEmail = template.Must(template.New("registration").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Registration confirmed</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #f97316; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .details td { padding: 4px 12px 4px 0; }
        .footer { text-align: center; margin-top: 20px; color: #666; font-size: 14px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>PaceArena</h1>
            <p>You're registered!</p>
        </div>
        <div class="content">
            <h2>Hi {{.Name}},</h2>
            <p>Your spot for <strong>{{.Event}}</strong> is confirmed.</p>
            <table class="details">
                <tr><td>Date</td><td>{{.Date}}{{if .Time}} at {{.Time}}{{end}}</td></tr>
                <tr><td>Location</td><td>{{.Location}}</td></tr>
                {{if .Distance}}<tr><td>Distance</td><td>{{.Distance}}</td></tr>{{end}}
                <tr><td>Phone on file</td><td>{{.Phone}}</td></tr>
            </table>
            <p>See you at the start line.</p>
        </div>
        <div class="footer">
            <p>This is an automated email, please do not reply.</p>
        </div>
    </div>
</body>
</html>`))

type registrationEmailData struct {
	Name, Event, Date, Time, Location, Distance, Phone string
}

// SendRegistrationConfirmation mails the registrant a summary of the event.
func (es *EmailService) SendRegistrationConfirmation(to string, reg *models.EventRegistration, event *models.Event) error {
	if !es.Enabled() {
		log.Printf("SMTP not configured, skipping registration email for %s", reg.ID)
		return nil
	}

	data := registrationEmailData{
		Name:     reg.FullName,
		Event:    event.Name,
		Date:     event.Date.Format("Monday, January 2, 2006"),
		Time:     event.Time,
		Location: event.Location,
		Distance: event.Distance,
		Phone:    reg.PhoneNumber,
	}

	var html bytes.Buffer
	if err := registrationEmail.Execute(&html, data); err != nil {
		return fmt.Errorf("render registration email: %w", err)
	}

	text := fmt.Sprintf(`Hi %s,

Your spot for %s is confirmed.

Date: %s %s
Location: %s

See you at the start line.
`, data.Name, data.Event, data.Date, data.Time, data.Location)

	m := es.newMessage(to, fmt.Sprintf("Registered: %s", event.Name))
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html.String())

	if err := es.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("Registration email sent to %s for event %s", to, event.ID)
	return nil
}

// SendWelcomeEmail greets a newly created account.
func (es *EmailService) SendWelcomeEmail(to, name string) error {
	if !es.Enabled() {
		return nil
	}

	m := es.newMessage(to, "Welcome to PaceArena")
	m.SetBody("text/plain", fmt.Sprintf(`Hi %s,

Welcome to PaceArena! Join a club, log your runs and climb the leaderboard.

Happy running!
`, name))

	if err := es.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Printf("Welcome email sent to %s", to)
	return nil
}

func (es *EmailService) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}
