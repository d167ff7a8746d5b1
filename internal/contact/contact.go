// Package contact composes the "contact clinic" inquiry for one
// appointment: a structured draft that either becomes a mailto link
// for the platform's mail handler or goes straight out over SMTP when
// the client is configured to send.
package contact

import (
	"fmt"
	"net/url"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/medicare/clinicctl/internal/config"
	"github.com/medicare/clinicctl/internal/model"
)

// Draft is an email draft referencing one appointment.
type Draft struct {
	To      string
	Subject string
	Body    string
}

// BuildDraft assembles the inquiry draft shown to the clinic.
func BuildDraft(apt model.Appointment, patientName, clinicEmail string) Draft {
	if patientName == "" {
		patientName = "Patient"
	}

	body := fmt.Sprintf(`Hello, I would like to inquire about my appointment:

Appointment ID: %s
Date: %s
Time: %s
Doctor: %s
Service: %s

Please contact me regarding this appointment.

Best regards,
%s`, apt.ShortID(), formatDate(apt.Date), apt.Time, apt.Doctor, apt.Service, patientName)

	return Draft{
		To:      clinicEmail,
		Subject: fmt.Sprintf("Appointment Inquiry - %s", apt.ShortID()),
		Body:    body,
	}
}

// MailtoLink encodes the draft for the platform's default mail handler.
func (d Draft) MailtoLink() string {
	query := url.Values{}
	query.Set("subject", d.Subject)
	query.Set("body", d.Body)
	// mailto prefers %20 over the + that url.Values produces
	return fmt.Sprintf("mailto:%s?%s", d.To, encodeQuery(query))
}

// Sender delivers drafts over SMTP.
type Sender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSender(cfg config.SMTPConfig) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers the draft.
func (s *Sender) Send(d Draft) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", d.To)
	msg.SetHeader("Subject", d.Subject)
	msg.SetBody("text/plain", d.Body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send inquiry: %w", err)
	}
	return nil
}

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2, 2006")
}

func encodeQuery(query url.Values) string {
	encoded := query.Encode()
	out := make([]byte, 0, len(encoded))
	for i := 0; i < len(encoded); i++ {
		if encoded[i] == '+' {
			out = append(out, '%', '2', '0')
			continue
		}
		out = append(out, encoded[i])
	}
	return string(out)
}
