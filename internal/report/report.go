// Package report renders the downloadable medical report for one
// appointment. The examination values are fixed demo content, not
// clinical data; only the patient, appointment and notes fields come
// from real records.
package report

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/medicare/clinicctl/internal/model"
)

const reportTemplate = `MEDICAL REPORT
==============

Patient: {{.PatientName}}
Appointment ID: {{.Appointment.ShortID}}
Date: {{.FormattedDate}}
Doctor: {{.Appointment.Doctor}}
Service: {{.Appointment.Service}}

EXAMINATION RESULTS:
- Vital signs: Normal
- Blood pressure: 120/80 mmHg
- Heart rate: 72 bpm
- Temperature: 98.6°F

DIAGNOSIS:
{{.Diagnosis}}

RECOMMENDATIONS:
- Continue current medication
- Follow-up in 3 months
- Maintain healthy lifestyle

Doctor's Signature: {{.Appointment.Doctor}}
Date: {{.GeneratedOn}}
`

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Params collects everything the report shows.
type Params struct {
	PatientName string
	Appointment model.Appointment
	GeneratedAt time.Time
}

func (p Params) FormattedDate() string {
	t, err := time.Parse("2006-01-02", p.Appointment.Date)
	if err != nil {
		return p.Appointment.Date
	}
	return t.Format("Monday, January 2, 2006")
}

func (p Params) Diagnosis() string {
	if p.Appointment.Notes == "" {
		return "No specific diagnosis recorded"
	}
	return p.Appointment.Notes
}

func (p Params) GeneratedOn() string {
	return p.GeneratedAt.Format("2006-01-02")
}

// Render produces the report text.
func Render(p Params) (string, error) {
	if p.PatientName == "" {
		p.PatientName = "Patient Name"
	}
	if p.GeneratedAt.IsZero() {
		p.GeneratedAt = time.Now()
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, p); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return b.String(), nil
}

// FileName is the suggested download name for an appointment's report.
func FileName(apt model.Appointment) string {
	return fmt.Sprintf("medical-report-%s.txt", apt.ShortID())
}
