package contact_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicare/clinicctl/internal/contact"
	"github.com/medicare/clinicctl/internal/model"
)

func sampleAppointment() model.Appointment {
	return model.Appointment{
		ID:      "3f8a1c2b-9d4e-4f00-b1a2-c3d4e5f60718",
		Doctor:  "Dr. Sarah Johnson",
		Service: "Cardiology Checkup",
		Date:    "2026-03-09",
		Time:    "10:30",
	}
}

func TestBuildDraft(t *testing.T) {
	draft := contact.BuildDraft(sampleAppointment(), "Alice Smith", "MediCare@gmail.com")

	assert.Equal(t, "MediCare@gmail.com", draft.To)
	assert.Equal(t, "Appointment Inquiry - 3f8a1c2b", draft.Subject)

	assert.Contains(t, draft.Body, "Appointment ID: 3f8a1c2b")
	assert.Contains(t, draft.Body, "Date: Monday, March 9, 2026")
	assert.Contains(t, draft.Body, "Time: 10:30")
	assert.Contains(t, draft.Body, "Doctor: Dr. Sarah Johnson")
	assert.Contains(t, draft.Body, "Service: Cardiology Checkup")
	assert.True(t, strings.HasSuffix(draft.Body, "Alice Smith"))
}

func TestBuildDraftDefaultsPatientName(t *testing.T) {
	draft := contact.BuildDraft(sampleAppointment(), "", "MediCare@gmail.com")
	assert.True(t, strings.HasSuffix(draft.Body, "Patient"))
}

func TestMailtoLink(t *testing.T) {
	link := contact.Draft{
		To:      "MediCare@gmail.com",
		Subject: "Appointment Inquiry - 3f8a1c2b",
		Body:    "Hello, I would like to inquire",
	}.MailtoLink()

	assert.True(t, strings.HasPrefix(link, "mailto:MediCare@gmail.com?"))
	assert.Contains(t, link, "subject=Appointment%20Inquiry%20-%203f8a1c2b")
	// Spaces encode as %20, never +, so mail handlers render them.
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "body=Hello%2C%20I%20would%20like%20to%20inquire")
}
