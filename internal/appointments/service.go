// Package appointments is the data-access layer for appointment
// records: reads go through the request cache, mutations invalidate it
// and report their outcome. Correctness favors a full refetch over
// speculative merges, so no mutation ever patches the cached list in
// place.
package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/medicare/clinicctl/internal/api"
	"github.com/medicare/clinicctl/internal/cache"
	"github.com/medicare/clinicctl/internal/model"
	"github.com/medicare/clinicctl/internal/notify"
	"github.com/medicare/clinicctl/internal/session"
	"github.com/medicare/clinicctl/pkg/logger"
)

// ErrMissingDateTime rejects a reschedule before any request is made.
var ErrMissingDateTime = errors.New("date and time are required")

const cancelDateFormat = "2006-01-02"

type Service struct {
	api      *api.Client
	cache    *cache.Cache
	session  *session.Manager
	notify   notify.Notifier
	log      *logger.Logger
	validate *validator.Validate
}

func NewService(client *api.Client, c *cache.Cache, sess *session.Manager, notifier notify.Notifier, log *logger.Logger) *Service {
	return &Service{
		api:      client,
		cache:    c,
		session:  sess,
		notify:   notifier,
		log:      log,
		validate: validator.New(),
	}
}

// List returns the session's appointments, serving from cache when the
// last fetch is still valid. It is enabled only when authenticated.
func (s *Service) List(ctx context.Context) ([]model.Appointment, error) {
	if !s.session.IsAuthenticated() {
		return nil, session.ErrNotAuthenticated
	}

	if list, ok := s.cache.Appointments(); ok {
		return list, nil
	}

	list, err := s.api.ListAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	s.cache.SetAppointments(list)
	return list, nil
}

// Refresh drops the cached list and fetches again; this is the retry
// action behind the error panel.
func (s *Service) Refresh(ctx context.Context) ([]model.Appointment, error) {
	s.cache.Invalidate(cache.KeyAppointments)
	return s.List(ctx)
}

// Get finds one appointment by full ID or by its eight-character short
// reference.
func (s *Service) Get(ctx context.Context, id string) (*model.Appointment, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id || list[i].ShortID() == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("appointment %s not found", id)
}

// Create books a new appointment. Required fields are checked client
// side before any request; optional symptoms and notes default to the
// empty string on the wire.
func (s *Service) Create(ctx context.Context, req model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid booking request: %w", err)
	}

	apt, err := s.api.CreateAppointment(ctx, req)
	if err != nil {
		s.log.Error(err, "failed to create appointment")
		s.notify.Error("Failed to book appointment. Please try again.")
		return nil, err
	}

	s.cache.Invalidate(cache.KeyAppointments)
	s.notify.Success("Appointment booked successfully! We will contact you shortly.")
	return apt, nil
}

// Reschedule moves an appointment to a new date and time. Both must be
// present or the call is rejected with no request issued. The status is
// reset to pending so the clinic re-confirms, and a line describing the
// reschedule is appended to the notes.
func (s *Service) Reschedule(ctx context.Context, apt model.Appointment, date, timeOfDay, reason string) (*model.Appointment, error) {
	if date == "" || timeOfDay == "" {
		s.notify.Error("Please select both date and time")
		return nil, ErrMissingDateTime
	}
	if !apt.Status.CanReschedule() {
		s.notify.Error("Only pending or confirmed appointments can be rescheduled")
		return nil, fmt.Errorf("cannot reschedule a %s appointment", apt.Status)
	}

	line := "Appointment rescheduled"
	if reason != "" {
		line = "Rescheduled: " + reason
	}
	notes := appendNote(apt.Notes, line)
	status := model.AppointmentStatusPending

	updated, err := s.api.UpdateAppointment(ctx, apt.ID, model.UpdateAppointmentRequest{
		Date:   &date,
		Time:   &timeOfDay,
		Status: &status,
		Notes:  &notes,
	})
	if err != nil {
		s.log.Error(err, "failed to update appointment", "id", apt.ID)
		s.notify.Error("Failed to update appointment")
		return nil, err
	}

	s.cache.Invalidate(cache.KeyAppointments)
	s.notify.Success("Appointment updated successfully!")
	return updated, nil
}

// Cancel requests cancellation of a pending or confirmed appointment,
// appending a dated cancellation note. Completed records are
// display-only and cannot be cancelled.
func (s *Service) Cancel(ctx context.Context, apt model.Appointment) (*model.Appointment, error) {
	if !apt.Status.CanCancel() {
		s.notify.Error("Only pending or confirmed appointments can be cancelled")
		return nil, fmt.Errorf("cannot cancel a %s appointment", apt.Status)
	}

	today := time.Now().Format(cancelDateFormat)
	notes := fmt.Sprintf("Appointment cancelled on %s", today)
	if apt.Notes != "" {
		notes = fmt.Sprintf("%s\n(Cancelled on %s)", apt.Notes, today)
	}
	status := model.AppointmentStatusCancelled

	updated, err := s.api.UpdateAppointment(ctx, apt.ID, model.UpdateAppointmentRequest{
		Status: &status,
		Notes:  &notes,
	})
	if err != nil {
		s.log.Error(err, "failed to update appointment", "id", apt.ID)
		s.notify.Error("Failed to update appointment")
		return nil, err
	}

	s.cache.Invalidate(cache.KeyAppointments)
	s.notify.Success("Appointment updated successfully!")
	return updated, nil
}

// Remove deletes the identified record outright. The main flows cancel
// instead; this is the explicit delete call.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.api.DeleteAppointment(ctx, id); err != nil {
		s.log.Error(err, "failed to delete appointment", "id", id)
		s.notify.Error("Failed to delete appointment")
		return err
	}

	s.cache.Invalidate(cache.KeyAppointments)
	s.notify.Success("Appointment deleted successfully!")
	return nil
}

// CountByStatus recomputes per-status totals from the fetched list.
func CountByStatus(list []model.Appointment) map[model.AppointmentStatus]int {
	counts := make(map[model.AppointmentStatus]int, len(model.AppointmentStatuses))
	for _, apt := range list {
		counts[apt.Status]++
	}
	return counts
}

func appendNote(existing, line string) string {
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}
