package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medicare/clinicctl/internal/model"
)

// ListAppointments returns the current session's appointments.
func (c *Client) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	var list []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateAppointment books a new appointment. Optional symptoms and
// notes ride along as empty strings rather than being omitted.
func (c *Client) CreateAppointment(ctx context.Context, req model.CreateAppointmentRequest) (*model.Appointment, error) {
	var apt model.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments/", req, &apt, true); err != nil {
		return nil, err
	}
	return &apt, nil
}

// UpdateAppointment patches only the supplied fields of one record.
func (c *Client) UpdateAppointment(ctx context.Context, id string, req model.UpdateAppointmentRequest) (*model.Appointment, error) {
	var apt model.Appointment
	path := fmt.Sprintf("/appointments/%s/", id)
	if err := c.do(ctx, http.MethodPatch, path, req, &apt, true); err != nil {
		return nil, err
	}
	return &apt, nil
}

// DeleteAppointment removes the identified record.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	path := fmt.Sprintf("/appointments/%s/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}
