package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medicare/clinicctl/internal/model"
)

// ListServices returns the public service catalog.
func (c *Client) ListServices(ctx context.Context) ([]model.Service, error) {
	var list []model.Service
	if err := c.do(ctx, http.MethodGet, "/services/", nil, &list, false); err != nil {
		return nil, err
	}
	return list, nil
}

// ListDoctors returns the public doctor directory.
func (c *Client) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	var list []model.Doctor
	if err := c.do(ctx, http.MethodGet, "/doctors/", nil, &list, false); err != nil {
		return nil, err
	}
	return list, nil
}

// GetDoctor returns one directory entry.
func (c *Client) GetDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	var doctor model.Doctor
	path := fmt.Sprintf("/doctors/%s/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &doctor, false); err != nil {
		return nil, err
	}
	return &doctor, nil
}
