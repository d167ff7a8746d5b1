package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicare/clinicctl/internal/cache"
	"github.com/medicare/clinicctl/internal/model"
)

func TestAppointmentsMissThenHit(t *testing.T) {
	c := cache.New()

	_, ok := c.Appointments()
	assert.False(t, ok)

	list := []model.Appointment{{ID: "1", Status: model.AppointmentStatusPending}}
	c.SetAppointments(list)

	got, ok := c.Appointments()
	assert.True(t, ok)
	assert.Equal(t, list, got)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := cache.New()
	c.SetAppointments([]model.Appointment{{ID: "1"}})

	c.Invalidate(cache.KeyAppointments)

	_, ok := c.Appointments()
	assert.False(t, ok)
}

func TestFlushDropsEverything(t *testing.T) {
	c := cache.New()
	c.SetAppointments([]model.Appointment{{ID: "1"}})

	c.Flush()

	_, ok := c.Appointments()
	assert.False(t, ok)
}
