package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/medicare/clinicctl/internal/model"
)

func TestDisplayNameFallsBackToEmailLocalPart(t *testing.T) {
	assert.Equal(t, "Alice Smith", model.User{Name: "Alice Smith", Email: "a@x.com"}.DisplayName())
	assert.Equal(t, "a", model.User{Email: "a@x.com"}.DisplayName())
	assert.Equal(t, "", model.User{}.DisplayName())
}

func TestShortID(t *testing.T) {
	apt := model.Appointment{ID: "3f8a1c2b-9d4e-4f00-b1a2-c3d4e5f60718"}
	assert.Equal(t, "3f8a1c2b", apt.ShortID())

	assert.Equal(t, "short", model.Appointment{ID: "short"}.ShortID())
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, model.AppointmentStatusPending.CanCancel())
	assert.True(t, model.AppointmentStatusConfirmed.CanCancel())
	assert.False(t, model.AppointmentStatusCompleted.CanCancel())
	assert.False(t, model.AppointmentStatusCancelled.CanCancel())

	assert.True(t, model.AppointmentStatusPending.CanReschedule())
	assert.False(t, model.AppointmentStatusCancelled.CanReschedule())
}

func TestStatusValid(t *testing.T) {
	for _, s := range model.AppointmentStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, model.AppointmentStatus("archived").Valid())
}

func TestTokenPairEmpty(t *testing.T) {
	assert.True(t, model.TokenPair{}.Empty())
	assert.True(t, model.TokenPair{Refresh: "r"}.Empty())
	assert.False(t, model.TokenPair{Access: "a", Refresh: "r"}.Empty())
}
