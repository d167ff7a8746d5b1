package model

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists the closed status enumeration in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusConfirmed,
	AppointmentStatusPending,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

// Valid reports whether s belongs to the closed enumeration.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether the client may move s to cancelled. The
// server drives the pending → confirmed → completed transitions; this
// client only ever requests cancellation, and never from a terminal
// state.
func (s AppointmentStatus) CanCancel() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

// CanReschedule mirrors CanCancel: completed and cancelled records are
// display-only.
func (s AppointmentStatus) CanReschedule() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

// Appointment is the client's read/write projection of a server-owned
// record. The server is authoritative for ID, timestamps and any status
// transition beyond what the client requests. Doctor and Service are
// plain display names on the wire; Date is YYYY-MM-DD and Time HH:MM.
type Appointment struct {
	ID        string            `json:"id"`
	Patient   string            `json:"patient"`
	Doctor    string            `json:"doctor"`
	Service   string            `json:"service"`
	Date      string            `json:"appointment_date"`
	Time      string            `json:"appointment_time"`
	Status    AppointmentStatus `json:"status"`
	Symptoms  string            `json:"symptoms"`
	Notes     string            `json:"notes"`
	CreatedAt string            `json:"created_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

// ShortID is the eight-character reference shown to patients.
func (a Appointment) ShortID() string {
	if len(a.ID) > 8 {
		return a.ID[:8]
	}
	return a.ID
}

// CreateAppointmentRequest is the body for POST /appointments/.
// Symptoms and Notes are optional but always present on the wire,
// defaulting to the empty string.
type CreateAppointmentRequest struct {
	Doctor   string `json:"doctor" validate:"required"`
	Service  string `json:"service" validate:"required"`
	Date     string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"appointment_time" validate:"required,datetime=15:04"`
	Symptoms string `json:"symptoms"`
	Notes    string `json:"notes"`
}

// UpdateAppointmentRequest is the PATCH body; only supplied fields go
// on the wire.
type UpdateAppointmentRequest struct {
	Date     *string            `json:"appointment_date,omitempty"`
	Time     *string            `json:"appointment_time,omitempty"`
	Status   *AppointmentStatus `json:"status,omitempty"`
	Symptoms *string            `json:"symptoms,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
}
