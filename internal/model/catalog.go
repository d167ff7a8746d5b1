package model

// Service is a bookable clinic service from the public catalog.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price"`
	IsActive        bool   `json:"is_active"`
}

// Doctor is a directory entry from the public doctor listing.
type Doctor struct {
	ID              string `json:"id"`
	Profile         User   `json:"profile"`
	Specialty       string `json:"specialty"`
	YearsExperience int    `json:"years_experience"`
	ConsultationFee string `json:"consultation_fee"`
	Bio             string `json:"bio,omitempty"`
	IsAvailable     bool   `json:"is_available"`
}
