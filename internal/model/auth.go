package model

// LoginRequest carries credentials for POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body for POST /auth/register/. Password2 is
// the confirmation duplicate the backend insists on; Role is always
// "patient" for accounts created through this client.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
	Name      string `json:"name"`
	Role      string `json:"role" validate:"required,oneof=patient doctor"`
}

// DefaultRole is assigned to every account registered by this client.
const DefaultRole = "patient"

// TokenPair is the bearer credential pair returned by the login
// endpoint. The two tokens are always persisted and deleted together.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether no credential is held.
func (p TokenPair) Empty() bool {
	return p.Access == ""
}

// RegisteredAccount is the payload returned by a successful
// registration. It never feeds the session store; the caller is
// expected to log in afterwards.
type RegisteredAccount struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
