// Package clinictest runs an in-memory stand-in for the clinic booking
// API so the client packages can be exercised over real HTTP: the same
// routes, bodies and error shapes as the production backend, bcrypt
// passwords and signed bearer tokens included.
package clinictest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medicare/clinicctl/internal/model"
)

const signingSecret = "clinictest-signing-secret"

// Account is a registered user of the fake clinic.
type Account struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash []byte
}

// Capture records one request the server handled.
type Capture struct {
	Method string
	Path   string
	Body   []byte
}

// Server is the fake clinic API.
type Server struct {
	mu           sync.Mutex
	accounts     map[string]*Account
	appointments map[string]*model.Appointment
	captures     []Capture

	httpServer *httptest.Server
}

// New starts the fake API; it is shut down via t.Cleanup-style Close.
func New() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		accounts:     make(map[string]*Account),
		appointments: make(map[string]*model.Appointment),
	}

	router := gin.New()
	router.Use(s.capture)

	router.POST("/auth/register/", s.register)
	router.POST("/auth/login/", s.login)
	router.GET("/auth/user/", s.authed(s.currentUser))

	router.GET("/appointments/", s.authed(s.listAppointments))
	router.POST("/appointments/", s.authed(s.createAppointment))
	router.PATCH("/appointments/:id/", s.authed(s.updateAppointment))
	router.DELETE("/appointments/:id/", s.authed(s.deleteAppointment))

	router.GET("/services/", s.listServices)
	router.GET("/doctors/", s.listDoctors)

	s.httpServer = httptest.NewServer(router)
	return s
}

// URL is the base URL clients should point at.
func (s *Server) URL() string {
	return s.httpServer.URL
}

func (s *Server) Close() {
	s.httpServer.Close()
}

// AddAccount registers a user directly, bypassing the HTTP flow.
func (s *Server) AddAccount(email, password, name string) *Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	acc := &Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		Role:         "patient",
		PasswordHash: hash,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = acc
	return acc
}

// AddAppointment seeds a record owned by the given account.
func (s *Server) AddAppointment(acc *Account, apt model.Appointment) model.Appointment {
	if apt.ID == "" {
		apt.ID = uuid.New().String()
	}
	if apt.Status == "" {
		apt.Status = model.AppointmentStatusPending
	}
	apt.Patient = acc.ID

	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments[apt.ID] = &apt
	return apt
}

// IssueToken signs an access token for the account with the given
// lifetime; negative lifetimes produce an already-expired token.
func (s *Server) IssueToken(acc *Account, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub":   acc.ID,
		"email": acc.Email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(signingSecret))
	return signed
}

// Requests returns how many requests the server has handled.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.captures)
}

// LastCapture returns the most recent request matching method and path
// prefix, or nil.
func (s *Server) LastCapture(method, pathPrefix string) *Capture {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.captures) - 1; i >= 0; i-- {
		c := s.captures[i]
		if c.Method == method && strings.HasPrefix(c.Path, pathPrefix) {
			return &c
		}
	}
	return nil
}

func (s *Server) capture(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(strings.NewReader(string(body)))

	s.mu.Lock()
	s.captures = append(s.captures, Capture{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Body:   body,
	})
	s.mu.Unlock()

	c.Next()
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
		Name      string `json:"name"`
		Role      string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	if req.Password != req.Password2 {
		c.JSON(http.StatusBadRequest, gin.H{"password": []string{"Password fields didn't match."}})
		return
	}

	s.mu.Lock()
	_, exists := s.accounts[req.Email]
	s.mu.Unlock()
	if exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user with this email already exists."})
		return
	}

	acc := s.AddAccount(req.Email, req.Password, req.Name)
	if req.Role != "" {
		acc.Role = req.Role
	}

	c.JSON(http.StatusCreated, gin.H{
		"email": acc.Email,
		"name":  acc.Name,
		"role":  acc.Role,
	})
}

func (s *Server) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	acc := s.accounts[req.Email]
	s.mu.Unlock()

	if acc == nil || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  s.IssueToken(acc, time.Hour),
		"refresh": s.IssueToken(acc, 7*24*time.Hour),
	})
}

// authed validates the bearer token and stashes the account.
func (s *Server) authed(handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			return []byte(signingSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Given token not valid for any token type"})
			return
		}

		claims := token.Claims.(jwt.MapClaims)
		sub, _ := claims["sub"].(string)

		s.mu.Lock()
		var acc *Account
		for _, a := range s.accounts {
			if a.ID == sub {
				acc = a
				break
			}
		}
		s.mu.Unlock()

		if acc == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User not found"})
			return
		}

		c.Set("account", acc)
		handler(c)
	}
}

func account(c *gin.Context) *Account {
	return c.MustGet("account").(*Account)
}

func (s *Server) currentUser(c *gin.Context) {
	acc := account(c)
	c.JSON(http.StatusOK, gin.H{
		"id":    acc.ID,
		"email": acc.Email,
		"name":  acc.Name,
	})
}

func (s *Server) listAppointments(c *gin.Context) {
	acc := account(c)

	s.mu.Lock()
	var list []model.Appointment
	for _, apt := range s.appointments {
		if apt.Patient == acc.ID {
			list = append(list, *apt)
		}
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].Time > list[j].Time
	})

	if list == nil {
		list = []model.Appointment{}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createAppointment(c *gin.Context) {
	acc := account(c)

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Doctor == "" || req.Service == "" || req.Date == "" || req.Time == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "doctor, service, appointment_date and appointment_time are required"})
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	apt := &model.Appointment{
		ID:        uuid.New().String(),
		Patient:   acc.ID,
		Doctor:    req.Doctor,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Status:    model.AppointmentStatusPending,
		Symptoms:  req.Symptoms,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.appointments[apt.ID] = apt
	s.mu.Unlock()

	c.JSON(http.StatusCreated, apt)
}

func (s *Server) updateAppointment(c *gin.Context) {
	acc := account(c)

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	apt := s.appointments[c.Param("id")]
	if apt == nil || apt.Patient != acc.ID {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	if req.Date != nil {
		apt.Date = *req.Date
	}
	if req.Time != nil {
		apt.Time = *req.Time
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"status": []string{"invalid status"}})
			return
		}
		apt.Status = *req.Status
	}
	if req.Symptoms != nil {
		apt.Symptoms = *req.Symptoms
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}
	apt.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	c.JSON(http.StatusOK, apt)
}

func (s *Server) deleteAppointment(c *gin.Context) {
	acc := account(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	apt := s.appointments[c.Param("id")]
	if apt == nil || apt.Patient != acc.ID {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}

	delete(s.appointments, apt.ID)
	c.Status(http.StatusNoContent)
}

func (s *Server) listServices(c *gin.Context) {
	c.JSON(http.StatusOK, []model.Service{
		{ID: uuid.NewString(), Name: "General Consultation", Description: "Routine visit with a general practitioner", DurationMinutes: 30, Price: "25.00", IsActive: true},
		{ID: uuid.NewString(), Name: "Cardiology Checkup", Description: "Heart health screening and ECG", DurationMinutes: 45, Price: "60.00", IsActive: true},
	})
}

func (s *Server) listDoctors(c *gin.Context) {
	c.JSON(http.StatusOK, []model.Doctor{
		{ID: uuid.NewString(), Profile: model.User{Name: "Dr. Sarah Johnson", Email: "s.johnson@medicare.example"}, Specialty: "Cardiology", YearsExperience: 12, ConsultationFee: "60.00", IsAvailable: true},
		{ID: uuid.NewString(), Profile: model.User{Name: "Dr. Ahmed Benali", Email: "a.benali@medicare.example"}, Specialty: "General Medicine", YearsExperience: 8, ConsultationFee: "25.00", IsAvailable: true},
	})
}
