package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/internal/user/usecase/command"
	"github.com/tair/population/internal/user/usecase/query"
	"github.com/tair/population/pkg/httpx"
	"github.com/tair/population/pkg/logger"
	"github.com/tair/population/pkg/middleware"
)

// UserHandler handles HTTP requests for authentication
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	logoutHandler   *command.LogoutUserHandler
	getUserHandler  *query.GetUserHandler

	auth    *middleware.Authenticator
	metrics *middleware.HTTPMetrics
	logins  *prometheus.CounterVec
}

// NewUserHandler creates a new user handler and registers its collectors on reg
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	logoutHandler *command.LogoutUserHandler,
	getUserHandler *query.GetUserHandler,
	authenticator *middleware.Authenticator,
	reg prometheus.Registerer,
) *UserHandler {
	logins := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
	reg.MustRegister(logins)

	return &UserHandler{
		registerHandler: registerHandler,
		loginHandler:    loginHandler,
		logoutHandler:   logoutHandler,
		getUserHandler:  getUserHandler,
		auth:            authenticator,
		metrics:         middleware.NewHTTPMetrics(reg, "user_service"),
		logins:          logins,
	}
}

// RegisterRoutes registers the auth routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/auth").Subrouter()

	api.HandleFunc("/register", h.metrics.Wrap("/register", h.Register)).Methods("POST")
	api.HandleFunc("/login", h.metrics.Wrap("/login", h.Login)).Methods("POST")
	api.HandleFunc("/logout", h.metrics.Wrap("/logout", h.auth.RequireAuth(h.Logout))).Methods("POST")
	api.HandleFunc("/current", h.metrics.Wrap("/current", h.auth.RequireAuth(h.Current))).Methods("GET")
}

// RegisterHealthCheck registers the health endpoint
func (h *UserHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			httpx.RespondErrorMessage(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		httpx.RespondMessage(w, http.StatusOK, "User service is healthy", nil)
	}).Methods("GET")
}

type profileResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	DateJoined time.Time `json:"date_joined"`
}

func newProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       u.Role,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		DateJoined: u.DateJoined,
	}
}

// Register handles POST /api/auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username        string `json:"username"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		PasswordConfirm string `json:"password_confirm"`
		FirstName       string `json:"first_name"`
		LastName        string `json:"last_name"`
		Role            string `json:"role"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	user, err := h.registerHandler.Handle(r.Context(), command.RegisterUserCommand{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Role:            req.Role,
	})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	logger.Info(r.Context()).
		Uint("user_id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("User registered")
	httpx.RespondMessage(w, http.StatusCreated, "Registration successful", newProfileResponse(user))
}

// Login handles POST /api/auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, r, err)
		return
	}

	resp, err := h.loginHandler.Handle(r.Context(), command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logins.WithLabelValues("failure").Inc()
		logger.Warn(r.Context()).Str("username", req.Username).Msg("Login failed")
		httpx.RespondError(w, r, err)
		return
	}
	h.logins.WithLabelValues("success").Inc()

	httpx.RespondMessage(w, http.StatusOK, "Login successful", struct {
		Token string          `json:"token"`
		User  profileResponse `json:"user"`
	}{
		Token: resp.Token,
		User:  newProfileResponse(resp.User),
	})
}

// Logout handles POST /api/auth/logout
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFromContext(r.Context())

	var cmd command.LogoutUserCommand
	if principal != nil {
		cmd.Claims = principal.Claims
	}
	if err := h.logoutHandler.Handle(r.Context(), cmd); err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondMessage(w, http.StatusOK, "Logged out successfully", nil)
}

// Current handles GET /api/auth/current
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondErrorMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.getUserHandler.Handle(r.Context(), query.GetUserQuery{ID: principal.UserID})
	if err != nil {
		httpx.RespondError(w, r, err)
		return
	}
	httpx.RespondData(w, http.StatusOK, newProfileResponse(user))
}
