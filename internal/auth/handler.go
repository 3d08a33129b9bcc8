package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mongarerobert3/todo-list-api/internal/httputil"
	"github.com/mongarerobert3/todo-list-api/internal/logging"
	"github.com/mongarerobert3/todo-list-api/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents a successful register or login response
type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create a new user account and receive a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration details"
// @Success      201 {object} AuthResponse
// @Failure      400 {object} ErrorResponse "Invalid request or validation error"
// @Failure      409 {object} ErrorResponse "Email already registered"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	token, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("registration failed: email already exists")
			respondError(w, "email already exists", httputil.CodeEmailAlreadyExists, http.StatusConflict)
			return
		}
		if errors.Is(err, ErrNameRequired) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodeNameRequired, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrEmailRequired) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodeEmailRequired, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrPasswordRequired) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodePasswordRequired, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrPasswordTooShort) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodePasswordTooShort, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrInvalidEmailFormat) {
			logger.Warn("registration failed: validation error", "error", err.Error())
			respondError(w, err.Error(), httputil.CodeInvalidEmailFormat, http.StatusBadRequest)
			return
		}
		logger.Error("registration failed: internal error", "error", err.Error())
		respondError(w, "failed to register user", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user registered successfully")

	respondJSON(w, AuthResponse{
		Token:   token,
		Message: "Registration successful.",
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate with email and password and receive a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} ErrorResponse "Invalid request body"
// @Failure      401 {object} ErrorResponse "Invalid credentials"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			// Same message whether the email is unknown or the password is wrong
			logger.Warn("login failed: invalid credentials")
			respondError(w, "Invalid email or password.", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		respondError(w, "failed to login", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("user logged in successfully")

	respondJSON(w, AuthResponse{
		Token:   token,
		Message: "Login successful.",
	}, http.StatusOK)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
