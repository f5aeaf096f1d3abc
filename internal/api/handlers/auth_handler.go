package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/rs/zerolog/log"
	"github.com/selomitta/agenda-be/internal/auth"
	"github.com/selomitta/agenda-be/internal/models"
	"github.com/selomitta/agenda-be/internal/services"
)

// AuthHandler handles signup, login, logout and the current-user lookup.
type AuthHandler struct {
	users      services.UserServiceProvider
	sessions   services.SessionServiceProvider
	issuer     *auth.Issuer
	production bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users services.UserServiceProvider, sessions services.SessionServiceProvider, issuer *auth.Issuer, production bool) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, issuer: issuer, production: production}
}

// CredentialsPayload defines the structure for signup and login requests.
type CredentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validateCredentials enforces the signup/login input rules. Messages name
// the failing field but never reveal whether an account exists.
func validateCredentials(p CredentialsPayload) error {
	if p.Email == "" {
		return models.NewValidationError("Email is required.")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return models.NewValidationError("Email must be a valid email address.")
	}
	if p.Password == "" {
		return models.NewValidationError("Password is required.")
	}
	if len(p.Password) < 6 {
		return models.NewValidationError("Password must be at least 6 characters long.")
	}
	return nil
}

// Signup handles new account registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCredentials(payload); err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := h.users.CreateUser(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if !errors.Is(err, models.ErrDuplicateEmail) {
			log.Error().Err(err).Msg("Failed to register user")
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles authentication, token issuance and the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validateCredentials(payload); err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := h.users.AuthenticateUser(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Warn().Msg("Failed authentication attempt")
		} else {
			log.Error().Err(err).Msg("Authentication lookup failed")
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeServiceError(w, err)
		return
	}

	token, err := h.issuer.Generate(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, int(h.issuer.TTL().Seconds()), h.production))
	writeMessage(w, http.StatusOK, "Login successful")
}

// Logout clears the session cookie and revokes the presented token until its
// natural expiry. It succeeds even without a valid token, so a client with a
// stale cookie can always log out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if tokenStr := auth.TokenFromRequest(r); tokenStr != "" {
		if claims, err := h.issuer.Validate(tokenStr); err == nil && claims.ExpiresAt != nil {
			if err := h.sessions.Revoke(r.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				log.Error().Err(err).Msg("Failed to revoke token on logout")
			}
		}
	}

	http.SetCookie(w, auth.ClearSessionCookie(h.production))
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	writeMessage(w, http.StatusOK, "Logout successful")
}

// Me returns the account behind the presented token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user, err := h.users.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
