package http

import (
	"net/http"
	"time"

	"github.com/apex-hub/apex-campus-hub/internal/application/command"
	"github.com/apex-hub/apex-campus-hub/internal/application/query"
	"github.com/apex-hub/apex-campus-hub/internal/application/scope"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type registerRequest struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phone_number"`
	Branch          string `json:"branch"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *userProfile `json:"user"`
}

// userProfile is the outward account representation; the password hash
// never leaves the server.
type userProfile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Branch      string `json:"branch,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Role        string `json:"role"`
	XP          int    `json:"xp"`
	Level       int    `json:"level"`
}

func toUserProfile(u *user.User) *userProfile {
	return &userProfile{
		ID:          u.ID,
		Email:       u.Email.String(),
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Branch:      u.Branch,
		Bio:         u.Bio,
		Role:        string(u.Role),
		XP:          u.XP.Int(),
		Level:       u.Level.Int(),
	}
}

// handleRegister creates an account and opens a session for it.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.RegisterUser.Handle(r.Context(), command.RegisterUserCommand{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Branch:          req.Branch,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		s.respondError(w, r, scope.OpRegisterUser, err)
		return
	}

	token, err := s.deps.Sessions.Issue(r.Context(), result.User.ID)
	if err != nil {
		// The account exists; the client can log in once sessions recover.
		writeJSONError(w, http.StatusServiceUnavailable, "session_unavailable", "Account created, please log in")
		return
	}

	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserProfile(result.User)})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and opens a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.LoginUser.Handle(r.Context(), command.LoginUserCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.respondError(w, r, scope.OpLoginUser, err)
		return
	}

	token, err := s.deps.Sessions.Issue(r.Context(), result.User.ID)
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "session_unavailable", "Could not open a session, please retry")
		return
	}

	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserProfile(result.User)})
}

// handleLogout revokes the current session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractSessionToken(r)
	if token != "" {
		_ = s.deps.Sessions.Revoke(r.Context(), token)
	}

	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetProfile returns the authenticated account.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.deps.GetProfile.Handle(r.Context(), query.GetProfileQuery{
		UserID: authenticatedUserID(r.Context()),
	})
	if err != nil {
		s.respondError(w, r, scope.OpGetProfile, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserProfile(u))
}

type updateProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Bio         string `json:"bio"`
	Branch      string `json:"branch"`
}

// handleUpdateProfile replaces the mutable profile fields.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON")
		return
	}

	result, err := s.deps.UpdateProfile.Handle(r.Context(), command.UpdateProfileCommand{
		UserID:      authenticatedUserID(r.Context()),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		Branch:      req.Branch,
	})
	if err != nil {
		s.respondError(w, r, scope.OpUpdateProfile, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserProfile(result.User))
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION COOKIES
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.deps.Sessions.TTL() / time.Second),
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
