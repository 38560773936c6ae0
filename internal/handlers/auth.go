package handlers

import (
	"log/slog"
	"net/http"

	domainerrors "inkwell/internal/errors"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/session"
	"inkwell/internal/validation"
)

var (
	errInvalidAction   = domainerrors.Validation("Invalid action")
	errBadCredentials  = domainerrors.InvalidCredentials("Invalid username or password")
	errCurrentPassword = domainerrors.InvalidCredentials("Current password is incorrect")
)

// Auth serves /auth?action=login|logout|me|change_password.
type Auth struct {
	sessions Sessions
	users    UserStore
	validate *validation.Validator
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions Sessions, users UserStore, v *validation.Validator) *Auth {
	return &Auth{sessions: sessions, users: users, validate: v}
}

type userBody struct {
	User *models.User `json:"user"`
}

// ServeHTTP dispatches on the method and the action query parameter.
// Unknown combinations are a 400.
func (a *Auth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	switch {
	case r.Method == http.MethodPost && action == "login":
		a.Login(w, r)
	case r.Method == http.MethodPost && action == "logout":
		a.Logout(w, r)
	case r.Method == http.MethodGet && action == "me":
		a.Me(w, r)
	case r.Method == http.MethodPost && action == "change_password":
		a.ChangePassword(w, r)
	default:
		writeError(w, r, errInvalidAction)
	}
}

// Login checks the credentials and starts a session.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	user, err := a.users.FindByUsername(ctx, req.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// Same answer for unknown user and wrong password.
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		slog.Info("login failed", "username", req.Username)
		writeError(w, r, errBadCredentials)
		return
	}

	_, err = a.sessions.Create(ctx, w, &session.Data{
		UserID: user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, userBody{User: user})
}

// Logout destroys the session. It always succeeds.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	writeSuccess(w)
}

// Me returns the logged-in user or {"user": null}. A session whose user
// no longer exists is destroyed; a stale name or avatar is refreshed.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeJSON(w, http.StatusOK, userBody{})
		return
	}

	ctx := r.Context()
	user, err := a.users.FindByID(ctx, sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil {
		if err := a.sessions.Destroy(ctx, w, r); err != nil {
			slog.Warn("stale session destroy failed", "error", err)
		}
		writeJSON(w, http.StatusOK, userBody{})
		return
	}

	if sess.Name != user.Name || sess.Avatar != user.Avatar {
		sess.Name, sess.Avatar = user.Name, user.Avatar
		if err := a.sessions.Update(ctx, r, sess); err != nil {
			slog.Warn("session refresh failed", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, userBody{User: user})
}

// ChangePassword replaces the logged-in user's password after checking
// the current one.
func (a *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, r, domainerrors.ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.validate.Validate(req); err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	user, err := a.users.FindByID(ctx, sess.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.CurrentPassword) {
		writeError(w, r, errCurrentPassword)
		return
	}

	if err := a.users.SetPassword(ctx, user.ID, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	writeSuccess(w)
}
