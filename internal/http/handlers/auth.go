package handlers

import (
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	IsLoggedIn bool    `json:"isLoggedIn"`
	Role       *string `json:"role"`
}

// Login verifies console credentials and sets the session cookie. Unknown
// usernames and wrong passwords produce the same answer.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Username == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "username and password required")
		return
	}

	user, err := a.Users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}

	token, err := a.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign session token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	http.SetCookie(w, a.Tokens.Cookie(token))
	a.json(w, http.StatusOK, map[string]string{"role": string(user.Role)})
}

// Logout clears the session cookie.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, a.Tokens.ClearCookie())
	w.WriteHeader(http.StatusNoContent)
}

// Me is the read-only session introspection. Every verification failure
// degrades to {isLoggedIn:false, role:null}; callers cannot tell an absent
// cookie from a rejected one.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := a.Tokens.ClaimsFromRequest(r)
	if err != nil {
		a.Logger.Debug().Err(err).Msg("session introspection rejected cookie")
		a.json(w, http.StatusOK, meResponse{IsLoggedIn: false, Role: nil})
		return
	}
	role := string(claims.Role)
	a.json(w, http.StatusOK, meResponse{IsLoggedIn: true, Role: &role})
}
