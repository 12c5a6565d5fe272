package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/alumnet/portal/authenticator"
	"github.com/alumnet/portal/middleware"
	"github.com/alumnet/portal/services"
)

// AuthController handles the SSO login flow
type AuthController struct {
	services *services.Services
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services) *AuthController {
	return &AuthController{services: services}
}

// Login initiates the authentication process
func (c *AuthController) Login(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := generateRandomState()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		// Save the state in the session to validate in callback
		sess := session.GetSession(r)
		sess.Set("state", state)

		http.Redirect(w, r, auth.GetAuthURL(state), http.StatusTemporaryRedirect)
	}
}

// Callback handles the redirect back from Microsoft Entra
func (c *AuthController) Callback(auth authenticator.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)

		storedState, ok := sess.Get("state").(string)
		if !ok || storedState == "" {
			http.Error(w, "State not found in session", http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("state") != storedState {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		token, err := auth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
		if err != nil {
			http.Error(w, "Failed to exchange authorization code for a token: "+err.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := auth.GetClaims(r.Context(), token)
		if err != nil {
			http.Error(w, "Failed to verify ID Token: "+err.Error(), http.StatusInternalServerError)
			return
		}

		email := claims.String("email")
		if email == "" {
			// Entra puts the login name here when the email claim is absent
			email = claims.String("preferred_username")
		}

		user, err := c.services.Users.SyncFromClaims(
			r.Context(),
			claims.String("sub"),
			email,
			claims.String("given_name"),
			claims.String("family_name"),
		)
		if err != nil {
			http.Error(w, "Failed to provision user: "+err.Error(), http.StatusInternalServerError)
			return
		}

		sess.Set(middleware.SessionUserKey, user.ID)
		sess.Delete("state")

		// Return to the page that triggered the login, if any
		target := "/"
		if dest, ok := sess.Get("redirect_after_login").(string); ok && dest != "" {
			target = dest
			sess.Delete("redirect_after_login")
		}

		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

// Logout clears the session and returns to the landing page
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete(middleware.SessionUserKey)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
