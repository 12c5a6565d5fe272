package controllers

import (
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/alumnet/portal/middleware"
	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/services"
)

// DashboardController renders the landing and overview pages
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{services: services}
}

// Index handles GET /. Anonymous visitors get the landing page, logged-in
// users the portal overview.
func (c *DashboardController) Index(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	userID, ok := sess.Get(middleware.SessionUserKey).(int)
	if !ok {
		renderTemplate(w, "landing", "templates/landing.html", struct {
			Title       string
			CurrentPage string
			User        *models.User
		}{
			Title:       "Mitgliederportal",
			CurrentPage: "home",
		})
		return
	}

	user, err := c.services.Users.GetByID(r.Context(), userID)
	if err != nil {
		sess.Delete(middleware.SessionUserKey)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		User        *models.User
		CSRFToken   string
		Error       string
		IsAdmin     bool
	}{
		Title:       "Übersicht",
		CurrentPage: "home",
		User:        user,
		CSRFToken:   middleware.CSRFToken(r),
		Error:       r.URL.Query().Get("error"),
		IsAdmin:     user.Role == models.RoleAdmin,
	}

	renderTemplate(w, "dashboard", "templates/dashboard.html", templateData)
}
