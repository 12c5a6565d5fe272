package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alumnet/portal/middleware"
	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/services"
	"github.com/alumnet/portal/userctx"
)

// ValidationController handles the alumni status validation pages
type ValidationController struct {
	services *services.Services
}

// NewValidationController creates a new validation controller
func NewValidationController(services *services.Services) *ValidationController {
	return &ValidationController{services: services}
}

// Index handles GET /admin/validation
func (c *ValidationController) Index(w http.ResponseWriter, r *http.Request) {
	pending, err := c.services.Validation.ListPending(r.Context())
	if err != nil {
		http.Error(w, "Failed to load validation requests: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		User        *models.User
		CSRFToken   string
		Error       string
		Pending     []models.AlumniValidation
	}{
		Title:       "Alumni-Validierung",
		CurrentPage: "validation",
		User:        userctx.GetUser(r.Context()),
		CSRFToken:   middleware.CSRFToken(r),
		Error:       r.URL.Query().Get("error"),
		Pending:     pending,
	}

	renderTemplate(w, "validation", "templates/validation.html", templateData)
}

// Approve handles POST /admin/validation/{id}/approve
func (c *ValidationController) Approve(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, true)
}

// Reject handles POST /admin/validation/{id}/reject
func (c *ValidationController) Reject(w http.ResponseWriter, r *http.Request) {
	c.decide(w, r, false)
}

func (c *ValidationController) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid validation request ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	note := r.FormValue("note")

	decidedBy := userctx.GetUserEmail(r.Context())

	if approve {
		err = c.services.Validation.Approve(r.Context(), id, decidedBy, note)
	} else {
		err = c.services.Validation.Reject(r.Context(), id, decidedBy, note)
	}
	if err != nil {
		http.Redirect(w, r, "/admin/validation?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/validation", http.StatusSeeOther)
}

// Request handles POST /validation/request (self-service for members)
func (c *ValidationController) Request(w http.ResponseWriter, r *http.Request) {
	user := userctx.GetUser(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := c.services.Validation.Request(r.Context(), user.ID, r.FormValue("note")); err != nil {
		http.Redirect(w, r, "/?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
