package controllers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/services"
)

// renderTemplate creates a template set and renders it with the provided data
func renderTemplate(w http.ResponseWriter, templateName string, pageTemplate string, data interface{}) error {
	return renderTemplateWithStatus(w, http.StatusOK, templateName, pageTemplate, data)
}

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, templateName string, pageTemplate string, data interface{}) error {
	// Create a new template set with only the templates we need
	tmpl := template.New(templateName)
	tmpl.Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	})

	// Parse layout and page template
	_, err := tmpl.ParseFiles("templates/layout.html", pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		http.Error(w, "Failed to render template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	return nil
}

// ajaxResponse is the JSON contract of the reference-data AJAX endpoints.
type ajaxResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Location *models.Location `json:"location,omitempty"`
	Category *models.Category `json:"category,omitempty"`
}

// writeJSON writes an AJAX response with the given status code
func writeJSON(w http.ResponseWriter, status int, resp ajaxResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// Controllers holds all controller instances
type Controllers struct {
	Auth       *AuthController
	Dashboard  *DashboardController
	Audit      *AuditController
	Inventory  *InventoryController
	Validation *ValidationController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(services),
		Dashboard:  NewDashboardController(services),
		Audit:      NewAuditController(services),
		Inventory:  NewInventoryController(services),
		Validation: NewValidationController(services),
	}
}
