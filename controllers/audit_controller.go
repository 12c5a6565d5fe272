package controllers

import (
	"net/http"
	"net/url"

	"github.com/alumnet/portal/middleware"
	"github.com/alumnet/portal/models"
	"github.com/alumnet/portal/services"
	"github.com/alumnet/portal/userctx"
)

// AuditController renders the inventory audit trail page
type AuditController struct {
	services *services.Services
}

// NewAuditController creates a new audit controller
func NewAuditController(services *services.Services) *AuditController {
	return &AuditController{services: services}
}

// auditActions drives the filter form's action select.
var auditActions = []models.AuditAction{
	models.ActionCreate,
	models.ActionUpdate,
	models.ActionDelete,
	models.ActionAdjustQuantity,
}

// Index handles GET /admin/audit
//
// Pipeline: build filters from the query string, fetch + count, resolve
// target names, render. Malformed date parameters are dropped by the filter
// builder; the page then shows the unfiltered-by-date result.
func (c *AuditController) Index(w http.ResponseWriter, r *http.Request) {
	filter := c.services.Audit.ParseFilters(r.URL.Query())

	page, err := c.services.Audit.GetPage(r.Context(), filter)
	if err != nil {
		http.Error(w, "Failed to load audit trail: "+err.Error(), http.StatusInternalServerError)
		return
	}

	type actionOption struct {
		Value    models.AuditAction
		Label    string
		Selected bool
	}
	options := make([]actionOption, 0, len(auditActions))
	for _, action := range auditActions {
		options = append(options, actionOption{
			Value:    action,
			Label:    services.ActionLabel(action),
			Selected: string(action) == r.URL.Query().Get("action"),
		})
	}

	templateData := struct {
		Title       string
		CurrentPage string
		User        *models.User
		CSRFToken   string
		Page        *services.AuditPage
		Actions     []actionOption
		Query       url.Values
	}{
		Title:       "Änderungsprotokoll Inventar",
		CurrentPage: "audit",
		User:        userctx.GetUser(r.Context()),
		CSRFToken:   middleware.CSRFToken(r),
		Page:        page,
		Actions:     options,
		Query:       r.URL.Query(),
	}

	renderTemplate(w, "audit_log", "templates/audit_log.html", templateData)
}
