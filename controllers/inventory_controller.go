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

// InventoryController handles inventory items and the location/category
// reference-data pages.
type InventoryController struct {
	services *services.Services
}

// NewInventoryController creates a new inventory controller
func NewInventoryController(services *services.Services) *InventoryController {
	return &InventoryController{services: services}
}

// Items handles GET /admin/inventory
func (c *InventoryController) Items(w http.ResponseWriter, r *http.Request) {
	items, err := c.services.Inventory.GetItems(r.Context())
	if err != nil {
		http.Error(w, "Failed to load inventory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	locations, err := c.services.Inventory.GetLocations(r.Context())
	if err != nil {
		http.Error(w, "Failed to load locations: "+err.Error(), http.StatusInternalServerError)
		return
	}

	categories, err := c.services.Inventory.GetCategories(r.Context())
	if err != nil {
		http.Error(w, "Failed to load categories: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		User        *models.User
		CSRFToken   string
		Error       string
		Items       []models.InventoryItem
		Locations   []models.Location
		Categories  []models.Category
	}{
		Title:       "Inventar",
		CurrentPage: "inventory",
		User:        userctx.GetUser(r.Context()),
		CSRFToken:   middleware.CSRFToken(r),
		Error:       r.URL.Query().Get("error"),
		Items:       items,
		Locations:   locations,
		Categories:  categories,
	}

	renderTemplate(w, "inventory", "templates/inventory.html", templateData)
}

// CreateItem handles POST /admin/inventory
func (c *InventoryController) CreateItem(w http.ResponseWriter, r *http.Request) {
	form, err := parseItemForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := c.services.Inventory.CreateItem(r.Context(), userctx.GetUser(r.Context()), form); err != nil {
		http.Redirect(w, r, "/admin/inventory?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

// UpdateItem handles POST /admin/inventory/{id}
func (c *InventoryController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid inventory item ID", http.StatusBadRequest)
		return
	}

	form, err := parseItemForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := c.services.Inventory.UpdateItem(r.Context(), userctx.GetUser(r.Context()), id, form); err != nil {
		http.Redirect(w, r, "/admin/inventory?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

// DeleteItem handles POST /admin/inventory/{id}/delete
func (c *InventoryController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid inventory item ID", http.StatusBadRequest)
		return
	}

	if err := c.services.Inventory.DeleteItem(r.Context(), userctx.GetUser(r.Context()), id); err != nil {
		http.Redirect(w, r, "/admin/inventory?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

// AdjustQuantity handles POST /admin/inventory/{id}/adjust
func (c *InventoryController) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid inventory item ID", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	delta, err := strconv.Atoi(r.FormValue("delta"))
	if err != nil {
		http.Error(w, "Invalid quantity adjustment", http.StatusBadRequest)
		return
	}

	if err := c.services.Inventory.AdjustQuantity(r.Context(), userctx.GetUser(r.Context()), id, delta); err != nil {
		http.Redirect(w, r, "/admin/inventory?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin/inventory", http.StatusSeeOther)
}

// Locations handles GET /admin/locations
func (c *InventoryController) Locations(w http.ResponseWriter, r *http.Request) {
	locations, err := c.services.Inventory.GetLocations(r.Context())
	if err != nil {
		http.Error(w, "Failed to load locations: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		User        *models.User
		CSRFToken   string
		Locations   []models.Location
	}{
		Title:       "Lagerorte",
		CurrentPage: "locations",
		User:        userctx.GetUser(r.Context()),
		CSRFToken:   middleware.CSRFToken(r),
		Locations:   locations,
	}

	renderTemplate(w, "locations", "templates/locations.html", templateData)
}

// AddLocation handles POST /admin/locations/add (AJAX)
func (c *InventoryController) AddLocation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: "Ungültige Anfrage"})
		return
	}

	form := &models.LocationForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}

	location, err := c.services.Inventory.AddLocation(r.Context(), form)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ajaxResponse{
		Success:  true,
		Message:  "Lagerort angelegt",
		Location: location,
	})
}

// DeleteLocation handles POST /admin/locations/{id}/delete (AJAX)
func (c *InventoryController) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: "Ungültige ID"})
		return
	}

	if err := c.services.Inventory.DeleteLocation(r.Context(), id); err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ajaxResponse{Success: true, Message: "Lagerort gelöscht"})
}

// Categories handles GET /admin/categories
func (c *InventoryController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.services.Inventory.GetCategories(r.Context())
	if err != nil {
		http.Error(w, "Failed to load categories: "+err.Error(), http.StatusInternalServerError)
		return
	}

	templateData := struct {
		Title       string
		CurrentPage string
		User        *models.User
		CSRFToken   string
		Categories  []models.Category
	}{
		Title:       "Kategorien",
		CurrentPage: "categories",
		User:        userctx.GetUser(r.Context()),
		CSRFToken:   middleware.CSRFToken(r),
		Categories:  categories,
	}

	renderTemplate(w, "categories", "templates/categories.html", templateData)
}

// AddCategory handles POST /admin/categories/add (AJAX)
func (c *InventoryController) AddCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: "Ungültige Anfrage"})
		return
	}

	form := &models.CategoryForm{Name: r.FormValue("name")}

	category, err := c.services.Inventory.AddCategory(r.Context(), form)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ajaxResponse{
		Success:  true,
		Message:  "Kategorie angelegt",
		Category: category,
	})
}

// DeleteCategory handles POST /admin/categories/{id}/delete (AJAX)
func (c *InventoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: "Ungültige ID"})
		return
	}

	if err := c.services.Inventory.DeleteCategory(r.Context(), id); err != nil {
		writeJSON(w, http.StatusBadRequest, ajaxResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ajaxResponse{Success: true, Message: "Kategorie gelöscht"})
}

// parseItemForm reads the shared item form fields
func parseItemForm(r *http.Request) (*models.InventoryItemForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &models.InventoryItemForm{
		Name: r.FormValue("name"),
	}

	if v := r.FormValue("quantity"); v != "" {
		quantity, err := strconv.Atoi(v)
		if err == nil {
			form.Quantity = quantity
		}
	}
	if v := r.FormValue("category_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			form.CategoryID = &id
		}
	}
	if v := r.FormValue("location_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			form.LocationID = &id
		}
	}

	return form, nil
}
