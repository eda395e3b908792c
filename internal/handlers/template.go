package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Feaman/interview-server/internal/identity"
	"github.com/Feaman/interview-server/internal/services"
	"github.com/Feaman/interview-server/types"
)

// TemplateHandler provides HTTP handlers for templates.
type TemplateHandler struct {
	templateService *services.TemplateService
}

// NewTemplateHandler constructs a handler with the provided service.
func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// TemplateRouter registers template routes on the given router.
// All routes require an authenticated owner.
func TemplateRouter(r chi.Router, handler *TemplateHandler) {
	r.Use(identity.RequireAuth)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{templateID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

// TemplateRequest is the JSON body for template writes.
type TemplateRequest struct {
	Title     string `json:"title"`
	Data      string `json:"data"`
	IsDefault bool   `json:"isDefault"`
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	templates, err := h.templateService.List(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}

	writeJSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "templateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	template, err := h.templateService.GetByID(r.Context(), id, current.ID)
	if err != nil {
		writeServiceError(w, err, "template")
		return
	}

	writeJSON(w, http.StatusOK, template)
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	req, err := decodeTemplateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	template, err := h.templateService.Create(r.Context(), types.Template{
		Title:     req.Title,
		Data:      req.Data,
		IsDefault: req.IsDefault,
	}, current.ID)
	if err != nil {
		writeServiceError(w, err, "template")
		return
	}

	writeJSON(w, http.StatusCreated, template)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "templateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := decodeTemplateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	template, err := h.templateService.Update(r.Context(), id, types.Template{
		Title:     req.Title,
		Data:      req.Data,
		IsDefault: req.IsDefault,
	}, current.ID)
	if err != nil {
		writeServiceError(w, err, "template")
		return
	}

	writeJSON(w, http.StatusOK, template)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "templateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.templateService.Remove(r.Context(), id, current.ID); err != nil {
		writeServiceError(w, err, "template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeTemplateRequest(r *http.Request) (TemplateRequest, error) {
	var req TemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		return TemplateRequest{}, err
	}
	return req, nil
}
