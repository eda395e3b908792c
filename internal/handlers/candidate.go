package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Feaman/interview-server/internal/identity"
	"github.com/Feaman/interview-server/internal/services"
	"github.com/Feaman/interview-server/internal/storage"
	"github.com/Feaman/interview-server/types"
)

const candidatesPhotoFolder = "candidates"

// CandidateHandler provides HTTP handlers for candidates.
type CandidateHandler struct {
	candidateService *services.CandidateService
	objects          *storage.Storage
}

// NewCandidateHandler constructs a handler with the provided dependencies.
func NewCandidateHandler(candidateService *services.CandidateService, objects *storage.Storage) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService, objects: objects}
}

// CandidateRouter registers candidate routes on the given router.
// All routes require an authenticated owner.
func CandidateRouter(r chi.Router, handler *CandidateHandler) {
	r.Use(identity.RequireAuth)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{candidateID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	candidates, err := h.candidateService.List(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}

func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "candidateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	candidate, err := h.candidateService.GetByID(r.Context(), id, current.ID)
	if err != nil {
		writeServiceError(w, err, "candidate")
		return
	}

	writeJSON(w, http.StatusOK, candidate)
}

func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	photoPath, _, err := storeUpload(r, h.objects, "photo", candidatesPhotoFolder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	candidate, err := h.candidateService.Create(r.Context(), types.Candidate{
		FirstName:  values["firstName"],
		SecondName: values["secondName"],
		Data:       values["data"],
		PhotoPath:  photoPath,
	}, current.ID)
	if err != nil {
		writeServiceError(w, err, "candidate")
		return
	}

	writeJSON(w, http.StatusCreated, candidate)
}

func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "candidateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	photoPath, _, err := storeUpload(r, h.objects, "photo", candidatesPhotoFolder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	candidate, err := h.candidateService.Update(r.Context(), id, types.Candidate{
		FirstName:  values["firstName"],
		SecondName: values["secondName"],
		Data:       values["data"],
		PhotoPath:  photoPath,
	}, current.ID)
	if err != nil {
		writeServiceError(w, err, "candidate")
		return
	}

	writeJSON(w, http.StatusOK, candidate)
}

func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "candidateID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.candidateService.Remove(r.Context(), id, current.ID); err != nil {
		writeServiceError(w, err, "candidate")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
