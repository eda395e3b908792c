package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Feaman/interview-server/internal/identity"
	"github.com/Feaman/interview-server/internal/services"
	"github.com/Feaman/interview-server/internal/storage"
	"github.com/Feaman/interview-server/types"
)

const filesFolder = "files"

// FileHandler provides HTTP handlers for uploaded files. Disk storage
// destinations and collision-resistant naming live in the storage
// layer; this handler only moves bytes and records metadata.
type FileHandler struct {
	fileService *services.FileService
	objects     *storage.Storage
}

// NewFileHandler constructs a handler with the provided dependencies.
func NewFileHandler(fileService *services.FileService, objects *storage.Storage) *FileHandler {
	return &FileHandler{fileService: fileService, objects: objects}
}

// FileRouter registers file routes on the given router.
// All routes require an authenticated owner.
func FileRouter(r chi.Router, handler *FileHandler) {
	r.Use(identity.RequireAuth)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{fileID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	files, err := h.fileService.List(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list files")
		return
	}

	writeJSON(w, http.StatusOK, files)
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "fileID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.fileService.GetByID(r.Context(), id, current.ID)
	if err != nil {
		writeServiceError(w, err, "file")
		return
	}

	writeJSON(w, http.StatusOK, file)
}

// Create stores the uploaded "file" field and records its metadata.
// The original filename is kept alongside the generated storage key.
func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	key, header, err := storeUpload(r, h.objects, "file", filesFolder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	if header == nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	name := values["name"]
	if name == "" {
		name = header.Filename
	}

	file, err := h.fileService.Create(r.Context(), types.File{
		Name:         name,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Path:         key,
	}, current.ID)
	if err != nil {
		writeServiceError(w, err, "file")
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

// Update renames a file record and optionally replaces its contents
// when a fresh "file" field is uploaded.
func (h *FileHandler) Update(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "fileID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	key, header, err := storeUpload(r, h.objects, "file", filesFolder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	incoming := types.File{Name: values["name"]}
	if header != nil {
		incoming.OriginalName = header.Filename
		incoming.MimeType = header.Header.Get("Content-Type")
		incoming.Size = header.Size
		incoming.Path = key
		if incoming.Name == "" {
			incoming.Name = header.Filename
		}
	}

	file, err := h.fileService.Update(r.Context(), id, incoming, current.ID)
	if err != nil {
		writeServiceError(w, err, "file")
		return
	}

	writeJSON(w, http.StatusOK, file)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	id, err := parseIDParam(r, "fileID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.fileService.Remove(r.Context(), id, current.ID); err != nil {
		writeServiceError(w, err, "file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
