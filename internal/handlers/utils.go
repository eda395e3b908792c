package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Feaman/interview-server/internal/services"
	"github.com/Feaman/interview-server/internal/storage"
	"github.com/Feaman/interview-server/internal/store"
	"github.com/Feaman/interview-server/internal/validate"
)

const maxMultipartMemory = 32 << 20

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{StatusCode: status, Message: message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Absent and wrong-owner rows both surface as the same not-found reply.
func writeServiceError(w http.ResponseWriter, err error, entity string) {
	switch {
	case validate.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, services.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(r *http.Request, value any) error {
	if err := json.NewDecoder(r.Body).Decode(value); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func parseIDParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// formValues returns the request's body fields, decoding multipart or
// urlencoded forms as the original client sends them, and falling back
// to a JSON object body.
func formValues(r *http.Request) (map[string]string, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
	} else if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
	} else {
		values := map[string]string{}
		if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
			return nil, errors.New("invalid request body")
		}
		return values, nil
	}

	values := make(map[string]string, len(r.Form))
	for key := range r.Form {
		values[key] = r.FormValue(key)
	}
	return values, nil
}

// storeUpload streams a multipart file field into object storage under a
// generated key and returns the key plus the upload descriptor. A missing
// field returns an empty key and no error.
func storeUpload(r *http.Request, objects *storage.Storage, field, folder string) (string, *multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		return "", nil, nil
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, nil
		}
		return "", nil, err
	}
	defer file.Close()

	key := storage.GenerateKey(folder, header.Filename)
	contentType := header.Header.Get("Content-Type")
	if err := objects.Put(r.Context(), key, file, header.Size, contentType); err != nil {
		return "", nil, err
	}
	return key, header, nil
}
