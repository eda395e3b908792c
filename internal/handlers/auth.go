package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Feaman/interview-server/internal/identity"
	"github.com/Feaman/interview-server/internal/services"
	"github.com/Feaman/interview-server/internal/storage"
	"github.com/Feaman/interview-server/types"
)

const defaultTokenTTL = 24 * time.Hour

const usersPhotoFolder = "users"

// AuthHandler provides registration, login, profile, and config endpoints.
type AuthHandler struct {
	userService      *services.UserService
	candidateService *services.CandidateService
	objects          *storage.Storage
	jwtSecret        string
	tokenTTL         time.Duration
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(
	userService *services.UserService,
	candidateService *services.CandidateService,
	objects *storage.Storage,
	jwtSecret string,
) *AuthHandler {
	return &AuthHandler{
		userService:      userService,
		candidateService: candidateService,
		objects:          objects,
		jwtSecret:        jwtSecret,
		tokenTTL:         defaultTokenTTL,
	}
}

// AuthRouter registers auth and profile routes on the given router.
func AuthRouter(r chi.Router, handler *AuthHandler) {
	r.Post("/login", handler.Login)
	r.Post("/users", handler.Register)
	r.With(identity.RequireAuth).Put("/users", handler.UpdateProfile)
	r.With(identity.RequireAuth).Get("/config", handler.Config)
}

// SessionResponse is returned on login and registration.
type SessionResponse struct {
	Candidates []types.Candidate  `json:"candidates"`
	User       *identity.Identity `json:"user"`
	Token      string             `json:"token,omitempty"`
}

// Login verifies credentials and returns the user's session payload.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.userService.Login(r.Context(), values["email"], values["password"])
	if err != nil {
		writeServiceError(w, err, "user")
		return
	}

	h.writeSession(w, r, user, http.StatusOK)
}

// Register creates a new user account, storing an optional profile
// photo, and returns the session payload.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	photoPath, _, err := storeUpload(r, h.objects, "photo", usersPhotoFolder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	user, err := h.userService.Create(r.Context(), types.User{
		FirstName:  values["firstName"],
		SecondName: values["secondName"],
		Email:      values["email"],
		PhotoPath:  photoPath,
	}, values["password"])
	if err != nil {
		writeServiceError(w, err, "user")
		return
	}

	h.writeSession(w, r, user, http.StatusCreated)
}

// UpdateProfile rewrites the authenticated user's profile, replacing
// the stored photo when a new one is uploaded.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	values, err := formValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	photoPath, _, err := storeUpload(r, h.objects, "photo", usersPhotoFolder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store photo")
		return
	}

	user, err := h.userService.Update(r.Context(), current.ID, services.UpdateUserParams{
		FirstName:  values["firstName"],
		SecondName: values["secondName"],
		Email:      values["email"],
		Password:   values["password"],
		PhotoPath:  photoPath,
	})
	if err != nil {
		writeServiceError(w, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, snapshot(user))
}

// Config returns the authenticated user's bootstrap payload.
func (h *AuthHandler) Config(w http.ResponseWriter, r *http.Request) {
	current := identity.FromContext(r.Context())

	candidates, err := h.candidateService.List(r.Context(), current.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{Candidates: candidates, User: current})
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, r *http.Request, user types.User, status int) {
	candidates, err := h.candidateService.List(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list candidates")
		return
	}

	token, err := identity.IssueToken(user.ID, h.jwtSecret, h.tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create token")
		return
	}

	writeJSON(w, status, SessionResponse{
		Candidates: candidates,
		User:       snapshot(user),
		Token:      token,
	})
}

// snapshot projects a user onto its hash-free identity shape.
func snapshot(user types.User) *identity.Identity {
	return &identity.Identity{
		ID:         user.ID,
		FirstName:  user.FirstName,
		SecondName: user.SecondName,
		Email:      user.Email,
		PhotoPath:  user.PhotoPath,
	}
}
