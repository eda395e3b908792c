package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/Feaman/interview-server/internal/identity"
	"github.com/Feaman/interview-server/internal/services"
	"github.com/Feaman/interview-server/internal/storage"
	"github.com/Feaman/interview-server/internal/store"
	"github.com/Feaman/interview-server/types"
)

const testJWTSecret = "handler-test-secret"

// In-memory repositories mirroring the store contracts, so the full
// middleware-to-service request path runs without a database.

type memUserRepo struct {
	users  map[int]types.User
	nextID int
}

func (m *memUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

type memCandidateRepo struct {
	candidates map[int]types.Candidate
	nextID     int
}

func (m *memCandidateRepo) List(_ context.Context, userID int) ([]types.Candidate, error) {
	candidates := make([]types.Candidate, 0)
	for _, candidate := range m.candidates {
		if candidate.UserID == userID {
			candidates = append(candidates, candidate)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID > candidates[j].ID
	})
	return candidates, nil
}

func (m *memCandidateRepo) GetByID(_ context.Context, id, userID int) (types.Candidate, error) {
	candidate, ok := m.candidates[id]
	if !ok || candidate.UserID != userID {
		return types.Candidate{}, store.ErrNotFound
	}
	return candidate, nil
}

func (m *memCandidateRepo) Create(_ context.Context, candidate types.Candidate, userID int) (types.Candidate, error) {
	m.nextID++
	candidate.ID = m.nextID
	candidate.UserID = userID
	candidate.CreatedAt = time.Now()
	m.candidates[candidate.ID] = candidate
	return candidate, nil
}

func (m *memCandidateRepo) Update(_ context.Context, candidate types.Candidate, userID int) (types.Candidate, error) {
	existing, ok := m.candidates[candidate.ID]
	if !ok || existing.UserID != userID {
		return types.Candidate{}, store.ErrNotFound
	}
	candidate.UserID = existing.UserID
	candidate.CreatedAt = existing.CreatedAt
	m.candidates[candidate.ID] = candidate
	return candidate, nil
}

func (m *memCandidateRepo) Delete(_ context.Context, id, userID int) error {
	candidate, ok := m.candidates[id]
	if !ok || candidate.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.candidates, id)
	return nil
}

type memTemplateRepo struct {
	templates map[int]types.Template
	nextID    int
}

func (m *memTemplateRepo) List(_ context.Context, userID int) ([]types.Template, error) {
	templates := make([]types.Template, 0)
	for _, template := range m.templates {
		if template.UserID == userID {
			templates = append(templates, template)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].ID > templates[j].ID
	})
	return templates, nil
}

func (m *memTemplateRepo) GetByID(_ context.Context, id, userID int) (types.Template, error) {
	template, ok := m.templates[id]
	if !ok || template.UserID != userID {
		return types.Template{}, store.ErrNotFound
	}
	return template, nil
}

func (m *memTemplateRepo) Create(_ context.Context, template types.Template, userID int) (types.Template, error) {
	if template.IsDefault {
		m.clearDefaults(userID, 0)
	}
	m.nextID++
	template.ID = m.nextID
	template.UserID = userID
	template.CreatedAt = time.Now()
	template.UpdatedAt = template.CreatedAt
	m.templates[template.ID] = template
	return template, nil
}

func (m *memTemplateRepo) Update(_ context.Context, template types.Template, userID int) (types.Template, error) {
	existing, ok := m.templates[template.ID]
	if !ok || existing.UserID != userID {
		return types.Template{}, store.ErrNotFound
	}
	if template.IsDefault {
		m.clearDefaults(userID, template.ID)
	}
	template.UserID = existing.UserID
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now()
	m.templates[template.ID] = template
	return template, nil
}

func (m *memTemplateRepo) Delete(_ context.Context, id, userID int) error {
	template, ok := m.templates[id]
	if !ok || template.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

func (m *memTemplateRepo) clearDefaults(userID, keepID int) {
	for id, template := range m.templates {
		if template.UserID == userID && id != keepID {
			template.IsDefault = false
			m.templates[id] = template
		}
	}
}

type memFileRepo struct {
	files  map[int]types.File
	nextID int
}

func (m *memFileRepo) List(_ context.Context, userID int) ([]types.File, error) {
	files := make([]types.File, 0)
	for _, file := range m.files {
		if file.UserID == userID {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].ID > files[j].ID
	})
	return files, nil
}

func (m *memFileRepo) GetByID(_ context.Context, id, userID int) (types.File, error) {
	file, ok := m.files[id]
	if !ok || file.UserID != userID {
		return types.File{}, store.ErrNotFound
	}
	return file, nil
}

func (m *memFileRepo) Create(_ context.Context, file types.File, userID int) (types.File, error) {
	m.nextID++
	file.ID = m.nextID
	file.UserID = userID
	file.CreatedAt = time.Now()
	m.files[file.ID] = file
	return file, nil
}

func (m *memFileRepo) Update(_ context.Context, file types.File, userID int) (types.File, error) {
	existing, ok := m.files[file.ID]
	if !ok || existing.UserID != userID {
		return types.File{}, store.ErrNotFound
	}
	file.UserID = existing.UserID
	file.CreatedAt = existing.CreatedAt
	m.files[file.ID] = file
	return file, nil
}

func (m *memFileRepo) Delete(_ context.Context, id, userID int) error {
	file, ok := m.files[id]
	if !ok || file.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.files, id)
	return nil
}

// testAPI wires the full router over in-memory repositories and a
// temp-dir disk backend, matching the production wiring.
type testAPI struct {
	router  http.Handler
	objects *storage.Storage
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	disk, err := storage.NewDiskClient(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, disk.EnsureBucket(context.Background()))
	objects := storage.NewStorage(disk)

	userService := services.NewUserService(&memUserRepo{users: map[int]types.User{}}, objects, nil)
	candidateService := services.NewCandidateService(&memCandidateRepo{candidates: map[int]types.Candidate{}}, objects, nil)
	templateService := services.NewTemplateService(&memTemplateRepo{templates: map[int]types.Template{}})
	fileService := services.NewFileService(&memFileRepo{files: map[int]types.File{}}, objects, nil, nil)

	resolver := identity.NewResolver(userService, testJWTSecret, nil)

	router := chi.NewRouter()
	router.Use(identity.Middleware(resolver))
	router.Get("/healthz", Healthz)
	AuthRouter(router, NewAuthHandler(userService, candidateService, objects, testJWTSecret))
	router.Route("/candidates", func(r chi.Router) {
		CandidateRouter(r, NewCandidateHandler(candidateService, objects))
	})
	router.Route("/templates", func(r chi.Router) {
		TemplateRouter(r, NewTemplateHandler(templateService))
	})
	router.Route("/files", func(r chi.Router) {
		FileRouter(r, NewFileHandler(fileService, objects))
	})

	return &testAPI{router: router, objects: objects}
}

func (a *testAPI) do(t *testing.T, method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) doJSON(t *testing.T, method, target, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return a.do(t, method, target, token, bytes.NewReader(body), "application/json")
}

// register creates an account and returns the session token.
func (a *testAPI) register(t *testing.T, email string) string {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/users", "", map[string]string{
		"firstName":  "Test",
		"secondName": "User",
		"email":      email,
		"password":   "hunter2secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var session SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, value any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), value))
}

// multipartBody builds a form body with the given fields and an
// optional uploaded file.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = io.Copy(part, strings.NewReader(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
