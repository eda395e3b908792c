package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Feaman/interview-server/internal/store"
	"github.com/Feaman/interview-server/types"
)

// In-memory repository fakes mirroring the store contracts: owner-scoped
// predicates, upsert-with-reread, ErrNotFound for absent or foreign rows.

type fakeUserRepo struct {
	users       map[int]types.User
	nextID      int
	createCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]types.User{}}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	f.createCalls++
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

type fakeCandidateRepo struct {
	candidates  map[int]types.Candidate
	nextID      int
	createCalls int
	updateCalls int
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: map[int]types.Candidate{}}
}

func (f *fakeCandidateRepo) List(_ context.Context, userID int) ([]types.Candidate, error) {
	candidates := make([]types.Candidate, 0)
	for _, candidate := range f.candidates {
		if candidate.UserID == userID {
			candidates = append(candidates, candidate)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})
	return candidates, nil
}

func (f *fakeCandidateRepo) GetByID(_ context.Context, id, userID int) (types.Candidate, error) {
	candidate, ok := f.candidates[id]
	if !ok || candidate.UserID != userID {
		return types.Candidate{}, store.ErrNotFound
	}
	return candidate, nil
}

func (f *fakeCandidateRepo) Create(_ context.Context, candidate types.Candidate, userID int) (types.Candidate, error) {
	f.createCalls++
	f.nextID++
	candidate.ID = f.nextID
	candidate.UserID = userID
	candidate.CreatedAt = time.Now()
	f.candidates[candidate.ID] = candidate
	return candidate, nil
}

func (f *fakeCandidateRepo) Update(_ context.Context, candidate types.Candidate, userID int) (types.Candidate, error) {
	f.updateCalls++
	existing, ok := f.candidates[candidate.ID]
	if !ok || existing.UserID != userID {
		return types.Candidate{}, store.ErrNotFound
	}
	candidate.UserID = existing.UserID
	candidate.CreatedAt = existing.CreatedAt
	f.candidates[candidate.ID] = candidate
	return candidate, nil
}

func (f *fakeCandidateRepo) Delete(_ context.Context, id, userID int) error {
	candidate, ok := f.candidates[id]
	if !ok || candidate.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.candidates, id)
	return nil
}

type fakeTemplateRepo struct {
	templates map[int]types.Template
	nextID    int
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[int]types.Template{}}
}

func (f *fakeTemplateRepo) List(_ context.Context, userID int) ([]types.Template, error) {
	templates := make([]types.Template, 0)
	for _, template := range f.templates {
		if template.UserID == userID {
			templates = append(templates, template)
		}
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].CreatedAt.After(templates[j].CreatedAt)
	})
	return templates, nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id, userID int) (types.Template, error) {
	template, ok := f.templates[id]
	if !ok || template.UserID != userID {
		return types.Template{}, store.ErrNotFound
	}
	return template, nil
}

func (f *fakeTemplateRepo) Create(_ context.Context, template types.Template, userID int) (types.Template, error) {
	if template.IsDefault {
		f.clearDefaults(userID, 0)
	}
	f.nextID++
	template.ID = f.nextID
	template.UserID = userID
	template.CreatedAt = time.Now()
	template.UpdatedAt = template.CreatedAt
	f.templates[template.ID] = template
	return template, nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, template types.Template, userID int) (types.Template, error) {
	existing, ok := f.templates[template.ID]
	if !ok || existing.UserID != userID {
		return types.Template{}, store.ErrNotFound
	}
	if template.IsDefault {
		f.clearDefaults(userID, template.ID)
	}
	template.UserID = existing.UserID
	template.CreatedAt = existing.CreatedAt
	template.UpdatedAt = time.Now()
	f.templates[template.ID] = template
	return template, nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id, userID int) error {
	template, ok := f.templates[id]
	if !ok || template.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

func (f *fakeTemplateRepo) clearDefaults(userID, keepID int) {
	for id, template := range f.templates {
		if template.UserID == userID && id != keepID {
			template.IsDefault = false
			f.templates[id] = template
		}
	}
}

type fakeFileRepo struct {
	files       map[int]types.File
	nextID      int
	createCalls int
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[int]types.File{}}
}

func (f *fakeFileRepo) List(_ context.Context, userID int) ([]types.File, error) {
	files := make([]types.File, 0)
	for _, file := range f.files {
		if file.UserID == userID {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

func (f *fakeFileRepo) GetByID(_ context.Context, id, userID int) (types.File, error) {
	file, ok := f.files[id]
	if !ok || file.UserID != userID {
		return types.File{}, store.ErrNotFound
	}
	return file, nil
}

func (f *fakeFileRepo) Create(_ context.Context, file types.File, userID int) (types.File, error) {
	f.createCalls++
	f.nextID++
	file.ID = f.nextID
	file.UserID = userID
	file.CreatedAt = time.Now()
	f.files[file.ID] = file
	return file, nil
}

func (f *fakeFileRepo) Update(_ context.Context, file types.File, userID int) (types.File, error) {
	existing, ok := f.files[file.ID]
	if !ok || existing.UserID != userID {
		return types.File{}, store.ErrNotFound
	}
	file.UserID = existing.UserID
	file.CreatedAt = existing.CreatedAt
	f.files[file.ID] = file
	return file, nil
}

func (f *fakeFileRepo) Delete(_ context.Context, id, userID int) error {
	file, ok := f.files[id]
	if !ok || file.UserID != userID {
		return store.ErrNotFound
	}
	delete(f.files, id)
	return nil
}

// fakeDeleter records deleted storage keys and can be told to fail.
type fakeDeleter struct {
	deleted []string
	err     error
}

func (f *fakeDeleter) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

// fakePublisher records published channels and can be told to fail.
type fakePublisher struct {
	channels []string
	payloads [][]byte
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, channel string, data []byte, _ map[string]string) (string, error) {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, data)
	if f.err != nil {
		return "", f.err
	}
	return "message-id", nil
}

var errStorage = errors.New("storage backend unavailable")
