package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Feaman/interview-server/internal/store"
	"github.com/Feaman/interview-server/internal/validate"
	"github.com/Feaman/interview-server/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// UpdateUserParams carries the mutable profile fields of a user.
// Password and PhotoPath are optional; empty values retain the old ones.
type UpdateUserParams struct {
	FirstName  string
	SecondName string
	Email      string
	Password   string
	PhotoPath  string
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo    UserRepository
	storage ObjectDeleter
	logger  *slog.Logger
}

func NewUserService(repo UserRepository, storage ObjectDeleter, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, storage: storage, logger: logger}
}

// Create registers a new user. The email must not belong to an existing
// user and the password is hashed before it reaches the store.
func (s *UserService) Create(ctx context.Context, user types.User, password string) (types.User, error) {
	if password == "" {
		return types.User{}, &validate.Error{
			Entity: "user",
			Fields: []validate.FieldError{{Field: "Password", Rule: "required"}},
		}
	}
	if err := validate.Struct("user", user); err != nil {
		return types.User{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return types.User{}, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return types.User{}, err
	}
	user.PasswordHash = hash

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	return created, nil
}

// Login verifies credentials by email lookup and hash comparison. Both
// failure modes read identically as ErrInvalidCredentials. The returned
// user carries no password hash.
func (s *UserService) Login(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, ErrInvalidCredentials
		}
		return types.User{}, err
	}

	if !ComparePassword(user.PasswordHash, password) {
		return types.User{}, ErrInvalidCredentials
	}

	user.PasswordHash = ""
	return user, nil
}

// Update rewrites the profile of the user identified by userID. When a
// new photo is supplied and an old one existed, the old photo is removed
// best-effort; an empty incoming photo path retains the old one.
func (s *UserService) Update(ctx context.Context, userID int, params UpdateUserParams) (types.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return types.User{}, err
	}

	if params.PhotoPath != "" && user.PhotoPath != "" {
		deleteObject(ctx, s.storage, s.logger, user.PhotoPath)
	}

	user.FirstName = params.FirstName
	user.SecondName = params.SecondName
	user.Email = params.Email
	if params.PhotoPath != "" {
		user.PhotoPath = params.PhotoPath
	}
	if params.Password != "" {
		hash, err := HashPassword(params.Password)
		if err != nil {
			return types.User{}, err
		}
		user.PasswordHash = hash
	}

	if err := validate.Struct("user", user); err != nil {
		return types.User{}, err
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrDuplicateEmail
		}
		return types.User{}, err
	}
	return updated, nil
}

// GetByID loads a user by id.
func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}
