// Package identity turns a bearer credential into a trusted per-request
// identity snapshot.
package identity

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Feaman/interview-server/types"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the hash-free projection of a user exposed to request
// handling after credential verification. It is immutable for the
// duration of a request.
type Identity struct {
	ID         int    `json:"id"`
	FirstName  string `json:"firstName"`
	SecondName string `json:"secondName"`
	Email      string `json:"email"`
	PhotoPath  string `json:"photoPath"`
}

// UserLoader loads the user behind a verified token subject.
type UserLoader interface {
	GetByID(ctx context.Context, id int) (types.User, error)
}

// Resolver verifies bearer tokens and resolves them to identities.
type Resolver struct {
	users  UserLoader
	secret []byte
	logger *slog.Logger
}

func NewResolver(users UserLoader, jwtSecret string, logger *slog.Logger) *Resolver {
	return &Resolver{users: users, secret: []byte(jwtSecret), logger: logger}
}

// Resolve verifies the token's signature and expiry, extracts the
// subject user id, and loads that user. Any failure resolves to nil
// rather than an error; callers decide whether anonymous access is
// permitted for their operation.
func (r *Resolver) Resolve(ctx context.Context, credential string) *Identity {
	subject, err := parseTokenSubject(credential, r.secret)
	if err != nil {
		return nil
	}

	userID, err := strconv.Atoi(subject)
	if err != nil || userID < 1 {
		return nil
	}

	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		if r.logger != nil {
			r.logger.Debug("could not load token subject", "userId", userID, "error", err)
		}
		return nil
	}

	return &Identity{
		ID:         user.ID,
		FirstName:  user.FirstName,
		SecondName: user.SecondName,
		Email:      user.Email,
		PhotoPath:  user.PhotoPath,
	}
}

// IssueToken signs an HS256 token whose subject is the given user id.
func IssueToken(userID int, jwtSecret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func parseTokenSubject(tokenString string, secret []byte) (string, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", errors.New("missing subject")
	}
	return claims.Subject, nil
}
