// Package identity resolves which user a request acts on behalf of.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"holocron/internal/logging"
)

var (
	// ErrMissingToken indicates a request without a bearer token.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken indicates a token that failed verification or has no usable subject.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Resolver determines the calling user for a request.
type Resolver interface {
	Resolve(r *http.Request) (int64, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(r *http.Request) (int64, error)

func (f ResolverFunc) Resolve(r *http.Request) (int64, error) {
	return f(r)
}

// Fixed always resolves to the same user. Meant for development setups.
func Fixed(userID int64) Resolver {
	return ResolverFunc(func(*http.Request) (int64, error) {
		return userID, nil
	})
}

type jwtResolver struct {
	secret []byte
	parser *jwt.Parser
}

// JWT resolves HS256 bearer tokens whose subject is the decimal user id.
func JWT(secret string) Resolver {
	return &jwtResolver{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

func (j *jwtResolver) Resolve(r *http.Request) (int64, error) {
	raw := parseBearerToken(r.Header.Get("Authorization"))
	if raw == "" {
		return 0, ErrMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := j.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return j.secret, nil
	}); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID < 1 {
		return 0, fmt.Errorf("%w: subject %q is not a user id", ErrInvalidToken, claims.Subject)
	}
	return userID, nil
}

// WithUserID stores the caller's user id in ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, logging.UserIDKey, userID)
}

// UserID returns the caller's user id stored by WithUserID.
func UserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(logging.UserIDKey).(int64)
	return userID, ok
}

func parseBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
