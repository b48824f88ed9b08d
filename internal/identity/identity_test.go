package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef"

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func requestWithToken(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/favorite/planet/1", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestFixed(t *testing.T) {
	id, err := Fixed(1).Resolve(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestJWTResolvesSubject(t *testing.T) {
	token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	id, err := JWT(testSecret).Resolve(requestWithToken(token))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestJWTRejections(t *testing.T) {
	resolver := JWT(testSecret)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "missing", token: "", want: ErrMissingToken},
		{name: "garbage", token: "not-a-jwt", want: ErrInvalidToken},
		{
			name:  "wrong secret",
			token: signed(t, jwt.SigningMethodHS256, []byte("another-secret-value"), jwt.RegisteredClaims{Subject: "1"}),
			want:  ErrInvalidToken,
		},
		{
			name:  "expired",
			token: signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))}),
			want:  ErrInvalidToken,
		},
		{
			name:  "other algorithm",
			token: signed(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{Subject: "1"}),
			want:  ErrInvalidToken,
		},
		{
			name:  "non numeric subject",
			token: signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "luke"}),
			want:  ErrInvalidToken,
		},
		{
			name:  "zero subject",
			token: signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "0"}),
			want:  ErrInvalidToken,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := resolver.Resolve(requestWithToken(tc.token))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUserIDContext(t *testing.T) {
	_, ok := UserID(context.Background())
	assert.False(t, ok)

	id, ok := UserID(WithUserID(context.Background(), 5))
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}

func TestParseBearerToken(t *testing.T) {
	assert.Equal(t, "abc", parseBearerToken("Bearer abc"))
	assert.Equal(t, "abc", parseBearerToken("bearer  abc "))
	assert.Empty(t, parseBearerToken("Basic abc"))
	assert.Empty(t, parseBearerToken("Bearer"))
	assert.Empty(t, parseBearerToken(""))
}
