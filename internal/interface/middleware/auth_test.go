package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mindstack/mindstack/pkg/helpers"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *helpers.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := helpers.NewTokenManager("test-secret", time.Hour)

	r := gin.New()
	r.GET("/protected", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r, tokens
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestAuthMissingHeader(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := doRequest(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "no authorization header", messageOf(t, w))
}

func TestAuthNonASCIIHeader(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := doRequest(r, "Bearer токен")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid authorization header", messageOf(t, w))
}

func TestAuthMissingBearerPrefix(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, _, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	for _, header := range []string{"Basic abc123", token, "bearer " + token} {
		w := doRequest(r, header)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "invalid authorization header format", messageOf(t, w), "header: %q", header)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	r, _ := newAuthRouter(t)

	other := helpers.NewTokenManager("other-secret", time.Hour)
	foreign, _, err := other.Issue(uuid.New())
	require.NoError(t, err)

	expired := helpers.NewTokenManager("test-secret", -time.Minute)
	stale, _, err := expired.Issue(uuid.New())
	require.NoError(t, err)

	for _, token := range []string{"garbage", foreign, stale} {
		w := doRequest(r, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, "invalid token", messageOf(t, w))
	}
}

func TestAuthNilUserID(t *testing.T) {
	r, tokens := newAuthRouter(t)
	token, _, err := tokens.Issue(uuid.Nil)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid user id in token", messageOf(t, w))
}

func TestAuthNonUUIDSubject(t *testing.T) {
	r, _ := newAuthRouter(t)

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := signed.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid user id in token", messageOf(t, w))
}

func TestAuthSuccess(t *testing.T) {
	r, tokens := newAuthRouter(t)
	userID := uuid.New()
	token, _, err := tokens.Issue(userID)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		UserID uuid.UUID `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, userID, body.UserID)
}

func TestAuthDistinctUsersDistinctIdentities(t *testing.T) {
	r, tokens := newAuthRouter(t)
	u1 := uuid.New()
	u2 := uuid.New()
	t1, _, err := tokens.Issue(u1)
	require.NoError(t, err)
	t2, _, err := tokens.Issue(u2)
	require.NoError(t, err)

	for token, want := range map[string]uuid.UUID{t1: u1, t2: u2} {
		w := doRequest(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			UserID uuid.UUID `json:"user_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, want, body.UserID)
	}
}

func TestUserIDWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	require.Equal(t, uuid.Nil, UserID(c))
}
