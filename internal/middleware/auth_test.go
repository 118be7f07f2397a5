package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store/memory"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *memory.Store, *auth.TokenManager, models.User) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memory.New()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	user := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "digest"}
	require.NoError(t, st.CreateUser(context.Background(), &user))

	r := gin.New()
	r.GET("/protected", Auth(tokens, st), func(ctx *gin.Context) {
		identity, err := utils.CurrentUser(ctx)
		require.NoError(t, err)
		ctx.JSON(http.StatusOK, identity)
	})

	return r, st, tokens, user
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsBadCredentials(t *testing.T) {
	r, _, tokens, user := setupAuthTest(t)

	valid, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	foreign, err := auth.NewTokenManager("other-secret", time.Hour).Issue(user.ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"missing header", "", "No authorization header"},
		{"wrong scheme", "Basic " + valid, "Invalid authorization format"},
		{"no token", "Bearer ", "Invalid authorization format"},
		{"single part", "sometoken", "Invalid authorization format"},
		{"garbage token", "Bearer garbage", "Invalid token"},
		{"foreign signature", "Bearer " + foreign, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestAuthRejectsTokenForDeletedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	st := memory.New()
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	r := gin.New()
	r.GET("/protected", Auth(tokens, st), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	// Token for a subject that no longer exists in the store.
	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestAuthAttachesIdentityWithoutDigest(t *testing.T) {
	r, _, tokens, user := setupAuthTest(t)

	token, err := tokens.Issue(user.ID)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Body.String(), user.ID.String())
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NotContains(t, w.Body.String(), "digest")

	// Resolved identity round-trips through the context helper type.
	var identity types.AuthenticatedUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &identity))
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, user.Name, identity.Name)
}
