package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/router"
	"github.com/taskhive-dev/taskhive/internal/store/memory"
	"github.com/taskhive-dev/taskhive/internal/types"
)

func newTestServer(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	return newTestServerTTL(t, time.Hour)
}

func newTestServerTTL(t *testing.T, ttl time.Duration) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := memory.New()
	r := router.New(router.Deps{
		Store:          st,
		Tokens:         auth.NewTokenManager("test-secret", ttl),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type userEnvelope struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    types.UserResponse `json:"user"`
}

func signup(t *testing.T, r *gin.Engine, name, email, password string) types.UserResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp userEnvelope
	decode(t, w, &resp)
	return resp.User
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp userEnvelope
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func signupAndLogin(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()
	signup(t, r, name, email, "password123")
	return login(t, r, email, "password123")
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	return resp.Message
}
