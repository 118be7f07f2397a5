package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupNormalizesEmail(t *testing.T) {
	r, st := newTestServer(t)

	user := signup(t, r, "  Alice  ", "  Alice@Example.COM ", "password123")

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)

	stored, err := st.UserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestSignupNeverReturnsPasswordDigest(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestSignupMissingFields(t *testing.T) {
	r, _ := newTestServer(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"no name", gin.H{"email": "a@b.com", "password": "password123"}},
		{"blank name", gin.H{"name": "   ", "email": "a@b.com", "password": "password123"}},
		{"no email", gin.H{"name": "Alice", "password": "password123"}},
		{"no password", gin.H{"name": "Alice", "email": "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Please enter your name, email, and password to continue", message(t, w))
		})
	}
}

func TestSignupDuplicateEmailAnyCasing(t *testing.T) {
	r, _ := newTestServer(t)

	signup(t, r, "Alice", "alice@example.com", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     "Other Alice",
		"email":    "ALICE@example.COM",
		"password": "different456",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already in use, click log in to continue", message(t, w))
}

func TestLoginFailuresAreNotEnumerable(t *testing.T) {
	r, _ := newTestServer(t)

	signup(t, r, "Alice", "alice@example.com", "password123")

	unknown := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	wrongPassword := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrongpassword",
	})

	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, message(t, unknown), message(t, wrongPassword))
	assert.Equal(t, "Wrong email or password", message(t, unknown))
}

func TestLoginNormalizesEmail(t *testing.T) {
	r, _ := newTestServer(t)

	signup(t, r, "Alice", "alice@example.com", "password123")
	token := login(t, r, "  ALICE@Example.com ", "password123")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginTokenResolvesIdentity(t *testing.T) {
	r, _ := newTestServer(t)

	created := signup(t, r, "Alice", "alice@example.com", "password123")
	token := login(t, r, "alice@example.com", "password123")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp userEnvelope
	decode(t, w, &resp)
	assert.Equal(t, created.ID, resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestExpiredTokenRejected(t *testing.T) {
	r, _ := newTestServerTTL(t, -time.Minute)

	signup(t, r, "Alice", "alice@example.com", "password123")
	token := login(t, r, "alice@example.com", "password123")

	w := doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", message(t, w))
}
