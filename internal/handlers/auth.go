package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/taskhive-dev/taskhive/internal/auth"
	"github.com/taskhive-dev/taskhive/internal/models"
	"github.com/taskhive-dev/taskhive/internal/store"
	"github.com/taskhive-dev/taskhive/internal/types"
	"github.com/taskhive-dev/taskhive/internal/utils"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	Users  store.UserStore
	Tokens *auth.TokenManager
}

func NewAuthHandler(users store.UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens}
}

func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Please enter your name, email, and password to continue",
		})
		return
	}

	// Existence check first so the common case gets the friendly message;
	// the unique index still backstops a create race.
	if _, err := h.Users.UserByEmail(ctx.Request.Context(), email); err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Email already in use, click log in to continue",
		})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error().Err(err).Msg("signup: email lookup failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	digest, err := auth.HashPassword(req.Password)

	if err != nil {
		log.Error().Err(err).Msg("signup: password hashing failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
	}

	if err := h.Users.CreateUser(ctx.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, gin.H{
				"message": "Email already in use, click log in to continue",
			})
			return
		}
		log.Error().Err(err).Msg("signup: create user failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"user": types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if email == "" || req.Password == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"message": "Please enter your email and password to continue",
		})
		return
	}

	user, err := h.Users.UserByEmail(ctx.Request.Context(), email)

	// Unknown email and wrong password share one message so the endpoint
	// cannot be used to enumerate accounts.
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"message": "Wrong email or password"})
			return
		}
		log.Error().Err(err).Msg("login: user lookup failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Wrong email or password"})
		return
	}

	token, err := h.Tokens.Issue(user.ID)

	if err != nil {
		log.Error().Err(err).Msg("login: token issuance failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": types.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.CurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": types.UserResponse{
			ID:    currentUser.ID,
			Name:  currentUser.Name,
			Email: currentUser.Email,
		},
	})
}
