package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linguo-app/linguo-auth/internal/security"
	"github.com/linguo-app/linguo-auth/internal/store"
	log "github.com/sirupsen/logrus"
)

// Minimum credential lengths, shared with the client-side schemas.
const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// UserHandler manages registration and login endpoints.
type UserHandler struct {
	store store.Store
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(st store.Store) *UserHandler {
	return &UserHandler{store: st}
}

// registerRequest defines the request body for registration.
type registerRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
}

// Register creates a new account. Username uniqueness is enforced here, not
// in the store: a lookup precedes the insert.
func (h *UserHandler) Register(c *gin.Context) {
	var body registerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration data"})
		return
	}

	username := strings.TrimSpace(body.Username)
	if len(username) < minUsernameLen || len(body.Password) < minPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration data"})
		return
	}

	ctx := c.Request.Context()
	if _, errFind := h.store.GetUserByUsername(ctx, username); errFind == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username already exists"})
		return
	} else if !errors.Is(errFind, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	hash, errHash := security.HashPassword(body.Password)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	user, errCreate := h.store.CreateUser(ctx, store.CreateUserParams{
		Username:     username,
		PasswordHash: hash,
		FullName:     normalizeOptional(body.FullName),
		Email:        normalizeOptional(body.Email),
		PhoneNumber:  normalizeOptional(body.PhoneNumber),
	})
	if errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user"})
		return
	}

	log.Infof("registered user %s", user.Username)
	c.JSON(http.StatusCreated, user)
}

// loginRequest defines the request body for login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and acknowledges success. No session or token is
// issued.
func (h *UserHandler) Login(c *gin.Context) {
	var body loginRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid login data"})
		return
	}

	user, errFind := h.store.GetUserByUsername(c.Request.Context(), strings.TrimSpace(body.Username))
	if errFind != nil {
		if errors.Is(errFind, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
		return
	}

	if !security.VerifyPassword(user.PasswordHash, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}

// normalizeOptional trims an optional field and drops it entirely when empty.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
