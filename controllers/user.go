package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"nexus-market/middleware"
	"nexus-market/models"
	"nexus-market/repository"
	"nexus-market/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserController handles registration, login and profile requests
type UserController struct {
	Users        *repository.UserRepo
	EmailService *utils.EmailService
}

// NewUserController creates a new UserController
func NewUserController(users *repository.UserRepo, emailService *utils.EmailService) *UserController {
	return &UserController{
		Users:        users,
		EmailService: emailService,
	}
}

// RegisterRequest is the payload for user registration
type RegisterRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Name     string      `json:"name"`
	Role     models.Role `json:"role"`
	Phone    string      `json:"phone"`
	Address  string      `json:"address"`
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	switch {
	case !emailRegex.MatchString(req.Email):
		utils.RespondError(w, http.StatusBadRequest, "Please provide a valid email")
		return
	case len(req.Password) < 6:
		utils.RespondError(w, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	case req.Name == "":
		utils.RespondError(w, http.StatusBadRequest, "Name is required")
		return
	case !req.Role.Valid():
		utils.RespondError(w, http.StatusBadRequest, "Role must be either buyer or seller")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	user := models.User{
		Email:     req.Email,
		Password:  string(hash),
		Name:      req.Name,
		Role:      req.Role,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := uc.Users.Create(ctx, &user); err != nil {
		if err == repository.ErrDuplicateEmail {
			utils.RespondError(w, http.StatusBadRequest, "User already exists with this email")
			return
		}
		logrus.WithError(err).Error("Registration failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	go func(email, name string) {
		if err := uc.EmailService.SendWelcomeEmail(email, name); err != nil {
			logrus.WithError(err).Warnf("Failed to send welcome email to %s", email)
		}
	}(user.Email, user.Name)

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
		"token":   token,
	})
}

// LoginRequest is the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication. An unknown email and a wrong password
// yield the same response so accounts cannot be enumerated.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := uc.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Me returns the authenticated user's profile
func (uc *UserController) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := uc.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		// The token signature is fine but the account is gone.
		utils.RespondError(w, http.StatusForbidden, "Invalid token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateProfileRequest is the payload for a partial profile edit
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// UpdateProfile applies a partial update to the authenticated user's profile
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Access token required")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		utils.RespondError(w, http.StatusBadRequest, "Name cannot be empty")
		return
	}
	if req.Email != nil && !emailRegex.MatchString(*req.Email) {
		utils.RespondError(w, http.StatusBadRequest, "Please provide a valid email")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := uc.Users.UpdateProfile(ctx, claims.UserID, repository.ProfileUpdate{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		switch err {
		case repository.ErrDuplicateEmail:
			utils.RespondError(w, http.StatusBadRequest, "Email is already taken by another user")
		case repository.ErrNotFound:
			utils.RespondError(w, http.StatusNotFound, "User not found")
		default:
			logrus.WithError(err).Error("Profile update failed")
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// ListUsers returns all users without their password hashes
func (uc *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	users, err := uc.Users.List(ctx)
	if err != nil {
		logrus.WithError(err).Error("Users fetch failed")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	utils.RespondJSON(w, http.StatusOK, users)
}
