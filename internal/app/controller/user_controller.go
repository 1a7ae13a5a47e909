package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bookstore-backend/internal/app/service"
	apperrors "github.com/ikkim/bookstore-backend/internal/errors"
	"github.com/ikkim/bookstore-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required,max=100"`
	Password    string `json:"password" binding:"required"`
	Name        string `json:"name"`
	Email       string `json:"email" binding:"omitempty,email"`
	HomeAddress string `json:"home_address"`
}

// UpdateUserRequest has no email field: email is fixed at registration.
type UpdateUserRequest struct {
	Password    *string `json:"password"`
	Name        *string `json:"name"`
	HomeAddress *string `json:"home_address"`
}

// CreateUser registers a user
// POST /users/
func (ctrl *UserController) CreateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create user request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "username and password are required")
		return
	}

	user, err := ctrl.userService.CreateUser(c.Request.Context(), service.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Email:       req.Email,
		HomeAddress: req.HomeAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUserInput):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		case errors.Is(err, service.ErrUserAlreadyExists):
			apperrors.Conflict(c, apperrors.UserAlreadyExists, "Username is already taken")
		default:
			log.Error("Failed to create user", err, map[string]interface{}{
				"username": req.Username,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "User created successfully",
		"username": user.Username,
	})
}

// GetUser returns a user's profile
// GET /users/:username
func (ctrl *UserController) GetUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	username := c.Param("username")

	user, err := ctrl.userService.GetUser(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"username": username,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser partially updates a user's profile
// PUT /users/:username
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	username := c.Param("username")

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update user request", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "Invalid request body")
		return
	}

	err := ctrl.userService.UpdateUser(c.Request.Context(), username, service.UpdateUserInput{
		Password:    req.Password,
		Name:        req.Name,
		HomeAddress: req.HomeAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoUserChanges):
			apperrors.BadRequest(c, apperrors.ValidationNoChanges, "No updatable fields provided")
		case errors.Is(err, service.ErrInvalidUserInput):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		default:
			log.Error("Failed to update user", err, map[string]interface{}{
				"username": username,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update user")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
	})
}
