package controllers

import (
	"github.com/gin-gonic/gin"

	"tech-shop/models"
	"tech-shop/services"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// GetUsers godoc
// @Summary List users
// @Description List users with pagination and filters (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Param name query string false "Filter by name"
// @Param email query string false "Filter by email"
// @Param role query string false "Filter by role"
// @Success 200 {object} models.PaginatedResponse
// @Router /api/admin/users [get]
func (ctrl *UserController) GetUsers(c *gin.Context) {
	page, limit := paginationParams(c, 10)

	users, meta, err := ctrl.users.GetUsers(
		c.Request.Context(),
		c.Query("name"),
		c.Query("email"),
		c.Query("role"),
		page, limit,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondPage(c, users, meta)
}

// GetUserByID godoc
// @Summary Get user by ID
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := ctrl.users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "User retrieved successfully", user)
}

// CreateUser godoc
// @Summary Create user
// @Description Create a user with an explicit role (Admin)
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "Create User Request"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	actor := c.GetString("user_email")
	user, err := ctrl.users.CreateUser(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondCreated(c, "User created successfully", user)
}

// UpdateUser godoc
// @Summary Update user
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateUserRequest true "Update User Request"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/users [put]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	actor := c.GetString("user_email")
	user, err := ctrl.users.UpdateUser(c.Request.Context(), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "User updated successfully", user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} models.Response
// @Router /api/users/update-profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request", err)
		return
	}

	userID := c.GetInt("user_id")
	user, err := ctrl.users.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "Profile updated successfully", user)
}

// DeleteUser godoc
// @Summary Delete user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, "User deleted successfully", gin.H{"id": id})
}
