package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/middleware"
)

// userHandler handles HTTP requests related to users.
type userHandler struct {
	userService       portssvc.UserSvcFacade
	departmentService portssvc.DepartmentReaderSvc
}

// RegisterUserRoutes registers routes related to users. The department
// reader resolves department names for responses.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, departmentService portssvc.DepartmentReaderSvc) {
	h := &userHandler{userService: userService, departmentService: departmentService}

	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("", h.listUsers)
		users.GET("/:userID", h.getUser)
		users.PUT("/:userID", h.updateUser)
		users.DELETE("/:userID", h.deleteUser)
		users.GET("/:userID/expenses", h.listUserExpenses)
	}
}

func (h *userHandler) departmentName(ctx context.Context, departmentID string) string {
	dept, err := h.departmentService.GetDepartmentByID(ctx, departmentID)
	if err != nil {
		return ""
	}
	return dept.Name
}

// createUser godoc
// @Summary Create a user
// @Tags users
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create user", slog.String("department_id", req.DepartmentID))
	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user, h.departmentName(c.Request.Context(), user.DepartmentID)))
}

// getUser godoc
// @Summary Get a user
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [get]
func (h *userHandler) getUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user, h.departmentName(c.Request.Context(), user.DepartmentID)))
}

// listUsers godoc
// @Summary List users
// @Description Searches users by name or department name and returns the loaded pages with totals.
// @Tags users
// @Produce  json
// @Param   search query string false "Search term"
// @Param   cursor query string false "Cursor from the previous response"
// @Param   loadNext query bool false "Load one more page"
// @Success 200 {object} dto.ListUsersResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *userHandler) listUsers(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.userService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateUser godoc
// @Summary Update a user
// @Description Moving a user to another department moves their spending with them.
// @Tags users
// @Accept  json
// @Produce  json
// @Param   userID path string true "User ID"
// @Param   request body dto.UpdateUserRequest true "User details"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [put]
func (h *userHandler) updateUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to update user", slog.String("user_id", userID))
	user, err := h.userService.UpdateUser(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user, h.departmentName(c.Request.Context(), user.DepartmentID)))
}

// deleteUser godoc
// @Summary Delete a user and all of their expenses
// @Tags users
// @Param   userID path string true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID} [delete]
func (h *userHandler) deleteUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID := c.Param("userID")

	logger.Info("Received request to delete user", slog.String("user_id", userID))
	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}

// listUserExpenses godoc
// @Summary List the expenses of a user
// @Tags users
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {array} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{userID}/expenses [get]
func (h *userHandler) listUserExpenses(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := h.userService.GetUserByID(ctx, c.Param("userID"))
	if err != nil {
		respondError(c, err, "list user expenses")
		return
	}
	expenses, err := h.userService.ListUserExpenses(ctx, user.UserID)
	if err != nil {
		respondError(c, err, "list user expenses")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponses(expenses, func(string) string { return user.FullName() }))
}
