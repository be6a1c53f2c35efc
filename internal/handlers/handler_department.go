package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kushalbajje/expense-management/internal/core/ports/services"
	"github.com/kushalbajje/expense-management/internal/dto"
	"github.com/kushalbajje/expense-management/internal/middleware"
)

// departmentHandler handles HTTP requests related to departments.
type departmentHandler struct {
	departmentService portssvc.DepartmentSvcFacade
}

// RegisterDepartmentRoutes registers routes related to departments.
func RegisterDepartmentRoutes(rg *gin.RouterGroup, departmentService portssvc.DepartmentSvcFacade) {
	h := &departmentHandler{departmentService: departmentService}

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("", h.listDepartments)
		departments.GET("/:departmentID", h.getDepartment)
		departments.PUT("/:departmentID", h.updateDepartment)
		departments.DELETE("/:departmentID", h.deleteDepartment)
		departments.GET("/:departmentID/users", h.listDepartmentUsers)
	}
}

// createDepartment godoc
// @Summary Create a department
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} ErrorResponse "Invalid input or duplicate name"
// @Failure 409 {object} ErrorResponse "Name taken by a concurrent request"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /departments [post]
func (h *departmentHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create department", slog.String("name", req.Name))
	dept, err := h.departmentService.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create department")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(dept))
}

// getDepartment godoc
// @Summary Get a department
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /departments/{departmentID} [get]
func (h *departmentHandler) getDepartment(c *gin.Context) {
	dept, err := h.departmentService.GetDepartmentByID(c.Request.Context(), c.Param("departmentID"))
	if err != nil {
		respondError(c, err, "get department")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// listDepartments godoc
// @Summary List departments
// @Description Searches departments by name and returns the loaded pages with totals.
// @Tags departments
// @Produce  json
// @Param   search query string false "Search term"
// @Param   cursor query string false "Cursor from the previous response"
// @Param   loadNext query bool false "Load one more page"
// @Success 200 {object} dto.ListDepartmentsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.departmentService.ListDepartments(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list departments")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateDepartment godoc
// @Summary Rename a department
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   request body dto.UpdateDepartmentRequest true "New name"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /departments/{departmentID} [put]
func (h *departmentHandler) updateDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to update department", slog.String("department_id", departmentID))
	dept, err := h.departmentService.UpdateDepartment(c.Request.Context(), departmentID, req)
	if err != nil {
		respondError(c, err, "update department")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// deleteDepartment godoc
// @Summary Delete a department
// @Description A department with users needs reassignTo naming the department that receives them.
// @Tags departments
// @Param   departmentID path string true "Department ID"
// @Param   reassignTo query string false "Department receiving the users"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /departments/{departmentID} [delete]
func (h *departmentHandler) deleteDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	departmentID := c.Param("departmentID")
	var params dto.DeleteDepartmentParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to delete department",
		slog.String("department_id", departmentID),
		slog.String("reassign_to", params.ReassignTo))
	if err := h.departmentService.DeleteDepartment(c.Request.Context(), departmentID, params.ReassignTo); err != nil {
		respondError(c, err, "delete department")
		return
	}
	c.Status(http.StatusNoContent)
}

// listDepartmentUsers godoc
// @Summary List the users of a department
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {array} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /departments/{departmentID}/users [get]
func (h *departmentHandler) listDepartmentUsers(c *gin.Context) {
	ctx := c.Request.Context()
	departmentID := c.Param("departmentID")

	dept, err := h.departmentService.GetDepartmentByID(ctx, departmentID)
	if err != nil {
		respondError(c, err, "list department users")
		return
	}
	users, err := h.departmentService.ListDepartmentUsers(ctx, departmentID)
	if err != nil {
		respondError(c, err, "list department users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users, func(string) string { return dept.Name }))
}
