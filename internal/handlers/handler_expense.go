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

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
	userService    portssvc.UserReaderSvc
}

// RegisterExpenseRoutes registers routes related to expenses. The user reader
// resolves owner names for responses.
func RegisterExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade, userService portssvc.UserReaderSvc) {
	h := &expenseHandler{expenseService: expenseService, userService: userService}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.createExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

func (h *expenseHandler) userName(ctx context.Context, userID string) string {
	user, err := h.userService.GetUserByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.FullName()
}

// createExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   request body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to create expense",
		slog.String("user_id", req.UserID),
		slog.String("category", string(req.Category)))
	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "create expense")
		return
	}
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense, h.userName(c.Request.Context(), expense.UserID)))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondError(c, err, "get expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, h.userName(c.Request.Context(), expense.UserID)))
}

// listExpenses godoc
// @Summary List expenses
// @Description Searches expenses by description, category, owner name or cost and returns the loaded pages with totals.
// @Tags expenses
// @Produce  json
// @Param   search query string false "Search term"
// @Param   cursor query string false "Cursor from the previous response"
// @Param   loadNext query bool false "Load one more page"
// @Param   sort query string false "Sort order" Enums(createdAt_desc)
// @Success 200 {object} dto.ListExpensesResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list expenses")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateExpense godoc
// @Summary Update an expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   request body dto.UpdateExpenseRequest true "Expense details"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	logger.Info("Received request to update expense", slog.String("expense_id", expenseID))
	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, req)
	if err != nil {
		respondError(c, err, "update expense")
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, h.userName(c.Request.Context(), expense.UserID)))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Tags expenses
// @Param   expenseID path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	logger.Info("Received request to delete expense", slog.String("expense_id", expenseID))
	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		respondError(c, err, "delete expense")
		return
	}
	c.Status(http.StatusNoContent)
}
