package handler

import (
	"net/http"

	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
)

type FinanceHandler struct{ svc service.FinanceService }

func NewFinanceHandler(svc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// AddExpense godoc
// @Summary      Record an expense
// @Tags         finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AddExpenseRequest true "Expense detail"
// @Success      201  {object} map[string]string
// @Failure      400  {object} apierror.APIError
// @Router       /v1/finance/expenses [post]
func (h *FinanceHandler) AddExpense(c *gin.Context) {
	var req dto.AddExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddExpense(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

// AddInjection godoc
// @Summary      Record a capital injection
// @Tags         finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AddInjectionRequest true "Injection detail"
// @Success      201  {object} map[string]string
// @Failure      400  {object} apierror.APIError
// @Router       /v1/finance/injections [post]
func (h *FinanceHandler) AddInjection(c *gin.Context) {
	var req dto.AddInjectionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.AddInjection(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}
