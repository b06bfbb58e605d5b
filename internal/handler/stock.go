package handler

import (
	"net/http"

	"github.com/Fineboy94449/smoke/internal/apierror"
	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// AddPurchase godoc
// @Summary      Record a bundle purchase
// @Description  Adds wholesale bundles to stock. Cost is derived from the bundle price.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AddStockRequest true "Purchase detail"
// @Success      201  {object} dto.StockEntryResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/stock [post]
func (h *StockHandler) AddPurchase(c *gin.Context) {
	var req dto.AddStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddPurchase(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteEntry godoc
// @Summary      Delete a stock entry
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Stock entry UUID"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/stock/{id} [delete]
func (h *StockHandler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.DeleteEntry(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Overview godoc
// @Summary      Stock overview
// @Description  All purchases with monthly grouping, remaining sticks and the alert level.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.StockOverviewResponse
// @Router       /v1/stock [get]
func (h *StockHandler) Overview(c *gin.Context) {
	resp, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load stock overview"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
