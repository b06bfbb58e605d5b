package handler

import (
	"net/http"

	"github.com/Fineboy94449/smoke/internal/apierror"
	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// RecordSale godoc
// @Summary      Record a sale
// @Description  Prices a loose or pack sale, allocates revenue to stock bundles and, for credit, updates the debtor ledger and loyalty points.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordSaleRequest true "Sale detail"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordSale(c.Request.Context(), req, nil)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ReverseSale godoc
// @Summary      Reverse a sale
// @Description  Deletes a transaction and unwinds any credit from the debtor balance. Loyalty points already awarded stay awarded.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sale UUID"
// @Success      204
// @Failure      404  {object} apierror.APIError
// @Router       /v1/sales/{id} [delete]
func (h *SalesHandler) ReverseSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	if err := h.svc.ReverseSale(c.Request.Context(), id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// History godoc
// @Summary      Sales history
// @Description  Returns the most recent sales, newest first.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.SaleHistoryItem
// @Router       /v1/sales/history [get]
func (h *SalesHandler) History(c *gin.Context) {
	items, err := h.svc.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load sales history"))
		return
	}
	c.JSON(http.StatusOK, items)
}

// Recent godoc
// @Summary      Recent transactions
// @Description  Dashboard feed of the latest transactions with humanized timestamps.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.RecentTransaction
// @Router       /v1/sales/recent [get]
func (h *SalesHandler) Recent(c *gin.Context) {
	items, err := h.svc.Recent(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load recent transactions"))
		return
	}
	c.JSON(http.StatusOK, items)
}
