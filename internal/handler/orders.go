package handler

import (
	"context"
	"net/http"

	"github.com/Fineboy94449/smoke/internal/apierror"
	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/middleware"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Place godoc
// @Summary      Place an order
// @Description  Submits an order for the authenticated customer. Totals are computed server-side; credit orders are checked against the limit.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PlaceOrderRequest true "Order lines"
// @Success      201  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Place(c.Request.Context(), claims.Subject, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMine godoc
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array} dto.OrderResponse
// @Router       /v1/orders/mine [get]
func (h *OrdersHandler) ListMine(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.ListMine(c.Request.Context(), claims.Subject)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending | approved | completed | rejected"
// @Success      200  {array} dto.OrderResponse
// @Router       /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load orders"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Approve godoc
// @Summary      Approve a pending order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200  {object} dto.OrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders/{id}/approve [post]
func (h *OrdersHandler) Approve(c *gin.Context) {
	h.transition(c, h.svc.Approve)
}

// Reject godoc
// @Summary      Reject an order
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200  {object} dto.OrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders/{id}/reject [post]
func (h *OrdersHandler) Reject(c *gin.Context) {
	h.transition(c, h.svc.Reject)
}

// Complete godoc
// @Summary      Complete an approved order
// @Description  Records one sale per line item, running the full pricing and credit ledger flow, then marks the order done.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order UUID"
// @Success      200  {object} dto.OrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders/{id}/complete [post]
func (h *OrdersHandler) Complete(c *gin.Context) {
	h.transition(c, h.svc.Complete)
}

func (h *OrdersHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid ID"))
		return
	}
	resp, err := fn(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
