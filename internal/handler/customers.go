package handler

import (
	"net/http"

	"github.com/Fineboy94449/smoke/internal/apierror"
	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/middleware"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

// Register godoc
// @Summary      Self-register a customer account
// @Description  Creates an unapproved account; an operator must approve it before login.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body body dto.RegisterCustomerRequest true "Account detail"
// @Success      201  {object} dto.CustomerResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/customers/register [post]
func (h *CustomersHandler) Register(c *gin.Context) {
	var req dto.RegisterCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List customer accounts
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        approved query bool false "Only approved accounts"
// @Success      200  {array} dto.CustomerResponse
// @Router       /v1/customers [get]
func (h *CustomersHandler) List(c *gin.Context) {
	approvedOnly := c.Query("approved") == "true"
	resp, err := h.svc.List(c.Request.Context(), approvedOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load customers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail godoc
// @Summary      Customer detail
// @Description  Full account view including recent point history.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        phone path string true "Customer phone"
// @Success      200  {object} dto.CustomerDetailResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/customers/{phone} [get]
func (h *CustomersHandler) Detail(c *gin.Context) {
	resp, err := h.svc.Detail(c.Request.Context(), c.Param("phone"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary      Own account view
// @Description  Returns the authenticated customer's account and point history.
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.CustomerDetailResponse
// @Router       /v1/me [get]
func (h *CustomersHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Detail(c.Request.Context(), claims.Subject)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Approve godoc
// @Summary      Approve a pending account
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        phone path string true "Customer phone"
// @Success      200  {object} dto.CustomerResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/customers/{phone}/approve [post]
func (h *CustomersHandler) Approve(c *gin.Context) {
	resp, err := h.svc.Approve(c.Request.Context(), c.Param("phone"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCreditSettings godoc
// @Summary      Update credit settings
// @Description  Enables or disables credit and optionally pins a manual limit via tier override.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        phone path string                    true "Customer phone"
// @Param        body  body dto.CreditSettingsRequest true "Credit settings"
// @Success      200  {object} dto.CustomerResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/customers/{phone}/credit [put]
func (h *CustomersHandler) UpdateCreditSettings(c *gin.Context) {
	var req dto.CreditSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateCreditSettings(c.Request.Context(), c.Param("phone"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
