package handler

import (
	"net/http"

	"github.com/Fineboy94449/smoke/internal/apierror"
	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
)

type DebtorsHandler struct{ svc service.DebtorService }

func NewDebtorsHandler(svc service.DebtorService) *DebtorsHandler {
	return &DebtorsHandler{svc: svc}
}

// List godoc
// @Summary      List debtors
// @Description  Returns all debtors ordered by balance, plus the total owed.
// @Tags         debtors
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DebtorListResponse
// @Router       /v1/debtors [get]
func (h *DebtorsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load debtors"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecordPayment godoc
// @Summary      Record a repayment
// @Description  Pays down a debtor's balance. Paying to exactly zero removes the debtor; registered accounts earn a loyalty bonus.
// @Tags         debtors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordPaymentRequest true "Payment detail"
// @Success      200  {object} dto.PaymentResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/debtors/payments [post]
func (h *DebtorsHandler) RecordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordPayment(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RequestStatement godoc
// @Summary      Request an account statement
// @Description  Queues async PDF statement generation for a debtor; emails it when an address is given.
// @Tags         debtors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name path string                true "Debtor name"
// @Param        body body dto.StatementRequest  true "Optional email address"
// @Success      202  {object} map[string]string
// @Failure      404  {object} apierror.APIError
// @Router       /v1/debtors/{name}/statement [post]
func (h *DebtorsHandler) RequestStatement(c *gin.Context) {
	name := c.Param("name")
	var req dto.StatementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RequestStatement(c.Request.Context(), name, req.Email); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
