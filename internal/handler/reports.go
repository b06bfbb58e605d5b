package handler

import (
	"net/http"

	"github.com/Fineboy94449/smoke/internal/apierror"
	"github.com/Fineboy94449/smoke/internal/dto"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Dashboard godoc
// @Summary      Shop dashboard
// @Description  Runs the overdue sweep, then aggregates totals, cash/credit risk, debtors, stock runway and goal progress.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DashboardResponse
// @Router       /v1/reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Periods godoc
// @Summary      Period report
// @Description  Sales buckets for today, yesterday, this week, last week, this month and last month.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.PeriodReportResponse
// @Router       /v1/reports/periods [get]
func (h *ReportsHandler) Periods(c *gin.Context) {
	resp, err := h.svc.Periods(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build period report"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DailySeries godoc
// @Summary      Daily revenue series
// @Description  Trailing 30-day revenue chart with gap days filled in as zero.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DailySeriesResponse
// @Router       /v1/reports/daily [get]
func (h *ReportsHandler) DailySeries(c *gin.Context) {
	resp, err := h.svc.DailySeries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build daily series"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MonthlyFinance godoc
// @Summary      Monthly finance summary
// @Description  This month's revenue, expenses, injections and net position.
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.MonthlyFinanceResponse
// @Router       /v1/reports/finance [get]
func (h *ReportsHandler) MonthlyFinance(c *gin.Context) {
	resp, err := h.svc.MonthlyFinance(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to build finance summary"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Goals godoc
// @Summary      Read revenue goals
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.GoalsResponse
// @Router       /v1/goals [get]
func (h *ReportsHandler) Goals(c *gin.Context) {
	resp, err := h.svc.Goals(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to load goals"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateGoals godoc
// @Summary      Update revenue goals
// @Tags         reports
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.GoalsRequest true "Daily and monthly goals"
// @Success      200  {object} dto.GoalsResponse
// @Router       /v1/goals [put]
func (h *ReportsHandler) UpdateGoals(c *gin.Context) {
	var req dto.GoalsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateGoals(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
