package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kpi_tracker/backend/internal/models"
)

// @Summary Scoring configuration
// @Tags config
// @Produce json
// @Success 200 {object} models.ScoringConfig
// @Router /api/config [get]
func (h *Handler) ScoringConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.KPI.ScoringConfig())
}

// @Summary Replace scoring configuration
// @Description Keys missing from the body keep their current value. Stored KPIs are not recomputed.
// @Tags config
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Admin key"
// @Param body body models.ScoringConfig true "Scoring configuration"
// @Success 200 {object} models.ScoringConfig
// @Failure 400 {object} map[string]any
// @Router /api/config [put]
func (h *Handler) UpdateScoringConfig(c *gin.Context) {
	req := h.KPI.ScoringConfig()
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	sc, err := h.KPI.UpdateConfig(req)
	if err != nil {
		h.fail(c, err, "Invalid scoring config")
		return
	}
	c.JSON(http.StatusOK, sc)
}

// @Summary Stored monthly KPI
// @Tags kpi
// @Produce json
// @Param id path string true "Developer ID"
// @Param month query int true "Month"
// @Param year query int true "Year"
// @Success 200 {object} models.MonthlyKPI
// @Failure 404 {object} map[string]any
// @Router /api/developers/{id}/kpi [get]
func (h *Handler) DeveloperKPI(c *gin.Context) {
	p, ok := h.bindPeriodQuery(c, true)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	k, err := h.KPI.Get(ctx, c.Param("id"), p)
	if err != nil {
		h.fail(c, err, "KPI not found")
		return
	}
	c.JSON(http.StatusOK, k)
}

// @Summary Current month preview
// @Description Computes the running month without storing it
// @Tags kpi
// @Produce json
// @Param id path string true "Developer ID"
// @Success 200 {object} models.MonthlyKPI
// @Router /api/developers/{id}/kpi/current [get]
func (h *Handler) DeveloperKPIPreview(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	k, err := h.KPI.Preview(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Developer not found")
		return
	}
	c.JSON(http.StatusOK, k)
}

// @Summary KPI history
// @Tags kpi
// @Produce json
// @Param id path string true "Developer ID"
// @Success 200 {object} map[string]any
// @Router /api/developers/{id}/kpi/history [get]
func (h *Handler) DeveloperKPIHistory(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, err := h.KPI.History(ctx, c.Param("id"))
	if err != nil {
		h.fail(c, err, "Developer not found")
		return
	}
	if items == nil {
		items = []models.MonthlyKPI{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// @Summary Generate monthly KPI
// @Tags kpi
// @Accept json
// @Produce json
// @Param id path string true "Developer ID"
// @Param body body PeriodRequest true "Period"
// @Success 200 {object} models.MonthlyKPI
// @Router /api/developers/{id}/kpi [post]
func (h *Handler) GenerateDeveloperKPI(c *gin.Context) {
	p, ok := h.bindPeriodBody(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	k, err := h.KPI.Generate(ctx, c.Param("id"), p)
	if err != nil {
		h.fail(c, err, "Developer not found")
		return
	}
	c.JSON(http.StatusOK, k)
}

// @Summary Generate KPIs for all active developers
// @Tags kpi
// @Accept json
// @Produce json
// @Param body body PeriodRequest true "Period"
// @Success 200 {object} map[string]any
// @Router /api/kpi/generate [post]
func (h *Handler) GenerateAllKPIs(c *gin.Context) {
	p, ok := h.bindPeriodBody(c)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	items, err := h.KPI.GenerateAll(ctx, p)
	if err != nil {
		h.fail(c, err, "Failed to generate KPIs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "generated": len(items)})
}

// @Summary Team KPI
// @Tags kpi
// @Produce json
// @Param month query int false "Month"
// @Param year query int false "Year"
// @Success 200 {object} models.MonthlyKPI
// @Router /api/kpi/team [get]
func (h *Handler) TeamKPI(c *gin.Context) {
	p, ok := h.bindPeriodQuery(c, false)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	k, err := h.KPI.Team(ctx, p)
	if err != nil {
		h.fail(c, err, "Failed to compute team KPI")
		return
	}
	c.JSON(http.StatusOK, k)
}

// @Summary Export KPI as CSV
// @Tags kpi
// @Produce text/csv
// @Param developer_id query string false "Developer ID, team when empty"
// @Param month query int false "Month"
// @Param year query int false "Year"
// @Success 200 {string} string
// @Router /api/kpi/export [get]
func (h *Handler) ExportKPI(c *gin.Context) {
	p, ok := h.bindPeriodQuery(c, false)
	if !ok {
		return
	}
	ctx, cancel := h.requestContext(c)
	defer cancel()

	developerID := c.Query("developer_id")
	var buf bytes.Buffer
	if err := h.KPI.ExportCSV(ctx, developerID, p, &buf); err != nil {
		h.fail(c, err, "Failed to export KPI")
		return
	}

	name := developerID
	if name == "" {
		name = "team"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=kpi-%s-%s.csv", name, p))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
