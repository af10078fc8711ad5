package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studydash/internal/dto"
	"github.com/noah-isme/studydash/internal/middleware"
	"github.com/noah-isme/studydash/pkg/response"
)

type dashboardService interface {
	Summary(ctx context.Context, programID int64) (*dto.DashboardResponse, error)
}

// DashboardHandler serves the KPI dashboard.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Summary godoc
// @Summary KPIs and chart series of a program
// @Tags Dashboard
// @Produce json
// @Param programId path int true "Program ID"
// @Success 200 {object} response.Envelope{data=dto.DashboardResponse}
// @Failure 404 {object} response.Envelope
// @Router /api/v1/programs/{programId}/dashboard [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	programID, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), programID)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetMeta(c, "generated_on", summary.GeneratedOn.String())
	response.JSON(c, http.StatusOK, summary, middleware.ExtractMeta(c))
}
