package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studydash/internal/service"
	"github.com/noah-isme/studydash/pkg/response"
)

type exportService interface {
	Render(ctx context.Context, programID int64, format service.ExportFormat) (*service.ExportResult, error)
}

// ExportHandler serves downloadable dashboard reports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Download godoc
// @Summary Download the dashboard report
// @Tags Export
// @Produce text/csv
// @Produce application/pdf
// @Param programId path int true "Program ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /api/v1/programs/{programId}/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	programID, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Render(c.Request.Context(), programID, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
