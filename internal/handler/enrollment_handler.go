package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studydash/internal/models"
	"github.com/noah-isme/studydash/internal/service"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
	"github.com/noah-isme/studydash/pkg/response"
)

type enrollmentService interface {
	ListRecent(ctx context.Context, programID int64, limit int) ([]models.EnrollmentDetail, error)
	Get(ctx context.Context, programID, id int64) (*models.Enrollment, error)
	Create(ctx context.Context, programID int64, req service.EnrollmentRequest) (*models.Enrollment, error)
	Update(ctx context.Context, programID, id int64, req service.EnrollmentRequest) (*models.Enrollment, error)
	Delete(ctx context.Context, programID, id int64) error
}

// EnrollmentHandler serves the enrollments of a program.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs an enrollment handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary List recent enrollments
// @Tags Enrollments
// @Produce json
// @Param programId path int true "Program ID"
// @Param limit query int false "Maximum rows (default 200)"
// @Success 200 {object} response.Envelope{data=[]models.EnrollmentDetail}
// @Router /api/v1/programs/{programId}/enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	programID, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid limit"))
			return
		}
	}
	rows, err := h.service.ListRecent(c.Request.Context(), programID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, map[string]interface{}{"count": len(rows)})
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Param programId path int true "Program ID"
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope{data=models.Enrollment}
// @Failure 404 {object} response.Envelope
// @Router /api/v1/programs/{programId}/enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	programID, id, err := enrollmentPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	enrollment, err := h.service.Get(c.Request.Context(), programID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Create godoc
// @Summary Record a module attempt
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param programId path int true "Program ID"
// @Param payload body service.EnrollmentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope{data=models.Enrollment}
// @Failure 400 {object} response.Envelope
// @Router /api/v1/programs/{programId}/enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	programID, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	enrollment, err := h.service.Create(c.Request.Context(), programID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, enrollment)
}

// Update godoc
// @Summary Update enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param programId path int true "Program ID"
// @Param id path int true "Enrollment ID"
// @Param payload body service.EnrollmentRequest true "Enrollment payload"
// @Success 200 {object} response.Envelope{data=models.Enrollment}
// @Router /api/v1/programs/{programId}/enrollments/{id} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	programID, id, err := enrollmentPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.EnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	enrollment, err := h.service.Update(c.Request.Context(), programID, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Enrollments
// @Param programId path int true "Program ID"
// @Param id path int true "Enrollment ID"
// @Success 204
// @Router /api/v1/programs/{programId}/enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	programID, id, err := enrollmentPath(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), programID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func enrollmentPath(c *gin.Context) (int64, int64, error) {
	programID, err := pathID(c, "programId")
	if err != nil {
		return 0, 0, err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return programID, id, nil
}
