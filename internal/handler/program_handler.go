package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studydash/internal/models"
	"github.com/noah-isme/studydash/internal/service"
	"github.com/noah-isme/studydash/pkg/response"
)

type programService interface {
	Active(ctx context.Context, personID int64) (*models.Program, error)
	Get(ctx context.Context, id int64) (*models.Program, error)
	Update(ctx context.Context, id int64, req service.UpdateProgramRequest) (*models.Program, error)
	Delete(ctx context.Context, id int64) error
	Person(ctx context.Context, programID int64) (*models.Person, error)
	UpdatePerson(ctx context.Context, programID int64, req service.UpdatePersonRequest) (*models.Person, error)
}

// ProgramHandler serves the program edit endpoints for the bootstrap person.
type ProgramHandler struct {
	service  programService
	personID int64
}

// NewProgramHandler constructs a program handler bound to the bootstrap person.
func NewProgramHandler(svc programService, personID int64) *ProgramHandler {
	return &ProgramHandler{service: svc, personID: personID}
}

// Active godoc
// @Summary Most recent program of the bootstrap person
// @Tags Programs
// @Produce json
// @Success 200 {object} response.Envelope{data=models.Program}
// @Failure 404 {object} response.Envelope
// @Router /api/v1/programs/active [get]
func (h *ProgramHandler) Active(c *gin.Context) {
	program, err := h.service.Active(c.Request.Context(), h.personID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program)
}

// Get godoc
// @Summary Get program
// @Tags Programs
// @Produce json
// @Param programId path int true "Program ID"
// @Success 200 {object} response.Envelope{data=models.Program}
// @Failure 404 {object} response.Envelope
// @Router /api/v1/programs/{programId} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	id, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	program, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program)
}

// Update godoc
// @Summary Update program targets
// @Tags Programs
// @Accept json
// @Produce json
// @Param programId path int true "Program ID"
// @Param payload body service.UpdateProgramRequest true "Program payload"
// @Success 200 {object} response.Envelope{data=models.Program}
// @Failure 400 {object} response.Envelope
// @Router /api/v1/programs/{programId} [put]
func (h *ProgramHandler) Update(c *gin.Context) {
	id, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	program, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program)
}

// Delete godoc
// @Summary Delete program and its enrollments
// @Tags Programs
// @Param programId path int true "Program ID"
// @Success 204
// @Router /api/v1/programs/{programId} [delete]
func (h *ProgramHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Person godoc
// @Summary Get program owner
// @Tags Programs
// @Produce json
// @Param programId path int true "Program ID"
// @Success 200 {object} response.Envelope{data=models.Person}
// @Router /api/v1/programs/{programId}/person [get]
func (h *ProgramHandler) Person(c *gin.Context) {
	id, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	person, err := h.service.Person(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person)
}

// UpdatePerson godoc
// @Summary Update program owner
// @Tags Programs
// @Accept json
// @Produce json
// @Param programId path int true "Program ID"
// @Param payload body service.UpdatePersonRequest true "Person payload"
// @Success 200 {object} response.Envelope{data=models.Person}
// @Failure 409 {object} response.Envelope
// @Router /api/v1/programs/{programId}/person [put]
func (h *ProgramHandler) UpdatePerson(c *gin.Context) {
	id, err := pathID(c, "programId")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	person, err := h.service.UpdatePerson(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person)
}
