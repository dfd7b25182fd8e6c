package lead

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/leadrouter/internal/application/assignment"
	"github.com/orris-inc/leadrouter/internal/infrastructure/metrics"
	"github.com/orris-inc/leadrouter/internal/interfaces/dto"
	"github.com/orris-inc/leadrouter/internal/shared/errors"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
	"github.com/orris-inc/leadrouter/internal/shared/utils"
)

// Engine is the subset of the assignment engine the transport boundary
// needs: ingest-and-assign, and manual reassignment.
type Engine interface {
	Assign(ctx context.Context, cmd assignment.AssignCommand) (*assignment.Outcome, error)
	Reassign(ctx context.Context, cmd assignment.ReassignCommand) (*assignment.Outcome, error)
}

type Handler struct {
	engine Engine
	logger logger.Interface
}

func NewHandler(engine Engine, log logger.Interface) *Handler {
	return &Handler{engine: engine, logger: log}
}

// CreateLead handles POST /v1/leads — the ingestion webhook. Idempotent
// retries under the same (phone, source_timestamp) natural key re-serve
// the original outcome rather than creating a second lead.
func (h *Handler) CreateLead(c *gin.Context) {
	var req dto.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	start := time.Now()
	outcome, err := h.engine.Assign(c.Request.Context(), req.ToCommand())
	if err != nil {
		if errors.IsTransientConflictError(err) {
			h.logger.Warnw("transient conflict assigning lead, client should retry", "phone", req.Phone)
		}
		utils.ErrorResponseWithError(c, err)
		return
	}
	metrics.ObserveAssignment(string(outcome.Reason), string(outcome.Status), time.Since(start).Seconds())

	utils.CreatedResponse(c, dto.FromOutcome(outcome), "lead assigned")
}

// ReassignLead handles POST /v1/leads/:id/reassign.
func (h *Handler) ReassignLead(c *gin.Context) {
	leadID, err := parseLeadID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.ReassignLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	outcome, err := h.engine.Reassign(c.Request.Context(), req.ToCommand(leadID))
	if err != nil {
		metrics.ObserveReassignment("error")
		utils.ErrorResponseWithError(c, err)
		return
	}
	metrics.ObserveReassignment(string(outcome.Status))

	utils.SuccessResponse(c, http.StatusOK, "lead reassigned", dto.FromOutcome(outcome))
}

func parseLeadID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid lead id")
	}
	return uint(id), nil
}
