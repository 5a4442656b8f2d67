package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionapp "streetside/internal/application/livesession"
	"streetside/internal/application/livesession/dto"
	domainSession "streetside/internal/domain/livesession"
	"streetside/internal/shared/authorization"
	"streetside/internal/shared/logger"
	"streetside/internal/shared/utils"
)

// LiveSessionHandler serves vendor self-service session operations and the
// public discovery feed. Vendor routes resolve the target vendor from the
// authenticated actor, never from the request body.
type LiveSessionHandler struct {
	sessionService SessionService
	logger         logger.Interface
}

func NewLiveSessionHandler(sessionService SessionService, logger logger.Interface) *LiveSessionHandler {
	return &LiveSessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// Start opens a live session for the authenticated vendor.
func (h *LiveSessionHandler) Start(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for session start", "actor_id", actor.SID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.sessionService.Start(c.Request.Context(), actor.SID, req, sessionapp.StartOptions{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Live session started")
}

// Stop closes the authenticated vendor's active session.
func (h *LiveSessionHandler) Stop(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	result, err := h.sessionService.Stop(c.Request.Context(), actor.SID, domainSession.EndedByVendor)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Live session stopped", result)
}

// Current returns the authenticated vendor's active session.
func (h *LiveSessionHandler) Current(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	result, err := h.sessionService.CurrentSession(c.Request.Context(), actor.SID)
	if err != nil {
		// Not being live is a normal state for this read, not a conflict.
		if domainSession.IsNoActiveSession(err) {
			utils.SuccessResponse(c, http.StatusOK, "", nil)
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// History returns the authenticated vendor's session history.
func (h *LiveSessionHandler) History(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	pagination := utils.ParsePagination(c)
	req := dto.SessionHistoryRequest{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	result, err := h.sessionService.History(c.Request.Context(), actor.SID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Sessions, result.Total, result.Page, result.PageSize)
}

// ListActive returns the public discovery feed of currently-live vendors.
func (h *LiveSessionHandler) ListActive(c *gin.Context) {
	result, err := h.sessionService.ListActive(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
