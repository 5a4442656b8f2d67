package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessiondto "streetside/internal/application/livesession/dto"
	vendordto "streetside/internal/application/vendorstatus/dto"
	"streetside/internal/shared/authorization"
	"streetside/internal/shared/logger"
	"streetside/internal/shared/utils"
)

// AdminHandler serves the admin dashboard: vendor decisions, the vendor
// listing, and session overrides. Role enforcement happens at the route
// group.
type AdminHandler struct {
	adminService AdminService
	vendorLister VendorLister
	logger       logger.Interface
}

func NewAdminHandler(adminService AdminService, vendorLister VendorLister, logger logger.Interface) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		vendorLister: vendorLister,
		logger:       logger,
	}
}

// ListVendors returns a paginated, filterable vendor listing.
func (h *AdminHandler) ListVendors(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	req := vendordto.ListVendorsRequest{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		Status:   c.Query("status"),
		Name:     c.Query("name"),
	}

	result, err := h.vendorLister.List(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Vendors, result.Total, result.Page, result.PageSize)
}

// Approve transitions a vendor to approved.
func (h *AdminHandler) Approve(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	vendorSID, err := utils.ParseVendorSIDParam(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.adminService.ApproveWithAudit(c.Request.Context(), actor.SID, vendorSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vendor approved", result)
}

// Reject transitions a vendor to rejected with a required reason.
func (h *AdminHandler) Reject(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	vendorSID, err := utils.ParseVendorSIDParam(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req vendordto.RejectVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for vendor rejection", "vendor_id", vendorSID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.adminService.RejectWithAudit(c.Request.Context(), actor.SID, vendorSID, req.Reason)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vendor rejected", result)
}

// ForceStart opens a session for a vendor regardless of approval status.
func (h *AdminHandler) ForceStart(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	vendorSID, err := utils.ParseVendorSIDParam(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req sessiondto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for force start", "vendor_id", vendorSID, "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.adminService.ForceStart(c.Request.Context(), actor.SID, vendorSID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Live session started")
}

// ForceStop closes a vendor's active session on their behalf.
func (h *AdminHandler) ForceStop(c *gin.Context) {
	actor, ok := authorization.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated actor")
		return
	}

	vendorSID, err := utils.ParseVendorSIDParam(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.adminService.ForceStop(c.Request.Context(), actor.SID, vendorSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Live session stopped", result)
}
