package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"streetside/internal/application/vendorstatus/dto"
	"streetside/internal/shared/logger"
	"streetside/internal/shared/utils"
)

// VendorHandler serves the public vendor surface: registration and the
// status view.
type VendorHandler struct {
	vendorService VendorService
	logger        logger.Interface
}

func NewVendorHandler(vendorService VendorService, logger logger.Interface) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
		logger:        logger,
	}
}

// Register creates a new vendor in pending status.
func (h *VendorHandler) Register(c *gin.Context) {
	var req dto.RegisterVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for vendor registration", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.vendorService.Register(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Vendor registered successfully")
}

// GetStatus returns the vendor's approval status and current live session.
func (h *VendorHandler) GetStatus(c *gin.Context) {
	vendorSID, err := utils.ParseVendorSIDParam(c, "sid")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.vendorService.GetStatus(c.Request.Context(), vendorSID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
