package handlers

import (
	"context"

	"streetside/internal/application/vendorstatus/dto"
)

// VendorService is the slice of the vendor application service the public
// handler depends on.
type VendorService interface {
	Register(ctx context.Context, req dto.RegisterVendorRequest) (*dto.VendorResponse, error)
	GetStatus(ctx context.Context, vendorSID string) (*dto.VendorStatusResponse, error)
}
