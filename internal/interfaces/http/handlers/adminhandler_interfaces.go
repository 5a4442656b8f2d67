package handlers

import (
	"context"

	sessiondto "streetside/internal/application/livesession/dto"
	vendordto "streetside/internal/application/vendorstatus/dto"
)

// AdminService is the slice of the admin override service the handler
// depends on.
type AdminService interface {
	ApproveWithAudit(ctx context.Context, actorSID, vendorSID string) (*vendordto.VendorResponse, error)
	RejectWithAudit(ctx context.Context, actorSID, vendorSID, reason string) (*vendordto.VendorResponse, error)
	ForceStart(ctx context.Context, actorSID, vendorSID string, req sessiondto.StartSessionRequest) (*sessiondto.SessionResponse, error)
	ForceStop(ctx context.Context, actorSID, vendorSID string) (*sessiondto.SessionResponse, error)
}

// VendorLister serves the admin vendor listing.
type VendorLister interface {
	List(ctx context.Context, req vendordto.ListVendorsRequest) (*vendordto.ListVendorsResponse, error)
}
