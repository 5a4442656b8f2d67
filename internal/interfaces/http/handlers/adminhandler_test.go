package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessiondto "streetside/internal/application/livesession/dto"
	vendordto "streetside/internal/application/vendorstatus/dto"
	domainVendor "streetside/internal/domain/vendor"
	"streetside/internal/interfaces/http/handlers/testutil"
	"streetside/internal/shared/authorization"
)

type mockAdminService struct {
	approveResp    *vendordto.VendorResponse
	approveErr     error
	rejectResp     *vendordto.VendorResponse
	rejectErr      error
	forceStartResp *sessiondto.SessionResponse
	forceStartErr  error
	forceStopResp  *sessiondto.SessionResponse
	forceStopErr   error

	lastActorSID  string
	lastVendorSID string
	lastReason    string
}

func (m *mockAdminService) ApproveWithAudit(ctx context.Context, actorSID, vendorSID string) (*vendordto.VendorResponse, error) {
	m.lastActorSID = actorSID
	m.lastVendorSID = vendorSID
	return m.approveResp, m.approveErr
}

func (m *mockAdminService) RejectWithAudit(ctx context.Context, actorSID, vendorSID, reason string) (*vendordto.VendorResponse, error) {
	m.lastActorSID = actorSID
	m.lastVendorSID = vendorSID
	m.lastReason = reason
	return m.rejectResp, m.rejectErr
}

func (m *mockAdminService) ForceStart(ctx context.Context, actorSID, vendorSID string, req sessiondto.StartSessionRequest) (*sessiondto.SessionResponse, error) {
	m.lastActorSID = actorSID
	m.lastVendorSID = vendorSID
	return m.forceStartResp, m.forceStartErr
}

func (m *mockAdminService) ForceStop(ctx context.Context, actorSID, vendorSID string) (*sessiondto.SessionResponse, error) {
	m.lastActorSID = actorSID
	m.lastVendorSID = vendorSID
	return m.forceStopResp, m.forceStopErr
}

type mockVendorLister struct {
	listResp *vendordto.ListVendorsResponse
	listErr  error
	lastReq  vendordto.ListVendorsRequest
}

func (m *mockVendorLister) List(ctx context.Context, req vendordto.ListVendorsRequest) (*vendordto.ListVendorsResponse, error) {
	m.lastReq = req
	return m.listResp, m.listErr
}

func vendorResponse(status string) *vendordto.VendorResponse {
	return &vendordto.VendorResponse{
		ID:          "vnd_abc123",
		DisplayName: "Taco Cart",
		Status:      status,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestAdminHandlerListVendors(t *testing.T) {
	lister := &mockVendorLister{
		listResp: &vendordto.ListVendorsResponse{
			Vendors:  []*vendordto.VendorResponse{vendorResponse("pending")},
			Total:    1,
			Page:     1,
			PageSize: 20,
		},
	}
	handler := NewAdminHandler(&mockAdminService{}, lister, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/admin/vendors", nil)
	testutil.SetActorContext(c, "adm_root", authorization.RoleAdmin)
	testutil.SetQueryParams(c, map[string]string{"status": "pending"})

	handler.ListVendors(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pending", lister.lastReq.Status)
	assert.Equal(t, 1, lister.lastReq.Page)
	assert.Equal(t, 20, lister.lastReq.PageSize)
}

func TestAdminHandlerApprove(t *testing.T) {
	svc := &mockAdminService{approveResp: vendorResponse("approved")}
	handler := NewAdminHandler(svc, &mockVendorLister{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/vendors/vnd_abc123/approve", nil)
	testutil.SetActorContext(c, "adm_root", authorization.RoleAdmin)
	testutil.SetURLParam(c, "sid", "vnd_abc123")

	handler.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "adm_root", svc.lastActorSID)
	assert.Equal(t, "vnd_abc123", svc.lastVendorSID)
}

func TestAdminHandlerApproveMapsInvalidTransition(t *testing.T) {
	svc := &mockAdminService{
		approveErr: domainVendor.NewInvalidTransitionError(domainVendor.StatusSuspended, domainVendor.StatusApproved),
	}
	handler := NewAdminHandler(svc, &mockVendorLister{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/vendors/vnd_abc123/approve", nil)
	testutil.SetActorContext(c, "adm_root", authorization.RoleAdmin)
	testutil.SetURLParam(c, "sid", "vnd_abc123")

	handler.Approve(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminHandlerReject(t *testing.T) {
	rejected := vendorResponse("rejected")
	reason := "incomplete permits"
	rejected.RejectionReason = &reason
	svc := &mockAdminService{rejectResp: rejected}
	handler := NewAdminHandler(svc, &mockVendorLister{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/vendors/vnd_abc123/reject", vendordto.RejectVendorRequest{
		Reason: "incomplete permits",
	})
	testutil.SetActorContext(c, "adm_root", authorization.RoleAdmin)
	testutil.SetURLParam(c, "sid", "vnd_abc123")

	handler.Reject(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "incomplete permits", svc.lastReason)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var vendor vendordto.VendorResponse
	require.NoError(t, json.Unmarshal(resp.Data, &vendor))
	assert.Equal(t, "rejected", vendor.Status)
	require.NotNil(t, vendor.RejectionReason)
	assert.Equal(t, "incomplete permits", *vendor.RejectionReason)
}

func TestAdminHandlerRejectRequiresReason(t *testing.T) {
	svc := &mockAdminService{}
	handler := NewAdminHandler(svc, &mockVendorLister{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/vendors/vnd_abc123/reject", vendordto.RejectVendorRequest{})
	testutil.SetActorContext(c, "adm_root", authorization.RoleAdmin)
	testutil.SetURLParam(c, "sid", "vnd_abc123")

	handler.Reject(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastVendorSID)
}

func TestAdminHandlerForceStart(t *testing.T) {
	svc := &mockAdminService{
		forceStartResp: &sessiondto.SessionResponse{
			ID:       "ls_forced1",
			VendorID: "vnd_abc123",
			IsActive: true,
		},
	}
	handler := NewAdminHandler(svc, &mockVendorLister{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/admin/vendors/vnd_abc123/sessions", sessiondto.StartSessionRequest{
		Latitude:  37.7749,
		Longitude: -122.4194,
	})
	testutil.SetActorContext(c, "adm_root", authorization.RoleAdmin)
	testutil.SetURLParam(c, "sid", "vnd_abc123")

	handler.ForceStart(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "adm_root", svc.lastActorSID)
	assert.Equal(t, "vnd_abc123", svc.lastVendorSID)
}

func TestAdminHandlerForceStop(t *testing.T) {
	endedBy := "admin"
	svc := &mockAdminService{
		forceStopResp: &sessiondto.SessionResponse{
			ID:       "ls_forced1",
			VendorID: "vnd_abc123",
			IsActive: false,
			EndedBy:  &endedBy,
		},
	}
	handler := NewAdminHandler(svc, &mockVendorLister{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/v1/admin/vendors/vnd_abc123/sessions/current", nil)
	testutil.SetActorContext(c, "adm_root", authorization.RoleAdmin)
	testutil.SetURLParam(c, "sid", "vnd_abc123")

	handler.ForceStop(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var session sessiondto.SessionResponse
	require.NoError(t, json.Unmarshal(resp.Data, &session))
	assert.False(t, session.IsActive)
	require.NotNil(t, session.EndedBy)
	assert.Equal(t, "admin", *session.EndedBy)
}
