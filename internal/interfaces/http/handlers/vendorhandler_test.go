package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetside/internal/application/vendorstatus/dto"
	domainVendor "streetside/internal/domain/vendor"
	"streetside/internal/interfaces/http/handlers/testutil"
)

type mockVendorService struct {
	registerResp *dto.VendorResponse
	registerErr  error
	statusResp   *dto.VendorStatusResponse
	statusErr    error

	lastRegister dto.RegisterVendorRequest
	lastSID      string
}

func (m *mockVendorService) Register(ctx context.Context, req dto.RegisterVendorRequest) (*dto.VendorResponse, error) {
	m.lastRegister = req
	return m.registerResp, m.registerErr
}

func (m *mockVendorService) GetStatus(ctx context.Context, vendorSID string) (*dto.VendorStatusResponse, error) {
	m.lastSID = vendorSID
	return m.statusResp, m.statusErr
}

func TestVendorHandlerRegister(t *testing.T) {
	svc := &mockVendorService{
		registerResp: &dto.VendorResponse{
			ID:          "vnd_abc123",
			DisplayName: "Taco Cart",
			Status:      "pending",
			CreatedAt:   time.Now().UTC(),
			UpdatedAt:   time.Now().UTC(),
		},
	}
	handler := NewVendorHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/vendors", dto.RegisterVendorRequest{
		DisplayName: "Taco Cart",
	})

	handler.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Taco Cart", svc.lastRegister.DisplayName)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var vendor dto.VendorResponse
	require.NoError(t, json.Unmarshal(resp.Data, &vendor))
	assert.Equal(t, "vnd_abc123", vendor.ID)
	assert.Equal(t, "pending", vendor.Status)
}

func TestVendorHandlerRegisterRejectsShortName(t *testing.T) {
	svc := &mockVendorService{}
	handler := NewVendorHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/vendors", dto.RegisterVendorRequest{
		DisplayName: "x",
	})

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastRegister.DisplayName)
}

func TestVendorHandlerRegisterRejectsMalformedBody(t *testing.T) {
	handler := NewVendorHandler(&mockVendorService{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/vendors", "not-json")

	handler.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVendorHandlerGetStatus(t *testing.T) {
	svc := &mockVendorService{
		statusResp: &dto.VendorStatusResponse{
			ID:          "vnd_abc123",
			DisplayName: "Taco Cart",
			Status:      "approved",
		},
	}
	handler := NewVendorHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/vendors/vnd_abc123/status", nil)
	testutil.SetURLParam(c, "sid", "vnd_abc123")

	handler.GetStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "vnd_abc123", svc.lastSID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var status dto.VendorStatusResponse
	require.NoError(t, json.Unmarshal(resp.Data, &status))
	assert.Equal(t, "approved", status.Status)
	assert.Nil(t, status.Session)
}

func TestVendorHandlerGetStatusRejectsBadSID(t *testing.T) {
	svc := &mockVendorService{}
	handler := NewVendorHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/vendors/bogus/status", nil)
	testutil.SetURLParam(c, "sid", "bogus")

	handler.GetStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.lastSID)
}

func TestVendorHandlerGetStatusNotFound(t *testing.T) {
	svc := &mockVendorService{
		statusErr: domainVendor.NewNotFoundError("vnd_missing99"),
	}
	handler := NewVendorHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/vendors/vnd_missing99/status", nil)
	testutil.SetURLParam(c, "sid", "vnd_missing99")

	handler.GetStatus(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "not_found", resp.Error.Type)
}
