package admin

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionapp "streetside/internal/application/livesession"
	sessiondto "streetside/internal/application/livesession/dto"
	"streetside/internal/application/testutil"
	vendorapp "streetside/internal/application/vendorstatus"
	domainSession "streetside/internal/domain/livesession"
	domainVendor "streetside/internal/domain/vendor"
	"streetside/internal/shared/services/sanitize"
)

// mockAuditSink records audit entries in memory.
type mockAuditSink struct {
	mu      sync.Mutex
	entries []AuditEntry

	// RecordError makes Record fail, to verify the override still succeeds.
	RecordError error
}

func (m *mockAuditSink) Record(ctx context.Context, entry AuditEntry) error {
	if m.RecordError != nil {
		return m.RecordError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAuditSink) Entries() []AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AuditEntry(nil), m.entries...)
}

type adminFixture struct {
	service     *Service
	vendorRepo  *testutil.MockVendorRepository
	sessionRepo *testutil.MockSessionRepository
	audit       *mockAuditSink
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	vendorRepo := testutil.NewMockVendorRepository()
	sessionRepo := testutil.NewMockSessionRepository()
	txManager := testutil.NewMockTransactionManager()
	log := testutil.NewNopLogger()

	vendorService := vendorapp.NewService(vendorRepo, sessionRepo, txManager, sanitize.New(), log)
	sessionService := sessionapp.NewService(vendorRepo, sessionRepo, txManager, nil, true, log)
	audit := &mockAuditSink{}

	return &adminFixture{
		service:     NewService(vendorService, sessionService, audit, log),
		vendorRepo:  vendorRepo,
		sessionRepo: sessionRepo,
		audit:       audit,
	}
}

func seedVendor(t *testing.T, repo *testutil.MockVendorRepository, id uint, sid string, status domainVendor.Status) *domainVendor.Vendor {
	t.Helper()
	name, err := domainVendor.NewDisplayName("Arepa Cart")
	require.NoError(t, err)

	now := time.Now().UTC()
	v, err := domainVendor.ReconstructVendor(id, sid, name, status, nil, now, now, 1)
	require.NoError(t, err)
	repo.AddVendor(v)
	return v
}

func TestAdminForceStart(t *testing.T) {
	t.Run("bypasses the approval check", func(t *testing.T) {
		f := newAdminFixture(t)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusPending)

		resp, err := f.service.ForceStart(context.Background(), "vnd_admin", "vnd_abc", sessiondto.StartSessionRequest{
			Latitude:  40.7,
			Longitude: -74.0,
		})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)

		entries := f.audit.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "session.force_start", entries[0].Action)
		assert.Equal(t, "vnd_admin", entries[0].ActorSID)
		assert.Equal(t, "vnd_abc", entries[0].TargetSID)
		assert.Equal(t, resp.ID, entries[0].Metadata["session_id"])
	})

	t.Run("exclusivity still holds", func(t *testing.T) {
		f := newAdminFixture(t)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

		start := time.Now().UTC().Add(-time.Hour)
		existing, err := domainSession.ReconstructLiveSession(
			1, "ls_seed1", v.ID(), 40.7, -74.0, nil,
			start, nil, nil, true, nil, start,
		)
		require.NoError(t, err)
		f.sessionRepo.AddSession(existing)

		_, err = f.service.ForceStart(context.Background(), "vnd_admin", "vnd_abc", sessiondto.StartSessionRequest{
			Latitude:  40.7,
			Longitude: -74.0,
		})
		require.Error(t, err)
		assert.True(t, domainSession.IsAlreadyActive(err))
		assert.Empty(t, f.audit.Entries())
	})
}

func TestAdminForceStop(t *testing.T) {
	f := newAdminFixture(t)
	v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

	start := time.Now().UTC().Add(-time.Hour)
	session, err := domainSession.ReconstructLiveSession(
		1, "ls_seed1", v.ID(), 40.7, -74.0, nil,
		start, nil, nil, true, nil, start,
	)
	require.NoError(t, err)
	f.sessionRepo.AddSession(session)

	resp, err := f.service.ForceStop(context.Background(), "vnd_admin", "vnd_abc")
	require.NoError(t, err)

	assert.False(t, resp.IsActive)
	require.NotNil(t, resp.EndedBy)
	assert.Equal(t, "admin", *resp.EndedBy)

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "session.force_stop", entries[0].Action)
}

func TestAdminApproveWithAudit(t *testing.T) {
	f := newAdminFixture(t)
	seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusPending)

	resp, err := f.service.ApproveWithAudit(context.Background(), "vnd_admin", "vnd_abc")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "vendor.approve", entries[0].Action)
	assert.Equal(t, "approved", entries[0].Metadata["status"])
}

func TestAdminRejectWithAudit(t *testing.T) {
	f := newAdminFixture(t)
	seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusPending)

	resp, err := f.service.RejectWithAudit(context.Background(), "vnd_admin", "vnd_abc", "spam listing")
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)

	entries := f.audit.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "vendor.reject", entries[0].Action)
	assert.Equal(t, "spam listing", entries[0].Metadata["reason"])
}

func TestAdminAuditFailureDoesNotFailOverride(t *testing.T) {
	f := newAdminFixture(t)
	f.audit.RecordError = assert.AnError
	seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusPending)

	resp, err := f.service.ApproveWithAudit(context.Background(), "vnd_admin", "vnd_abc")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}
