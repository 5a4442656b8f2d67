package livesession

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetside/internal/application/livesession/dto"
	"streetside/internal/application/testutil"
	domainSession "streetside/internal/domain/livesession"
	domainVendor "streetside/internal/domain/vendor"
)

type sessionFixture struct {
	service     *Service
	vendorRepo  *testutil.MockVendorRepository
	sessionRepo *testutil.MockSessionRepository
	txManager   *testutil.MockTransactionManager
	geocoder    *testutil.MockGeocoder
}

func newSessionFixture(t *testing.T, requireApproval bool) *sessionFixture {
	t.Helper()
	vendorRepo := testutil.NewMockVendorRepository()
	sessionRepo := testutil.NewMockSessionRepository()
	txManager := testutil.NewMockTransactionManager()
	geocoder := testutil.NewMockGeocoder("123 Market St", nil)

	service := NewService(
		vendorRepo,
		sessionRepo,
		txManager,
		geocoder,
		requireApproval,
		testutil.NewNopLogger(),
	)
	return &sessionFixture{
		service:     service,
		vendorRepo:  vendorRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		geocoder:    geocoder,
	}
}

func seedVendor(t *testing.T, repo *testutil.MockVendorRepository, id uint, sid string, status domainVendor.Status) *domainVendor.Vendor {
	t.Helper()
	name, err := domainVendor.NewDisplayName("Arepa Cart")
	require.NoError(t, err)

	var reason *string
	if status.IsRejected() {
		r := "seeded rejection"
		reason = &r
	}

	now := time.Now().UTC()
	v, err := domainVendor.ReconstructVendor(id, sid, name, status, reason, now, now, 1)
	require.NoError(t, err)
	repo.AddVendor(v)
	return v
}

func seedActiveSession(t *testing.T, repo *testutil.MockSessionRepository, id, vendorID uint, autoEnd *time.Time) *domainSession.LiveSession {
	t.Helper()
	start := time.Now().UTC().Add(-time.Hour)
	s, err := domainSession.ReconstructLiveSession(
		id, fmt.Sprintf("ls_seed%d", id), vendorID, 40.7, -74.0, nil,
		start, nil, autoEnd, true, nil, start,
	)
	require.NoError(t, err)
	repo.AddSession(s)
	return s
}

func startRequest() dto.StartSessionRequest {
	return dto.StartSessionRequest{Latitude: 40.7128, Longitude: -74.0060}
}

func TestSessionServiceStart(t *testing.T) {
	t.Run("approved vendor goes live", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

		resp, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.NoError(t, err)

		assert.True(t, resp.IsActive)
		assert.Equal(t, "vnd_abc", resp.VendorID)
		require.NotNil(t, resp.Address)
		assert.Equal(t, "123 Market St", *resp.Address)
		assert.Nil(t, resp.AutoEndTime)
		assert.Nil(t, resp.Countdown)
	})

	t.Run("duration sets the deadline and countdown", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

		minutes := 45
		req := startRequest()
		req.DurationMinutes = &minutes

		resp, err := f.service.Start(context.Background(), "vnd_abc", req, StartOptions{})
		require.NoError(t, err)
		require.NotNil(t, resp.AutoEndTime)
		require.NotNil(t, resp.RemainingSeconds)
		assert.InDelta(t, 45*60, *resp.RemainingSeconds, 2)
		require.NotNil(t, resp.Countdown)
	})

	t.Run("pending vendor is refused", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusPending)

		_, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.Error(t, err)
		assert.True(t, domainSession.IsNotApproved(err))
	})

	t.Run("approval check disabled by policy", func(t *testing.T) {
		f := newSessionFixture(t, false)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusPending)

		resp, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("approval check bypassed for admins", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusPending)

		resp, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{SkipApprovalCheck: true})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("second start conflicts", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		seedActiveSession(t, f.sessionRepo, 1, v.ID(), nil)

		_, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.Error(t, err)
		assert.True(t, domainSession.IsAlreadyActive(err))
	})

	t.Run("losing the insert race maps to the same conflict", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		seedActiveSession(t, f.sessionRepo, 1, v.ID(), nil)
		f.sessionRepo.ActiveLookupMiss = true

		_, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.Error(t, err)
		assert.True(t, domainSession.IsAlreadyActive(err))
	})

	t.Run("expired session is swept before the new start", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		autoEnd := time.Now().UTC().Add(-time.Minute)
		stale := seedActiveSession(t, f.sessionRepo, 1, v.ID(), &autoEnd)

		resp, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)

		assert.False(t, stale.IsActive())
		require.NotNil(t, stale.EndedBy())
		assert.Equal(t, domainSession.EndedBySystem, *stale.EndedBy())
	})

	t.Run("geocoder failure degrades to no address", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		f.geocoder.Err = context.DeadlineExceeded

		resp, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.NoError(t, err)
		assert.Nil(t, resp.Address)
		assert.True(t, resp.IsActive)
	})

	t.Run("nil geocoder is tolerated", func(t *testing.T) {
		f := newSessionFixture(t, true)
		f.service.geocoder = nil
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

		resp, err := f.service.Start(context.Background(), "vnd_abc", startRequest(), StartOptions{})
		require.NoError(t, err)
		assert.Nil(t, resp.Address)
	})

	t.Run("duration outside bounds is rejected", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

		minutes := 100000
		req := startRequest()
		req.DurationMinutes = &minutes

		_, err := f.service.Start(context.Background(), "vnd_abc", req, StartOptions{})
		require.Error(t, err)
	})

	t.Run("unknown vendor", func(t *testing.T) {
		f := newSessionFixture(t, true)

		_, err := f.service.Start(context.Background(), "vnd_missing", startRequest(), StartOptions{})
		require.Error(t, err)
		assert.True(t, domainVendor.IsNotFound(err))
	})
}

func TestSessionServiceStop(t *testing.T) {
	t.Run("closes the active session", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		session := seedActiveSession(t, f.sessionRepo, 1, v.ID(), nil)

		resp, err := f.service.Stop(context.Background(), "vnd_abc", domainSession.EndedByVendor)
		require.NoError(t, err)

		assert.False(t, resp.IsActive)
		require.NotNil(t, resp.EndedBy)
		assert.Equal(t, "vendor", *resp.EndedBy)
		assert.False(t, session.IsActive())
	})

	t.Run("no active session", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

		_, err := f.service.Stop(context.Background(), "vnd_abc", domainSession.EndedByVendor)
		require.Error(t, err)
		assert.True(t, domainSession.IsNoActiveSession(err))
	})

	t.Run("second stop reports no active session", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		seedActiveSession(t, f.sessionRepo, 1, v.ID(), nil)

		_, err := f.service.Stop(context.Background(), "vnd_abc", domainSession.EndedByVendor)
		require.NoError(t, err)

		_, err = f.service.Stop(context.Background(), "vnd_abc", domainSession.EndedByVendor)
		require.Error(t, err)
		assert.True(t, domainSession.IsNoActiveSession(err))
	})

	t.Run("expired session counts as already gone", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		autoEnd := time.Now().UTC().Add(-time.Minute)
		stale := seedActiveSession(t, f.sessionRepo, 1, v.ID(), &autoEnd)

		_, err := f.service.Stop(context.Background(), "vnd_abc", domainSession.EndedByVendor)
		require.Error(t, err)
		assert.True(t, domainSession.IsNoActiveSession(err))

		assert.False(t, stale.IsActive())
		require.NotNil(t, stale.EndedBy())
		assert.Equal(t, domainSession.EndedBySystem, *stale.EndedBy())
	})
}

func TestSessionServiceCurrentSession(t *testing.T) {
	t.Run("returns the active session with countdown", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		autoEnd := time.Now().UTC().Add(10 * time.Minute)
		seedActiveSession(t, f.sessionRepo, 1, v.ID(), &autoEnd)

		resp, err := f.service.CurrentSession(context.Background(), "vnd_abc")
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		require.NotNil(t, resp.RemainingSeconds)
		assert.InDelta(t, 10*60, *resp.RemainingSeconds, 2)
	})

	t.Run("expired session is closed on read", func(t *testing.T) {
		f := newSessionFixture(t, true)
		v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)
		autoEnd := time.Now().UTC().Add(-time.Second)
		seedActiveSession(t, f.sessionRepo, 1, v.ID(), &autoEnd)

		_, err := f.service.CurrentSession(context.Background(), "vnd_abc")
		require.Error(t, err)
		assert.True(t, domainSession.IsNoActiveSession(err))
	})

	t.Run("no session at all", func(t *testing.T) {
		f := newSessionFixture(t, true)
		seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

		_, err := f.service.CurrentSession(context.Background(), "vnd_abc")
		require.Error(t, err)
		assert.True(t, domainSession.IsNoActiveSession(err))
	})
}

func TestSessionServiceListActive(t *testing.T) {
	f := newSessionFixture(t, true)
	v1 := seedVendor(t, f.vendorRepo, 1, "vnd_a", domainVendor.StatusApproved)
	v2 := seedVendor(t, f.vendorRepo, 2, "vnd_b", domainVendor.StatusApproved)
	v3 := seedVendor(t, f.vendorRepo, 3, "vnd_c", domainVendor.StatusApproved)

	future := time.Now().UTC().Add(time.Hour)
	past := time.Now().UTC().Add(-time.Minute)
	seedActiveSession(t, f.sessionRepo, 1, v1.ID(), &future)
	seedActiveSession(t, f.sessionRepo, 2, v2.ID(), nil)
	stale := seedActiveSession(t, f.sessionRepo, 3, v3.ID(), &past)

	resp, err := f.service.ListActive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	sids := make([]string, 0, len(resp.Sessions))
	for _, s := range resp.Sessions {
		sids = append(sids, s.VendorID)
	}
	assert.ElementsMatch(t, []string{"vnd_a", "vnd_b"}, sids)

	assert.False(t, stale.IsActive())
	require.NotNil(t, stale.EndedBy())
	assert.Equal(t, domainSession.EndedBySystem, *stale.EndedBy())
}

func TestSessionServiceHistory(t *testing.T) {
	f := newSessionFixture(t, true)
	v := seedVendor(t, f.vendorRepo, 1, "vnd_abc", domainVendor.StatusApproved)

	start := time.Now().UTC().Add(-3 * time.Hour)
	for i := uint(1); i <= 3; i++ {
		end := start.Add(time.Duration(i) * time.Hour)
		endedBy := domainSession.EndedByVendor
		s, err := domainSession.ReconstructLiveSession(
			i, fmt.Sprintf("ls_hist%d", i), v.ID(), 40.7, -74.0, nil,
			start, &end, nil, false, &endedBy, start,
		)
		require.NoError(t, err)
		f.sessionRepo.AddSession(s)
	}

	resp, err := f.service.History(context.Background(), "vnd_abc", dto.SessionHistoryRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Sessions, 2)
	for _, s := range resp.Sessions {
		assert.False(t, s.IsActive)
	}
}
