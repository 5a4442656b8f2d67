// Package livesession implements the live session application service:
// start/stop, lazy auto-expiry on read, the discovery feed, and session
// history.
package livesession

import (
	"context"
	"fmt"
	"time"

	"streetside/internal/application/livesession/dto"
	domainSession "streetside/internal/domain/livesession"
	domainVendor "streetside/internal/domain/vendor"
	"streetside/internal/shared/constants"
	"streetside/internal/shared/errors"
	"streetside/internal/shared/id"
	"streetside/internal/shared/logger"
)

// TransactionManager runs a function inside a database transaction.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Geocoder resolves coordinates into a human-readable address. The adapter
// bounds its own timeout; any error degrades to a session without an address.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error)
}

// Service handles the live session lifecycle for vendors.
type Service struct {
	vendorRepo      domainVendor.Repository
	sessionRepo     domainSession.Repository
	txManager       TransactionManager
	geocoder        Geocoder // optional, can be nil
	requireApproval bool
	logger          logger.Interface
}

// NewService creates a new live session application service.
// requireApproval gates Start on vendor approval; admin force-start bypasses
// it via StartOptions.
func NewService(
	vendorRepo domainVendor.Repository,
	sessionRepo domainSession.Repository,
	txManager TransactionManager,
	geocoder Geocoder,
	requireApproval bool,
	logger logger.Interface,
) *Service {
	return &Service{
		vendorRepo:      vendorRepo,
		sessionRepo:     sessionRepo,
		txManager:       txManager,
		geocoder:        geocoder,
		requireApproval: requireApproval,
		logger:          logger,
	}
}

// StartOptions tweaks Start behavior for privileged callers.
type StartOptions struct {
	// SkipApprovalCheck lets admins force-start a session for any vendor.
	// The exclusivity invariant is never skipped.
	SkipApprovalCheck bool
}

// Start opens a new live session for the vendor. The database unique
// constraint is the authority on exclusivity: the pre-check here only
// produces a friendlier error in the common case, and a duplicate-key
// failure from the insert is mapped to the same conflict.
func (s *Service) Start(ctx context.Context, vendorSID string, req dto.StartSessionRequest, opts StartOptions) (*dto.SessionResponse, error) {
	v, err := s.getVendor(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	if s.requireApproval && !opts.SkipApprovalCheck && !v.CanGoLive() {
		return nil, domainSession.NewNotApprovedError(vendorSID)
	}

	active, err := s.sessionRepo.GetActiveByVendorID(ctx, v.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}
	if active != nil {
		if !active.IsExpired(time.Now().UTC()) {
			return nil, domainSession.NewAlreadyActiveError(vendorSID)
		}
		if err := s.expireSession(ctx, active); err != nil {
			return nil, err
		}
	}

	var duration *time.Duration
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 || *req.DurationMinutes > constants.MaxSessionDurationMinutes {
			return nil, errors.NewValidationError(
				"duration out of range",
				fmt.Sprintf("duration must be between 1 and %d minutes", constants.MaxSessionDurationMinutes),
			)
		}
		d := time.Duration(*req.DurationMinutes) * time.Minute
		duration = &d
	}

	address := s.resolveAddress(ctx, req.Latitude, req.Longitude)

	session, err := domainSession.NewLiveSession(
		v.ID(),
		req.Latitude,
		req.Longitude,
		address,
		duration,
		id.NewLiveSessionID,
	)
	if err != nil {
		return nil, errors.NewValidationError("invalid session parameters", err.Error())
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if errors.IsDuplicateError(err) {
			s.logger.Infow("concurrent session start lost the race", "vendor_id", vendorSID)
			return nil, domainSession.NewAlreadyActiveError(vendorSID)
		}
		s.logger.Errorw("failed to persist session", "vendor_id", vendorSID, "error", err)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Infow("live session started",
		"vendor_id", vendorSID,
		"session_id", session.SID(),
		"auto_end_time", session.AutoEndTime(),
	)
	return s.toResponse(session, vendorSID, time.Now().UTC()), nil
}

// Stop closes the vendor's active session. A session already past its
// deadline is closed as a system expiry first, and the stop reports that
// nothing was active.
func (s *Service) Stop(ctx context.Context, vendorSID string, endedBy domainSession.EndedBy) (*dto.SessionResponse, error) {
	v, err := s.getVendor(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	active, err := s.sessionRepo.GetActiveByVendorID(ctx, v.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}
	if active == nil {
		return nil, domainSession.NewNoActiveSessionError(vendorSID)
	}

	if active.IsExpired(time.Now().UTC()) {
		if err := s.expireSession(ctx, active); err != nil {
			return nil, err
		}
		return nil, domainSession.NewNoActiveSessionError(vendorSID)
	}

	if err := active.Close(endedBy, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Update(ctx, active); err != nil {
		s.logger.Errorw("failed to persist session close", "session_id", active.SID(), "error", err)
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Infow("live session stopped",
		"vendor_id", vendorSID,
		"session_id", active.SID(),
		"ended_by", endedBy.String(),
	)
	return s.toResponse(active, vendorSID, time.Now().UTC()), nil
}

// CurrentSession returns the vendor's active session after applying lazy
// expiry. Reports no active session when none remains.
func (s *Service) CurrentSession(ctx context.Context, vendorSID string) (*dto.SessionResponse, error) {
	v, err := s.getVendor(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	active, err := s.sessionRepo.GetActiveByVendorID(ctx, v.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load active session: %w", err)
	}
	if active != nil && active.IsExpired(time.Now().UTC()) {
		if err := s.expireSession(ctx, active); err != nil {
			return nil, err
		}
		active = nil
	}
	if active == nil {
		return nil, domainSession.NewNoActiveSessionError(vendorSID)
	}

	return s.toResponse(active, vendorSID, time.Now().UTC()), nil
}

// ListActive returns the discovery feed of currently-live sessions. Rows past
// their deadline are closed on the way and excluded from the feed.
func (s *Service) ListActive(ctx context.Context) (*dto.ActiveSessionsResponse, error) {
	sessions, err := s.sessionRepo.ListActive(ctx)
	if err != nil {
		s.logger.Errorw("failed to list active sessions", "error", err)
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	now := time.Now().UTC()
	live := make([]*domainSession.LiveSession, 0, len(sessions))
	for _, session := range sessions {
		if session.IsExpired(now) {
			if err := s.expireSession(ctx, session); err != nil {
				s.logger.Warnw("failed to expire stale session",
					"session_id", session.SID(),
					"error", err,
				)
			}
			continue
		}
		live = append(live, session)
	}

	sids, err := s.vendorSIDsFor(ctx, live)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SessionResponse, 0, len(live))
	for _, session := range live {
		items = append(items, s.toResponse(session, sids[session.VendorID()], now))
	}

	return &dto.ActiveSessionsResponse{
		Sessions: items,
		Count:    len(items),
	}, nil
}

// History returns the vendor's session history, newest first.
func (s *Service) History(ctx context.Context, vendorSID string, req dto.SessionHistoryRequest) (*dto.SessionHistoryResponse, error) {
	v, err := s.getVendor(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	sessions, total, err := s.sessionRepo.ListByVendorID(ctx, v.ID(), domainSession.ListFilter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		s.logger.Errorw("failed to list session history", "vendor_id", vendorSID, "error", err)
		return nil, fmt.Errorf("failed to list session history: %w", err)
	}

	now := time.Now().UTC()
	items := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		items = append(items, s.toResponse(session, vendorSID, now))
	}

	return &dto.SessionHistoryResponse{
		Sessions: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) getVendor(ctx context.Context, vendorSID string) (*domainVendor.Vendor, error) {
	v, err := s.vendorRepo.GetBySID(ctx, vendorSID)
	if err != nil {
		s.logger.Errorw("failed to load vendor", "vendor_id", vendorSID, "error", err)
		return nil, fmt.Errorf("failed to load vendor: %w", err)
	}
	if v == nil {
		return nil, domainVendor.NewNotFoundError(vendorSID)
	}
	return v, nil
}

// resolveAddress reverse-geocodes the coordinates. Best-effort only: a nil
// geocoder or any resolution failure yields a session without an address.
func (s *Service) resolveAddress(ctx context.Context, latitude, longitude float64) *string {
	if s.geocoder == nil {
		return nil
	}

	address, err := s.geocoder.ReverseGeocode(ctx, latitude, longitude)
	if err != nil {
		s.logger.Warnw("reverse geocoding failed, continuing without address",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil
	}
	if address == "" {
		return nil
	}
	return &address
}

// expireSession closes a session whose deadline has passed, attributing the
// close to the system and backdating end_time to the deadline.
func (s *Service) expireSession(ctx context.Context, session *domainSession.LiveSession) error {
	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := session.Close(domainSession.EndedBySystem, *session.AutoEndTime()); err != nil {
			return err
		}
		return s.sessionRepo.Update(txCtx, session)
	})
	if err != nil {
		return fmt.Errorf("failed to expire session %s: %w", session.SID(), err)
	}

	s.logger.Infow("expired session closed lazily", "session_id", session.SID())
	return nil
}

// vendorSIDsFor maps the sessions' internal vendor IDs to external SIDs.
func (s *Service) vendorSIDsFor(ctx context.Context, sessions []*domainSession.LiveSession) (map[uint]string, error) {
	ids := make([]uint, 0, len(sessions))
	seen := make(map[uint]bool, len(sessions))
	for _, session := range sessions {
		if !seen[session.VendorID()] {
			seen[session.VendorID()] = true
			ids = append(ids, session.VendorID())
		}
	}
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}

	vendors, err := s.vendorRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vendors: %w", err)
	}

	sids := make(map[uint]string, len(vendors))
	for _, v := range vendors {
		sids[v.ID()] = v.SID()
	}
	return sids, nil
}

func (s *Service) toResponse(session *domainSession.LiveSession, vendorSID string, now time.Time) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:          session.SID(),
		VendorID:    vendorSID,
		Latitude:    session.Latitude(),
		Longitude:   session.Longitude(),
		Address:     session.Address(),
		StartTime:   session.StartTime(),
		EndTime:     session.EndTime(),
		AutoEndTime: session.AutoEndTime(),
		IsActive:    session.IsActive(),
	}
	if endedBy := session.EndedBy(); endedBy != nil {
		v := endedBy.String()
		resp.EndedBy = &v
	}
	if session.IsActive() && session.AutoEndTime() != nil {
		remaining := session.Remaining(now)
		seconds := int64(remaining / time.Second)
		countdown := domainSession.FormatRemaining(remaining)
		resp.RemainingSeconds = &seconds
		resp.Countdown = &countdown
	}
	return resp
}
