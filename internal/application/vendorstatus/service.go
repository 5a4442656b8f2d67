// Package vendorstatus implements the vendor status application service:
// approval decisions, the public status view, and the admin listing.
package vendorstatus

import (
	"context"
	"fmt"
	"time"

	"streetside/internal/application/vendorstatus/dto"
	"streetside/internal/domain/livesession"
	domainVendor "streetside/internal/domain/vendor"
	"streetside/internal/shared/constants"
	"streetside/internal/shared/errors"
	"streetside/internal/shared/goroutine"
	"streetside/internal/shared/id"
	"streetside/internal/shared/logger"
	"streetside/internal/shared/services/sanitize"
)

// TransactionManager runs a function inside a database transaction. The
// transaction travels in the context so repositories can pick it up.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DecisionNotifier delivers approval decision notifications to vendors.
// Delivery is best-effort and never blocks the decision itself.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, cmd DecisionCommand) error
}

// DecisionCommand contains data for a vendor decision notification
type DecisionCommand struct {
	VendorSID   string
	DisplayName string
	Status      string
	Reason      *string
	DecidedBy   string
	DecidedAt   time.Time
}

// Service handles vendor registration and approval lifecycle operations.
type Service struct {
	vendorRepo  domainVendor.Repository
	sessionRepo livesession.Repository
	txManager   TransactionManager
	sanitizer   sanitize.Sanitizer
	notifier    DecisionNotifier // optional, can be nil
	logger      logger.Interface
}

// NewService creates a new vendor application service
func NewService(
	vendorRepo domainVendor.Repository,
	sessionRepo livesession.Repository,
	txManager TransactionManager,
	sanitizer sanitize.Sanitizer,
	logger logger.Interface,
) *Service {
	return &Service{
		vendorRepo:  vendorRepo,
		sessionRepo: sessionRepo,
		txManager:   txManager,
		sanitizer:   sanitizer,
		logger:      logger,
	}
}

// SetDecisionNotifier sets the decision notifier (optional dependency injection)
func (s *Service) SetDecisionNotifier(notifier DecisionNotifier) {
	s.notifier = notifier
}

// Register creates a new vendor in pending status.
func (s *Service) Register(ctx context.Context, req dto.RegisterVendorRequest) (*dto.VendorResponse, error) {
	name, err := domainVendor.NewDisplayName(s.sanitizer.Plain(req.DisplayName))
	if err != nil {
		return nil, err
	}

	v, err := domainVendor.NewVendor(name, id.NewVendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}

	if err := s.vendorRepo.Create(ctx, v); err != nil {
		s.logger.Errorw("failed to persist vendor", "error", err)
		return nil, fmt.Errorf("failed to save vendor: %w", err)
	}

	s.logger.Infow("vendor registered", "vendor_id", v.SID(), "display_name", name.String())
	return toVendorResponse(v), nil
}

// Approve transitions a vendor to approved. Approving an already-approved
// vendor succeeds without changes.
func (s *Service) Approve(ctx context.Context, vendorSID, approvedBy string) (*dto.VendorResponse, error) {
	v, err := s.getVendor(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	wasApproved := v.Status().IsApproved()
	if err := v.Approve(); err != nil {
		return nil, err
	}

	if !wasApproved {
		if err := s.vendorRepo.Update(ctx, v); err != nil {
			s.logger.Errorw("failed to persist vendor approval", "vendor_id", vendorSID, "error", err)
			return nil, fmt.Errorf("failed to save vendor: %w", err)
		}
		s.logger.Infow("vendor approved", "vendor_id", vendorSID, "approved_by", approvedBy)
		s.notifyDecision(v, nil, approvedBy)
	}

	return toVendorResponse(v), nil
}

// Reject transitions a vendor to rejected with the given reason. Any active
// live session is force-closed in the same transaction as the status write.
func (s *Service) Reject(ctx context.Context, vendorSID, reason, rejectedBy string) (*dto.VendorResponse, error) {
	cleaned := s.sanitizer.Plain(reason)
	if cleaned == "" {
		return nil, domainVendor.NewEmptyReasonError()
	}
	if len(cleaned) > constants.MaxRejectionReasonLength {
		cleaned = cleaned[:constants.MaxRejectionReasonLength]
	}

	v, err := s.getVendor(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	if err := v.Reject(cleaned); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.vendorRepo.Update(txCtx, v); err != nil {
			return fmt.Errorf("failed to save vendor: %w", err)
		}

		active, err := s.sessionRepo.GetActiveByVendorID(txCtx, v.ID())
		if err != nil {
			return fmt.Errorf("failed to check active session: %w", err)
		}
		if active == nil {
			return nil
		}

		if err := active.Close(livesession.EndedByAdmin, time.Now().UTC()); err != nil {
			return err
		}
		if err := s.sessionRepo.Update(txCtx, active); err != nil {
			return fmt.Errorf("failed to close active session: %w", err)
		}

		s.logger.Infow("active session force-closed on rejection",
			"vendor_id", vendorSID,
			"session_id", active.SID(),
		)
		return nil
	})
	if err != nil {
		s.logger.Errorw("failed to persist vendor rejection", "vendor_id", vendorSID, "error", err)
		return nil, err
	}

	s.logger.Infow("vendor rejected", "vendor_id", vendorSID, "rejected_by", rejectedBy)
	s.notifyDecision(v, &cleaned, rejectedBy)

	return toVendorResponse(v), nil
}

// GetStatus returns the vendor's approval status together with the current
// live session. Expired sessions are closed before the view is built, so a
// session past its deadline is never reported live.
func (s *Service) GetStatus(ctx context.Context, vendorSID string) (*dto.VendorStatusResponse, error) {
	v, err := s.getVendor(ctx, vendorSID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetActiveByVendorID(ctx, v.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load active session: %w", err)
	}

	if session != nil && session.IsExpired(time.Now().UTC()) {
		if err := s.expireSession(ctx, session); err != nil {
			return nil, err
		}
		session = nil
	}

	resp := &dto.VendorStatusResponse{
		ID:              v.SID(),
		DisplayName:     v.DisplayName().Titled(),
		Status:          v.Status().String(),
		RejectionReason: v.RejectionReason(),
	}
	if session != nil {
		resp.Session = toSessionSnapshot(session)
	}
	return resp, nil
}

// List returns a paginated vendor listing for the admin dashboard.
func (s *Service) List(ctx context.Context, req dto.ListVendorsRequest) (*dto.ListVendorsResponse, error) {
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

	if req.Status != "" {
		if _, err := domainVendor.ParseStatus(req.Status); err != nil {
			return nil, errors.NewValidationError("invalid status filter", req.Status)
		}
	}

	vendors, total, err := s.vendorRepo.List(ctx, domainVendor.ListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   req.Status,
		Name:     req.Name,
	})
	if err != nil {
		s.logger.Errorw("failed to list vendors", "error", err)
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}

	items := make([]*dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		items = append(items, toVendorResponse(v))
	}

	return &dto.ListVendorsResponse{
		Vendors:  items,
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

// expireSession closes a session whose deadline has passed, attributing the
// close to the system and backdating end_time to the deadline.
func (s *Service) expireSession(ctx context.Context, session *livesession.LiveSession) error {
	return s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := session.Close(livesession.EndedBySystem, *session.AutoEndTime()); err != nil {
			return err
		}
		return s.sessionRepo.Update(txCtx, session)
	})
}

func (s *Service) notifyDecision(v *domainVendor.Vendor, reason *string, decidedBy string) {
	if s.notifier == nil {
		return
	}
	cmd := DecisionCommand{
		VendorSID:   v.SID(),
		DisplayName: v.DisplayName().String(),
		Status:      v.Status().String(),
		Reason:      reason,
		DecidedBy:   decidedBy,
		DecidedAt:   time.Now().UTC(),
	}
	goroutine.SafeGo(s.logger, "vendor_decision_notify", func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.NotifyDecision(notifyCtx, cmd); err != nil {
			s.logger.Warnw("failed to send decision notification",
				"vendor_id", cmd.VendorSID,
				"status", cmd.Status,
				"error", err,
			)
		}
	})
}

func toVendorResponse(v *domainVendor.Vendor) *dto.VendorResponse {
	return &dto.VendorResponse{
		ID:              v.SID(),
		DisplayName:     v.DisplayName().Titled(),
		Status:          v.Status().String(),
		RejectionReason: v.RejectionReason(),
		CreatedAt:       v.CreatedAt(),
		UpdatedAt:       v.UpdatedAt(),
	}
}

func toSessionSnapshot(s *livesession.LiveSession) *dto.SessionSnapshot {
	return &dto.SessionSnapshot{
		ID:          s.SID(),
		Latitude:    s.Latitude(),
		Longitude:   s.Longitude(),
		Address:     s.Address(),
		StartTime:   s.StartTime(),
		AutoEndTime: s.AutoEndTime(),
	}
}
