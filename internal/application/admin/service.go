// Package admin implements privileged overrides on top of the vendor and
// live session services. Every override leaves an audit trail.
package admin

import (
	"context"

	sessionapp "streetside/internal/application/livesession"
	sessiondto "streetside/internal/application/livesession/dto"
	vendordto "streetside/internal/application/vendorstatus/dto"
	domainSession "streetside/internal/domain/livesession"
	"streetside/internal/shared/logger"
)

// AuditSink records admin actions in an append-only log.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditEntry describes a single admin action
type AuditEntry struct {
	ActorSID  string
	Action    string
	TargetSID string
	Metadata  map[string]any
}

// VendorDecisions is the slice of the vendor service the admin overrides use.
type VendorDecisions interface {
	Approve(ctx context.Context, vendorSID, approvedBy string) (*vendordto.VendorResponse, error)
	Reject(ctx context.Context, vendorSID, reason, rejectedBy string) (*vendordto.VendorResponse, error)
}

// SessionControl is the slice of the live session service the admin
// overrides use.
type SessionControl interface {
	Start(ctx context.Context, vendorSID string, req sessiondto.StartSessionRequest, opts sessionapp.StartOptions) (*sessiondto.SessionResponse, error)
	Stop(ctx context.Context, vendorSID string, endedBy domainSession.EndedBy) (*sessiondto.SessionResponse, error)
}

// Service exposes admin-only overrides. Role enforcement happens at the
// route group; this service assumes the caller is already an admin.
type Service struct {
	vendors  VendorDecisions
	sessions SessionControl
	audit    AuditSink
	logger   logger.Interface
}

// NewService creates a new admin override service
func NewService(
	vendors VendorDecisions,
	sessions SessionControl,
	audit AuditSink,
	logger logger.Interface,
) *Service {
	return &Service{
		vendors:  vendors,
		sessions: sessions,
		audit:    audit,
		logger:   logger,
	}
}

// ForceStart opens a live session for a vendor regardless of approval
// status. Exclusivity is still enforced by the store.
func (s *Service) ForceStart(ctx context.Context, actorSID, vendorSID string, req sessiondto.StartSessionRequest) (*sessiondto.SessionResponse, error) {
	resp, err := s.sessions.Start(ctx, vendorSID, req, sessionapp.StartOptions{SkipApprovalCheck: true})
	if err != nil {
		return nil, err
	}

	s.record(ctx, AuditEntry{
		ActorSID:  actorSID,
		Action:    "session.force_start",
		TargetSID: vendorSID,
		Metadata: map[string]any{
			"session_id": resp.ID,
			"latitude":   req.Latitude,
			"longitude":  req.Longitude,
		},
	})
	return resp, nil
}

// ForceStop closes the vendor's active session on the vendor's behalf.
func (s *Service) ForceStop(ctx context.Context, actorSID, vendorSID string) (*sessiondto.SessionResponse, error) {
	resp, err := s.sessions.Stop(ctx, vendorSID, domainSession.EndedByAdmin)
	if err != nil {
		return nil, err
	}

	s.record(ctx, AuditEntry{
		ActorSID:  actorSID,
		Action:    "session.force_stop",
		TargetSID: vendorSID,
		Metadata: map[string]any{
			"session_id": resp.ID,
		},
	})
	return resp, nil
}

// ApproveWithAudit approves a vendor and records the decision.
func (s *Service) ApproveWithAudit(ctx context.Context, actorSID, vendorSID string) (*vendordto.VendorResponse, error) {
	resp, err := s.vendors.Approve(ctx, vendorSID, actorSID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, AuditEntry{
		ActorSID:  actorSID,
		Action:    "vendor.approve",
		TargetSID: vendorSID,
		Metadata: map[string]any{
			"status": resp.Status,
		},
	})
	return resp, nil
}

// RejectWithAudit rejects a vendor with a reason and records the decision.
func (s *Service) RejectWithAudit(ctx context.Context, actorSID, vendorSID, reason string) (*vendordto.VendorResponse, error) {
	resp, err := s.vendors.Reject(ctx, vendorSID, reason, actorSID)
	if err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"status": resp.Status,
	}
	if resp.RejectionReason != nil {
		metadata["reason"] = *resp.RejectionReason
	}

	s.record(ctx, AuditEntry{
		ActorSID:  actorSID,
		Action:    "vendor.reject",
		TargetSID: vendorSID,
		Metadata:  metadata,
	})
	return resp, nil
}

// record writes the audit entry. The override already happened, so a sink
// failure is logged rather than surfaced to the caller.
func (s *Service) record(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Errorw("failed to record audit entry",
			"action", entry.Action,
			"actor_id", entry.ActorSID,
			"target_id", entry.TargetSID,
			"error", err,
		)
	}
}
