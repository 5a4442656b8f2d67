package handlers

import (
	"context"

	sessionapp "streetside/internal/application/livesession"
	"streetside/internal/application/livesession/dto"
	domainSession "streetside/internal/domain/livesession"
)

// SessionService is the slice of the live session application service the
// handlers depend on.
type SessionService interface {
	Start(ctx context.Context, vendorSID string, req dto.StartSessionRequest, opts sessionapp.StartOptions) (*dto.SessionResponse, error)
	Stop(ctx context.Context, vendorSID string, endedBy domainSession.EndedBy) (*dto.SessionResponse, error)
	CurrentSession(ctx context.Context, vendorSID string) (*dto.SessionResponse, error)
	ListActive(ctx context.Context) (*dto.ActiveSessionsResponse, error)
	History(ctx context.Context, vendorSID string, req dto.SessionHistoryRequest) (*dto.SessionHistoryResponse, error)
}
