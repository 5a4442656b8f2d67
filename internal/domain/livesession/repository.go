package livesession

import "context"

// Repository defines the interface for live session data operations.
// The store enforces the exclusivity invariant: Create must fail with a
// duplicate-key conflict when the vendor already has an active session,
// regardless of any pre-check performed by callers.
type Repository interface {
	// Create persists a new active session. A unique constraint on the
	// vendor's active row makes concurrent creates lose deterministically.
	Create(ctx context.Context, session *LiveSession) error

	// GetBySID retrieves a session by external SID, nil when not found
	GetBySID(ctx context.Context, sid string) (*LiveSession, error)

	// GetActiveByVendorID retrieves the vendor's active session, nil when none
	GetActiveByVendorID(ctx context.Context, vendorID uint) (*LiveSession, error)

	// Update persists a close mutation (end_time, is_active, ended_by)
	Update(ctx context.Context, session *LiveSession) error

	// ListActive retrieves all currently active sessions
	ListActive(ctx context.Context) ([]*LiveSession, error)

	// ListByVendorID retrieves a vendor's session history, newest first
	ListByVendorID(ctx context.Context, vendorID uint, filter ListFilter) ([]*LiveSession, int64, error)

	// CountActiveByVendorID counts active rows for a vendor; used by
	// invariant checks in tests and the lazy-expiry sweep
	CountActiveByVendorID(ctx context.Context, vendorID uint) (int64, error)
}

// ListFilter represents pagination options for session history
type ListFilter struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
