package livesession

import (
	"fmt"
	"time"
)

// EndedBy identifies which actor closed a live session.
type EndedBy string

const (
	EndedByVendor EndedBy = "vendor"
	EndedByAdmin  EndedBy = "admin"
	// EndedBySystem marks sessions closed by lazy auto-expiry.
	EndedBySystem EndedBy = "system"
)

// String returns the string representation of EndedBy
func (e EndedBy) String() string {
	return string(e)
}

// IsValid checks the EndedBy value is one of the known actors
func (e EndedBy) IsValid() bool {
	return e == EndedByVendor || e == EndedByAdmin || e == EndedBySystem
}

// ParseEndedBy parses a string into an EndedBy value
func ParseEndedBy(s string) (EndedBy, error) {
	e := EndedBy(s)
	if !e.IsValid() {
		return "", fmt.Errorf("invalid ended_by value: %s", s)
	}
	return e, nil
}

// LiveSession represents a vendor's time-bounded, geolocated availability
// broadcast. Rows are append-only: a session is created once, closed at most
// once, and never deleted. isActive is the single authoritative liveness
// flag; endTime is a derived audit timestamp and is never consulted for
// control flow.
type LiveSession struct {
	id          uint
	sid         string
	vendorID    uint
	latitude    float64
	longitude   float64
	address     *string
	startTime   time.Time
	endTime     *time.Time
	autoEndTime *time.Time
	isActive    bool
	endedBy     *EndedBy
	createdAt   time.Time
}

// NewLiveSession creates a new active session for a vendor. The address is
// best-effort and may be nil. duration, when non-nil, sets the auto-expiry
// deadline; nil means open-ended.
func NewLiveSession(
	vendorID uint,
	latitude, longitude float64,
	address *string,
	duration *time.Duration,
	sidGenerator func() (string, error),
) (*LiveSession, error) {
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if sidGenerator == nil {
		return nil, fmt.Errorf("sid generator is required")
	}
	if latitude < -90 || latitude > 90 {
		return nil, fmt.Errorf("latitude out of range: %f", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return nil, fmt.Errorf("longitude out of range: %f", longitude)
	}
	if duration != nil && *duration <= 0 {
		return nil, fmt.Errorf("duration must be positive")
	}

	sid, err := sidGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session sid: %w", err)
	}

	now := time.Now().UTC()
	var autoEnd *time.Time
	if duration != nil {
		t := now.Add(*duration)
		autoEnd = &t
	}

	return &LiveSession{
		sid:         sid,
		vendorID:    vendorID,
		latitude:    latitude,
		longitude:   longitude,
		address:     address,
		startTime:   now,
		autoEndTime: autoEnd,
		isActive:    true,
		createdAt:   now,
	}, nil
}

// ReconstructLiveSession reconstructs a session from persistence
func ReconstructLiveSession(
	id uint,
	sid string,
	vendorID uint,
	latitude, longitude float64,
	address *string,
	startTime time.Time,
	endTime *time.Time,
	autoEndTime *time.Time,
	isActive bool,
	endedBy *EndedBy,
	createdAt time.Time,
) (*LiveSession, error) {
	if id == 0 {
		return nil, fmt.Errorf("session ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("session sid is required")
	}
	if vendorID == 0 {
		return nil, fmt.Errorf("vendor ID is required")
	}
	if endedBy != nil && !endedBy.IsValid() {
		return nil, fmt.Errorf("invalid ended_by value: %s", *endedBy)
	}

	return &LiveSession{
		id:          id,
		sid:         sid,
		vendorID:    vendorID,
		latitude:    latitude,
		longitude:   longitude,
		address:     address,
		startTime:   startTime,
		endTime:     endTime,
		autoEndTime: autoEndTime,
		isActive:    isActive,
		endedBy:     endedBy,
		createdAt:   createdAt,
	}, nil
}

// ID returns the internal session ID
func (s *LiveSession) ID() uint {
	return s.id
}

// SID returns the external session identifier
func (s *LiveSession) SID() string {
	return s.sid
}

// VendorID returns the owning vendor's internal ID
func (s *LiveSession) VendorID() uint {
	return s.vendorID
}

// Latitude returns the broadcast latitude
func (s *LiveSession) Latitude() float64 {
	return s.latitude
}

// Longitude returns the broadcast longitude
func (s *LiveSession) Longitude() float64 {
	return s.longitude
}

// Address returns the resolved address, nil when geocoding was unavailable
func (s *LiveSession) Address() *string {
	return s.address
}

// StartTime returns when the session started
func (s *LiveSession) StartTime() time.Time {
	return s.startTime
}

// EndTime returns when the session was closed, nil while active
func (s *LiveSession) EndTime() *time.Time {
	return s.endTime
}

// AutoEndTime returns the auto-expiry deadline, nil for open-ended sessions
func (s *LiveSession) AutoEndTime() *time.Time {
	return s.autoEndTime
}

// IsActive reports whether the session is still open
func (s *LiveSession) IsActive() bool {
	return s.isActive
}

// EndedBy returns the actor that closed the session, nil while active
func (s *LiveSession) EndedBy() *EndedBy {
	return s.endedBy
}

// CreatedAt returns when the row was created
func (s *LiveSession) CreatedAt() time.Time {
	return s.createdAt
}

// SetID sets the session ID (only for persistence layer use)
func (s *LiveSession) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("session ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("session ID cannot be zero")
	}
	s.id = id
	return nil
}

// IsExpired reports whether the auto-expiry deadline has passed while the
// session is still marked active. Open-ended sessions never expire.
func (s *LiveSession) IsExpired(now time.Time) bool {
	if !s.isActive || s.autoEndTime == nil {
		return false
	}
	return !now.Before(*s.autoEndTime)
}

// Close ends the session exactly once, recording the closing actor. Closing
// an already-closed session fails rather than silently succeeding so that
// duplicate stop requests stay observable.
func (s *LiveSession) Close(endedBy EndedBy, now time.Time) error {
	if !s.isActive {
		return fmt.Errorf("session %s is already closed", s.sid)
	}
	if !endedBy.IsValid() {
		return fmt.Errorf("invalid ended_by value: %s", endedBy)
	}

	end := now.UTC()
	s.endTime = &end
	s.isActive = false
	s.endedBy = &endedBy
	return nil
}

// Remaining returns the time left until auto-expiry, zero when expired or
// open-ended. Derived display value only; liveness authority stays with
// IsExpired against the persisted deadline.
func (s *LiveSession) Remaining(now time.Time) time.Duration {
	if s.autoEndTime == nil {
		return 0
	}
	return Remaining(now, *s.autoEndTime)
}
