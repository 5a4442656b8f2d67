// Package testutil provides mock implementations for testing the
// application layer.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"streetside/internal/domain/livesession"
	"streetside/internal/domain/vendor"
	"streetside/internal/shared/logger"
)

// MockVendorRepository is an in-memory implementation of vendor.Repository.
type MockVendorRepository struct {
	mu           sync.RWMutex
	vendors      map[uint]*vendor.Vendor
	vendorsBySID map[string]*vendor.Vendor
	nextID       uint

	// Error injection for testing
	CreateError error
	GetError    error
	UpdateError error
	ListError   error
}

// NewMockVendorRepository creates a new mock vendor repository.
func NewMockVendorRepository() *MockVendorRepository {
	return &MockVendorRepository{
		vendors:      make(map[uint]*vendor.Vendor),
		vendorsBySID: make(map[string]*vendor.Vendor),
	}
}

// AddVendor seeds the repository with an existing vendor.
func (m *MockVendorRepository) AddVendor(v *vendor.Vendor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID() > m.nextID {
		m.nextID = v.ID()
	}
	m.vendors[v.ID()] = v
	m.vendorsBySID[v.SID()] = v
}

func (m *MockVendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}

	if v.ID() == 0 {
		m.nextID++
		if err := v.SetID(m.nextID); err != nil {
			return err
		}
	}

	m.vendors[v.ID()] = v
	m.vendorsBySID[v.SID()] = v
	return nil
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id uint) (*vendor.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.vendors[id], nil
}

func (m *MockVendorRepository) GetBySID(ctx context.Context, sid string) (*vendor.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.vendorsBySID[sid], nil
}

func (m *MockVendorRepository) GetByIDs(ctx context.Context, ids []uint) ([]*vendor.Vendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}

	result := make([]*vendor.Vendor, 0, len(ids))
	for _, id := range ids {
		if v, ok := m.vendors[id]; ok {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *MockVendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, ok := m.vendors[v.ID()]; !ok {
		return fmt.Errorf("vendor %d not found", v.ID())
	}
	m.vendors[v.ID()] = v
	m.vendorsBySID[v.SID()] = v
	return nil
}

func (m *MockVendorRepository) List(ctx context.Context, filter vendor.ListFilter) ([]*vendor.Vendor, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	matched := make([]*vendor.Vendor, 0, len(m.vendors))
	for _, v := range m.vendors {
		if filter.Status != "" && v.Status().String() != filter.Status {
			continue
		}
		if filter.Name != "" && !strings.Contains(
			strings.ToLower(v.DisplayName().String()),
			strings.ToLower(filter.Name),
		) {
			continue
		}
		matched = append(matched, v)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MockVendorRepository) ExistsBySID(ctx context.Context, sid string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return false, m.GetError
	}
	_, ok := m.vendorsBySID[sid]
	return ok, nil
}

// MockSessionRepository is an in-memory implementation of
// livesession.Repository. Create enforces the same per-vendor uniqueness the
// real store does and fails with a duplicate-key error when a second active
// session is inserted.
type MockSessionRepository struct {
	mu            sync.RWMutex
	sessions      map[uint]*livesession.LiveSession
	sessionsBySID map[string]*livesession.LiveSession
	nextID        uint

	// Error injection for testing
	CreateError error
	GetError    error
	UpdateError error
	ListError   error

	// ActiveLookupMiss makes GetActiveByVendorID report no active session,
	// simulating the race window between pre-check and insert.
	ActiveLookupMiss bool
}

// NewMockSessionRepository creates a new mock session repository.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{
		sessions:      make(map[uint]*livesession.LiveSession),
		sessionsBySID: make(map[string]*livesession.LiveSession),
	}
}

// AddSession seeds the repository with an existing session.
func (m *MockSessionRepository) AddSession(s *livesession.LiveSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID() > m.nextID {
		m.nextID = s.ID()
	}
	m.sessions[s.ID()] = s
	m.sessionsBySID[s.SID()] = s
}

func (m *MockSessionRepository) Create(ctx context.Context, s *livesession.LiveSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.sessions {
		if existing.VendorID() == s.VendorID() && existing.IsActive() {
			return fmt.Errorf("Duplicate entry '%d-1' for key 'uk_live_sessions_vendor_active'", s.VendorID())
		}
	}

	if s.ID() == 0 {
		m.nextID++
		if err := s.SetID(m.nextID); err != nil {
			return err
		}
	}

	m.sessions[s.ID()] = s
	m.sessionsBySID[s.SID()] = s
	return nil
}

func (m *MockSessionRepository) GetBySID(ctx context.Context, sid string) (*livesession.LiveSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.sessionsBySID[sid], nil
}

func (m *MockSessionRepository) GetActiveByVendorID(ctx context.Context, vendorID uint) (*livesession.LiveSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return nil, m.GetError
	}
	if m.ActiveLookupMiss {
		return nil, nil
	}
	for _, s := range m.sessions {
		if s.VendorID() == vendorID && s.IsActive() {
			return s, nil
		}
	}
	return nil, nil
}

func (m *MockSessionRepository) Update(ctx context.Context, s *livesession.LiveSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, ok := m.sessions[s.ID()]; !ok {
		return fmt.Errorf("session %d not found", s.ID())
	}
	m.sessions[s.ID()] = s
	m.sessionsBySID[s.SID()] = s
	return nil
}

func (m *MockSessionRepository) ListActive(ctx context.Context) ([]*livesession.LiveSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, m.ListError
	}

	result := make([]*livesession.LiveSession, 0)
	for _, s := range m.sessions {
		if s.IsActive() {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockSessionRepository) ListByVendorID(ctx context.Context, vendorID uint, filter livesession.ListFilter) ([]*livesession.LiveSession, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	matched := make([]*livesession.LiveSession, 0)
	for _, s := range m.sessions {
		if s.VendorID() == vendorID {
			matched = append(matched, s)
		}
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (m *MockSessionRepository) CountActiveByVendorID(ctx context.Context, vendorID uint) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetError != nil {
		return 0, m.GetError
	}

	var count int64
	for _, s := range m.sessions {
		if s.VendorID() == vendorID && s.IsActive() {
			count++
		}
	}
	return count, nil
}

// MockTransactionManager runs the function directly without a database.
type MockTransactionManager struct {
	// RunError, when set, fails the transaction before the function runs.
	RunError error

	mu   sync.Mutex
	runs int
}

// NewMockTransactionManager creates a new mock transaction manager.
func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunError != nil {
		return m.RunError
	}
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()
	return fn(ctx)
}

// Runs returns how many transactions were executed.
func (m *MockTransactionManager) Runs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs
}

// MockGeocoder returns a fixed address or error.
type MockGeocoder struct {
	Address string
	Err     error

	mu    sync.Mutex
	calls int
}

// NewMockGeocoder creates a new mock geocoder.
func NewMockGeocoder(address string, err error) *MockGeocoder {
	return &MockGeocoder{Address: address, Err: err}
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Address, nil
}

// Calls returns how many geocode requests were made.
func (m *MockGeocoder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// nopLogger discards all log output.
type nopLogger struct{}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() logger.Interface {
	return nopLogger{}
}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (l nopLogger) With(args ...any) logger.Interface             { return l }
func (l nopLogger) Named(name string) logger.Interface            { return l }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
