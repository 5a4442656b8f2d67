// Package dto defines request and response payloads for the live session
// application service.
package dto

import "time"

// StartSessionRequest contains data for starting a live session.
// DurationMinutes is optional; nil means the session stays open until
// stopped explicitly.
type StartSessionRequest struct {
	Latitude        float64 `json:"latitude" validate:"latitude"`
	Longitude       float64 `json:"longitude" validate:"longitude"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=720"`
}

// SessionResponse represents a live session in API responses
type SessionResponse struct {
	ID               string     `json:"id"`
	VendorID         string     `json:"vendor_id"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	Address          *string    `json:"address,omitempty"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          *time.Time `json:"end_time,omitempty"`
	AutoEndTime      *time.Time `json:"auto_end_time,omitempty"`
	IsActive         bool       `json:"is_active"`
	EndedBy          *string    `json:"ended_by,omitempty"`
	RemainingSeconds *int64     `json:"remaining_seconds,omitempty"`
	Countdown        *string    `json:"countdown,omitempty"`
}

// ActiveSessionsResponse is the discovery feed of currently-live vendors
type ActiveSessionsResponse struct {
	Sessions []*SessionResponse `json:"sessions"`
	Count    int                `json:"count"`
}

// SessionHistoryRequest contains pagination for a vendor's session history
type SessionHistoryRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// SessionHistoryResponse is a paginated session history, newest first
type SessionHistoryResponse struct {
	Sessions []*SessionResponse `json:"sessions"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
