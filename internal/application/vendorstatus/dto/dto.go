// Package dto defines request and response payloads for the vendor
// application service.
package dto

import "time"

// RegisterVendorRequest contains data for registering a new vendor
type RegisterVendorRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=100"`
}

// RejectVendorRequest contains data for rejecting a vendor
type RejectVendorRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// VendorResponse represents a vendor in API responses. ID carries the
// external SID; internal numeric IDs never leave the application layer.
type VendorResponse struct {
	ID              string    `json:"id"`
	DisplayName     string    `json:"display_name"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// VendorStatusResponse is the public status view of a vendor, including the
// current live session when one is active.
type VendorStatusResponse struct {
	ID              string           `json:"id"`
	DisplayName     string           `json:"display_name"`
	Status          string           `json:"status"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	Session         *SessionSnapshot `json:"session"`
}

// SessionSnapshot is the session portion embedded in status responses.
type SessionSnapshot struct {
	ID          string     `json:"id"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Address     *string    `json:"address,omitempty"`
	StartTime   time.Time  `json:"start_time"`
	AutoEndTime *time.Time `json:"auto_end_time,omitempty"`
}

// ListVendorsRequest contains filtering and pagination for the admin listing
type ListVendorsRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Status   string `json:"status,omitempty"`
	Name     string `json:"name,omitempty"`
}

// ListVendorsResponse is a paginated vendor listing
type ListVendorsResponse struct {
	Vendors  []*VendorResponse `json:"vendors"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}
