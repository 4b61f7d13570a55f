package models

import "time"

// SOS lifecycle states: pending -> assigned -> in_progress -> resolved.
type SosStatus string

const (
	SosStatusPending    SosStatus = "pending"
	SosStatusAssigned   SosStatus = "assigned"
	SosStatusInProgress SosStatus = "in_progress"
	SosStatusResolved   SosStatus = "resolved"
)

// RiskLevel is the coarse severity classification attached to an SOS request.
// "Unknown" means the predictor was unavailable, "Error" that it failed.
type RiskLevel string

const (
	RiskLow     RiskLevel = "Low"
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
	RiskUnknown RiskLevel = "Unknown"
	RiskError   RiskLevel = "Error"
)

// SosRequest is an emergency report submitted by a user. AssignedTo holds the
// volunteer's stable ID; AssignedToName is a denormalized display cache of the
// volunteer's username at assignment time.
type SosRequest struct {
	ID               int64     `json:"id"`
	ReporterID       string    `json:"reporter_id"`
	ReporterUsername string    `json:"username"`
	Latitude         float64   `json:"latitude"`
	Longitude        float64   `json:"longitude"`
	Description      string    `json:"description"`
	Status           SosStatus `json:"status"`
	RiskLevel        RiskLevel `json:"risk_level"`
	AssignedTo       *string   `json:"-"`
	AssignedToName   *string   `json:"assigned_to"`
	CreatedAt        time.Time `json:"timestamp"`
}

// CreateSosRequest is the payload for submitting a new SOS alert.
type CreateSosRequest struct {
	Description string  `json:"description" validate:"required,min=10"`
	Latitude    float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// AssignSosRequest is the admin payload for assigning a volunteer.
type AssignSosRequest struct {
	VolunteerName string `json:"volunteer_name" validate:"required"`
}
