package models

import "time"

// Delivery states: pending (stock already reserved) -> delivered or cancelled.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// DeliveryRequest is a volunteer's reservation of inventory to deliver.
// While pending, the quantity has already been deducted from the resource.
// ResourceID is the stable key; Item caches the resource name for display.
type DeliveryRequest struct {
	ID                int64          `json:"id"`
	VolunteerID       string         `json:"volunteer_id"`
	VolunteerUsername string         `json:"volunteer"`
	ResourceID        int64          `json:"resource_id"`
	Item              string         `json:"item"`
	Quantity          int            `json:"quantity"`
	Status            DeliveryStatus `json:"status"`
	CreatedAt         time.Time      `json:"timestamp"`
}

type RequestDeliveryRequest struct {
	Item     string `json:"item" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type UpdateDeliveryRequest struct {
	Status string `json:"status" validate:"required,oneof=delivered cancelled"`
}
