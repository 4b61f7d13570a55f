package models

// Resource stock statuses. The status is set by admin policy, it is not
// derived automatically from the quantity.
const (
	ResourceStatusAvailable  = "Available"
	ResourceStatusLow        = "Low"
	ResourceStatusOutOfStock = "Out of Stock"
)

// ResourceItem is one named inventory entry with a non-negative stock count.
type ResourceItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

type AddResourceRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Status   string `json:"status" validate:"required"`
}

type UpdateResourceRequest struct {
	Quantity int    `json:"quantity" validate:"gte=0"`
	Status   string `json:"status" validate:"required"`
}
