package delivery

import (
	"context"
	"fmt"
	"time"

	"disaster-response/internal/models"
	"disaster-response/internal/notify"

	"go.uber.org/zap"
)

// Ledger is the slice of the inventory service the delivery workflow needs.
type Ledger interface {
	FindByName(ctx context.Context, name string) (*models.ResourceItem, error)
	Reserve(ctx context.Context, name string, quantity int) (int, error)
	Release(ctx context.Context, name string, quantity int) error
}

// ServiceInterface defines the contract for the delivery workflow.
type ServiceInterface interface {
	Request(ctx context.Context, volunteerID, volunteerUsername string, req models.RequestDeliveryRequest) (*models.DeliveryRequest, error)
	UpdateStatus(ctx context.Context, deliveryID int64, volunteerID string, req models.UpdateDeliveryRequest) (*models.DeliveryRequest, error)
	ListPending(ctx context.Context) ([]*models.DeliveryRequest, error)
	ListMine(ctx context.Context, volunteerID string) ([]*models.DeliveryRequest, error)
}

// Service implements the delivery workflow logic.
type Service struct {
	repo      RepositoryInterface
	ledger    Ledger
	publisher notify.Publisher
	logger    *zap.Logger
}

// NewService creates a new delivery service.
func NewService(repo RepositoryInterface, ledger Ledger, publisher notify.Publisher, logger *zap.Logger) *Service {
	return &Service{repo: repo, ledger: ledger, publisher: publisher, logger: logger}
}

// Request reserves stock for the volunteer and records a pending delivery.
// Stock is deducted eagerly at creation, not at admin approval; cancellation
// returns it.
func (s *Service) Request(ctx context.Context, volunteerID, volunteerUsername string, req models.RequestDeliveryRequest) (*models.DeliveryRequest, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", models.ErrValidation)
	}

	item, err := s.ledger.FindByName(ctx, req.Item)
	if err != nil {
		return nil, err // ErrNotFound for unknown items
	}

	if _, err := s.ledger.Reserve(ctx, item.Name, req.Quantity); err != nil {
		return nil, err
	}

	d := &models.DeliveryRequest{
		VolunteerID:       volunteerID,
		VolunteerUsername: volunteerUsername,
		ResourceID:        item.ID,
		Item:              item.Name,
		Quantity:          req.Quantity,
		Status:            models.DeliveryStatusPending,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		// Compensate the reservation so stock is not stranded.
		if relErr := s.ledger.Release(ctx, item.Name, req.Quantity); relErr != nil {
			s.logger.Error("failed to release stock after create failure",
				zap.String("item", item.Name), zap.Int("quantity", req.Quantity), zap.Error(relErr))
		}
		return nil, fmt.Errorf("service.RequestDelivery: %w", err)
	}

	s.publisher.Publish(notify.Event{
		Type:  notify.EventNewResourceRequest,
		Rooms: []string{notify.RoomAdmin},
		Payload: map[string]interface{}{
			"delivery_id": d.ID,
			"volunteer":   d.VolunteerUsername,
			"item":        d.Item,
			"quantity":    d.Quantity,
			"timestamp":   d.CreatedAt.Format(time.RFC3339),
		},
	})

	return d, nil
}

// UpdateStatus moves a pending delivery owned by the caller to delivered or
// cancelled. Cancellation returns the reserved quantity to the ledger;
// delivered has no ledger effect since the stock was already deducted.
func (s *Service) UpdateStatus(ctx context.Context, deliveryID int64, volunteerID string, req models.UpdateDeliveryRequest) (*models.DeliveryRequest, error) {
	status := models.DeliveryStatus(req.Status)
	if status != models.DeliveryStatusDelivered && status != models.DeliveryStatusCancelled {
		return nil, fmt.Errorf("%w: status must be delivered or cancelled", models.ErrValidation)
	}

	d, err := s.repo.FindPendingForVolunteer(ctx, deliveryID, volunteerID)
	if err != nil {
		return nil, err
	}

	// Mark terminal first: the status guard in the UPDATE makes sure only one
	// of two racing updates wins, so the release below runs at most once.
	if err := s.repo.UpdateStatus(ctx, deliveryID, volunteerID, status); err != nil {
		return nil, err
	}
	d.Status = status

	if status == models.DeliveryStatusCancelled {
		if err := s.ledger.Release(ctx, d.Item, d.Quantity); err != nil {
			return nil, fmt.Errorf("service.UpdateDeliveryStatus: release: %w", err)
		}
		s.logger.Info("returned stock to inventory on cancellation",
			zap.String("item", d.Item), zap.Int("quantity", d.Quantity))
	}

	return d, nil
}

// ListPending returns all pending deliveries for the admin dashboard.
func (s *Service) ListPending(ctx context.Context) ([]*models.DeliveryRequest, error) {
	return s.repo.ListPending(ctx)
}

// ListMine returns the caller's own pending deliveries.
func (s *Service) ListMine(ctx context.Context, volunteerID string) ([]*models.DeliveryRequest, error) {
	return s.repo.ListPendingForVolunteer(ctx, volunteerID)
}
