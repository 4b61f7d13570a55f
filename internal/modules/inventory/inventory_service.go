package inventory

import (
	"context"
	"fmt"
	"strings"

	"disaster-response/internal/models"
)

// ServiceInterface defines the contract for the inventory ledger.
type ServiceInterface interface {
	Add(ctx context.Context, req models.AddResourceRequest) (*models.ResourceItem, error)
	Update(ctx context.Context, id int64, req models.UpdateResourceRequest) (*models.ResourceItem, error)
	FindByName(ctx context.Context, name string) (*models.ResourceItem, error)
	List(ctx context.Context) ([]*models.ResourceItem, error)
	ListInStock(ctx context.Context) ([]*models.ResourceItem, error)
	Reserve(ctx context.Context, name string, quantity int) (int, error)
	Release(ctx context.Context, name string, quantity int) error
}

// Service implements the inventory ledger logic.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new inventory service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Add creates a new ledger entry.
func (s *Service) Add(ctx context.Context, req models.AddResourceRequest) (*models.ResourceItem, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Status) == "" {
		return nil, fmt.Errorf("%w: name and status are required", models.ErrValidation)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", models.ErrValidation)
	}

	item := &models.ResourceItem{
		Name:     strings.TrimSpace(req.Name),
		Quantity: req.Quantity,
		Status:   req.Status,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("service.AddResource: %w", err)
	}
	return item, nil
}

// Update sets an entry's quantity and status.
func (s *Service) Update(ctx context.Context, id int64, req models.UpdateResourceRequest) (*models.ResourceItem, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", models.ErrValidation)
	}
	if strings.TrimSpace(req.Status) == "" {
		return nil, fmt.Errorf("%w: status is required", models.ErrValidation)
	}

	item, err := s.repo.Update(ctx, id, req.Quantity, req.Status)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindByName looks up a ledger entry by its unique name.
func (s *Service) FindByName(ctx context.Context, name string) (*models.ResourceItem, error) {
	return s.repo.FindByName(ctx, name)
}

// List returns the full ledger.
func (s *Service) List(ctx context.Context) ([]*models.ResourceItem, error) {
	return s.repo.List(ctx)
}

// ListInStock returns entries with stock remaining.
func (s *Service) ListInStock(ctx context.Context) ([]*models.ResourceItem, error) {
	return s.repo.ListInStock(ctx)
}

// Reserve atomically deducts quantity from the named resource and returns the
// remaining stock. On insufficient stock no mutation happens and the error
// carries the available/requested counts.
func (s *Service) Reserve(ctx context.Context, name string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive", models.ErrValidation)
	}
	return s.repo.ReserveStock(ctx, name, quantity)
}

// Release returns quantity to the named resource. There is no upper bound;
// total physical stock is administered out-of-band.
func (s *Service) Release(ctx context.Context, name string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", models.ErrValidation)
	}
	return s.repo.ReleaseStock(ctx, name, quantity)
}
