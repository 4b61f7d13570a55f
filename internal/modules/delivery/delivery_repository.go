package delivery

import (
	"context"
	"errors"
	"fmt"

	"disaster-response/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the delivery request store.
type RepositoryInterface interface {
	Create(ctx context.Context, d *models.DeliveryRequest) error
	FindPendingForVolunteer(ctx context.Context, id int64, volunteerID string) (*models.DeliveryRequest, error)
	// UpdateStatus marks a pending delivery owned by the volunteer terminal.
	UpdateStatus(ctx context.Context, id int64, volunteerID string, status models.DeliveryStatus) error
	ListPending(ctx context.Context) ([]*models.DeliveryRequest, error)
	ListPendingForVolunteer(ctx context.Context, volunteerID string) ([]*models.DeliveryRequest, error)
}

// Repository is a PostgreSQL implementation of RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new delivery repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Create inserts a new delivery request.
func (r *Repository) Create(ctx context.Context, d *models.DeliveryRequest) error {
	query := `
		INSERT INTO resource_deliveries (volunteer_id, volunteer_username, resource_id, item, quantity, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		d.VolunteerID, d.VolunteerUsername, d.ResourceID, d.Item, d.Quantity, d.Status).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.CreateDelivery: %w", err)
	}
	return nil
}

// scanDelivery is a helper to scan a row into a DeliveryRequest model.
func (r *Repository) scanDelivery(row pgx.Row) (*models.DeliveryRequest, error) {
	var d models.DeliveryRequest
	err := row.Scan(
		&d.ID,
		&d.VolunteerID,
		&d.VolunteerUsername,
		&d.ResourceID,
		&d.Item,
		&d.Quantity,
		&d.Status,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan delivery: %w", err)
	}
	return &d, nil
}

// FindPendingForVolunteer retrieves a pending delivery owned by the volunteer.
func (r *Repository) FindPendingForVolunteer(ctx context.Context, id int64, volunteerID string) (*models.DeliveryRequest, error) {
	query := `
		SELECT id, volunteer_id, volunteer_username, resource_id, item, quantity, status, created_at
		FROM resource_deliveries
		WHERE id = $1 AND volunteer_id = $2 AND status = 'pending'`

	d, err := r.scanDelivery(r.db.QueryRow(ctx, query, id, volunteerID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindPendingForVolunteer: %w", err)
	}
	return d, nil
}

// UpdateStatus moves a pending delivery to a terminal status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, volunteerID string, status models.DeliveryStatus) error {
	query := `
		UPDATE resource_deliveries
		SET status = $1
		WHERE id = $2 AND volunteer_id = $3 AND status = 'pending'`

	cmdTag, err := r.db.Exec(ctx, query, status, id, volunteerID)
	if err != nil {
		return fmt.Errorf("repository.UpdateDeliveryStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ListPending retrieves all pending deliveries, newest first (admin view).
func (r *Repository) ListPending(ctx context.Context) ([]*models.DeliveryRequest, error) {
	query := `
		SELECT id, volunteer_id, volunteer_username, resource_id, item, quantity, status, created_at
		FROM resource_deliveries
		WHERE status = 'pending'
		ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListPendingForVolunteer retrieves a volunteer's own pending deliveries.
func (r *Repository) ListPendingForVolunteer(ctx context.Context, volunteerID string) ([]*models.DeliveryRequest, error) {
	query := `
		SELECT id, volunteer_id, volunteer_username, resource_id, item, quantity, status, created_at
		FROM resource_deliveries
		WHERE volunteer_id = $1 AND status = 'pending'
		ORDER BY created_at DESC`
	return r.list(ctx, query, volunteerID)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*models.DeliveryRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.ListDeliveries.Query: %w", err)
	}
	defer rows.Close()

	var deliveries []*models.DeliveryRequest
	for rows.Next() {
		d, err := r.scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListDeliveries.Scan: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListDeliveries.Rows: %w", err)
	}
	return deliveries, nil
}
