package inventory

import (
	"context"
	"errors"
	"fmt"

	"disaster-response/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the inventory ledger store.
type RepositoryInterface interface {
	Create(ctx context.Context, item *models.ResourceItem) error
	Update(ctx context.Context, id int64, quantity int, status string) (*models.ResourceItem, error)
	FindByName(ctx context.Context, name string) (*models.ResourceItem, error)
	List(ctx context.Context) ([]*models.ResourceItem, error)
	ListInStock(ctx context.Context) ([]*models.ResourceItem, error)
	// ReserveStock decrements the named resource's quantity if and only if
	// enough stock remains, in a single statement, and returns the remaining
	// quantity. Returns *models.InsufficientStockError when stock is short
	// and models.ErrNotFound when the resource does not exist.
	ReserveStock(ctx context.Context, name string, quantity int) (int, error)
	// ReleaseStock increments the named resource's quantity.
	ReleaseStock(ctx context.Context, name string, quantity int) error
}

// Repository is a PostgreSQL implementation of RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new inventory repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// Create inserts a new ledger entry.
func (r *Repository) Create(ctx context.Context, item *models.ResourceItem) error {
	query := `
		INSERT INTO resources (name, quantity, status)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRow(ctx, query, item.Name, item.Quantity, item.Status).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("repository.CreateResource: %w", err)
	}
	return nil
}

// Update sets the quantity and status of an existing entry.
func (r *Repository) Update(ctx context.Context, id int64, quantity int, status string) (*models.ResourceItem, error) {
	query := `
		UPDATE resources
		SET quantity = $1, status = $2
		WHERE id = $3
		RETURNING id, name, quantity, status`

	item, err := r.scanResource(r.db.QueryRow(ctx, query, quantity, status, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.UpdateResource: %w", err)
	}
	return item, nil
}

// scanResource is a helper to scan a row into a ResourceItem model.
func (r *Repository) scanResource(row pgx.Row) (*models.ResourceItem, error) {
	var item models.ResourceItem
	err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan resource: %w", err)
	}
	return &item, nil
}

// FindByName retrieves a single ledger entry by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.ResourceItem, error) {
	query := `
		SELECT id, name, quantity, status
		FROM resources
		WHERE name = $1`

	item, err := r.scanResource(r.db.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByName: %w", err)
	}
	return item, nil
}

// List retrieves every ledger entry ordered by name.
func (r *Repository) List(ctx context.Context) ([]*models.ResourceItem, error) {
	return r.list(ctx, `
		SELECT id, name, quantity, status
		FROM resources
		ORDER BY name`)
}

// ListInStock retrieves entries with stock remaining, for volunteer views.
func (r *Repository) ListInStock(ctx context.Context) ([]*models.ResourceItem, error) {
	return r.list(ctx, `
		SELECT id, name, quantity, status
		FROM resources
		WHERE quantity > 0
		ORDER BY name`)
}

func (r *Repository) list(ctx context.Context, query string) ([]*models.ResourceItem, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository.ListResources.Query: %w", err)
	}
	defer rows.Close()

	var items []*models.ResourceItem
	for rows.Next() {
		item, err := r.scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListResources.Scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListResources.Rows: %w", err)
	}
	return items, nil
}

// ReserveStock performs the atomic check-and-decrement. Two concurrent
// reservations can never both pass a stale availability check because the
// guard and the decrement are one statement.
func (r *Repository) ReserveStock(ctx context.Context, name string, quantity int) (int, error) {
	query := `
		UPDATE resources
		SET quantity = quantity - $1
		WHERE name = $2 AND quantity >= $1
		RETURNING quantity`

	var remaining int
	err := r.db.QueryRow(ctx, query, quantity, name).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("repository.ReserveStock: %w", err)
	}

	// No row updated: either the resource is unknown or stock is short.
	item, findErr := r.FindByName(ctx, name)
	if findErr != nil {
		return 0, findErr
	}
	return 0, &models.InsufficientStockError{
		Item:      name,
		Available: item.Quantity,
		Requested: quantity,
	}
}

// ReleaseStock returns previously reserved quantity to the ledger.
func (r *Repository) ReleaseStock(ctx context.Context, name string, quantity int) error {
	query := `
		UPDATE resources
		SET quantity = quantity + $1
		WHERE name = $2`

	cmdTag, err := r.db.Exec(ctx, query, quantity, name)
	if err != nil {
		return fmt.Errorf("repository.ReleaseStock: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
