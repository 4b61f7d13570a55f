package sos

import (
	"context"
	"errors"
	"fmt"

	"disaster-response/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the contract for the SOS request store.
type RepositoryInterface interface {
	Create(ctx context.Context, sos *models.SosRequest) error
	FindByID(ctx context.Context, id int64) (*models.SosRequest, error)
	// Assign sets status=assigned and the volunteer keys on the request.
	// There is no guard on the current status: an admin may reassign a
	// request at any state.
	Assign(ctx context.Context, id int64, volunteerID, volunteerName string) (*models.SosRequest, error)
	// ResolveForVolunteer sets status=resolved only when the request is
	// assigned to the given volunteer.
	ResolveForVolunteer(ctx context.Context, id int64, volunteerID string) (*models.SosRequest, error)
	ListAll(ctx context.Context) ([]*models.SosRequest, error)
	// ListForVolunteer returns requests assigned to the volunteer plus all
	// pending ones, the volunteer dashboard's working set.
	ListForVolunteer(ctx context.Context, volunteerID string) ([]*models.SosRequest, error)
	ListByReporter(ctx context.Context, reporterID string) ([]*models.SosRequest, error)
}

// Repository is a PostgreSQL implementation of RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new SOS repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const sosColumns = `id, reporter_id, reporter_username, latitude, longitude, description, status, risk_level, assigned_to, assigned_to_name, created_at`

// Create inserts a new SOS request in pending state.
func (r *Repository) Create(ctx context.Context, sos *models.SosRequest) error {
	query := `
		INSERT INTO sos_requests (reporter_id, reporter_username, latitude, longitude, description, status, risk_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		sos.ReporterID, sos.ReporterUsername, sos.Latitude, sos.Longitude,
		sos.Description, sos.Status, sos.RiskLevel).
		Scan(&sos.ID, &sos.CreatedAt)
	if err != nil {
		return fmt.Errorf("repository.CreateSos: %w", err)
	}
	return nil
}

// scanSos is a helper to scan a row into a SosRequest model.
func (r *Repository) scanSos(row pgx.Row) (*models.SosRequest, error) {
	var sos models.SosRequest
	err := row.Scan(
		&sos.ID,
		&sos.ReporterID,
		&sos.ReporterUsername,
		&sos.Latitude,
		&sos.Longitude,
		&sos.Description,
		&sos.Status,
		&sos.RiskLevel,
		&sos.AssignedTo,
		&sos.AssignedToName,
		&sos.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan sos request: %w", err)
	}
	return &sos, nil
}

// FindByID retrieves a single SOS request.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.SosRequest, error) {
	query := `SELECT ` + sosColumns + ` FROM sos_requests WHERE id = $1`

	sos, err := r.scanSos(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindSosByID: %w", err)
	}
	return sos, nil
}

// Assign sets the volunteer on the request and moves it to assigned.
func (r *Repository) Assign(ctx context.Context, id int64, volunteerID, volunteerName string) (*models.SosRequest, error) {
	query := `
		UPDATE sos_requests
		SET status = 'assigned', assigned_to = $1, assigned_to_name = $2
		WHERE id = $3
		RETURNING ` + sosColumns

	sos, err := r.scanSos(r.db.QueryRow(ctx, query, volunteerID, volunteerName, id))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.AssignSos: %w", err)
	}
	return sos, nil
}

// ResolveForVolunteer resolves the request when owned by the volunteer.
func (r *Repository) ResolveForVolunteer(ctx context.Context, id int64, volunteerID string) (*models.SosRequest, error) {
	query := `
		UPDATE sos_requests
		SET status = 'resolved'
		WHERE id = $1 AND assigned_to = $2
		RETURNING ` + sosColumns

	sos, err := r.scanSos(r.db.QueryRow(ctx, query, id, volunteerID))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.ResolveSos: %w", err)
	}
	return sos, nil
}

// ListAll retrieves all SOS requests, newest first (admin map data).
func (r *Repository) ListAll(ctx context.Context) ([]*models.SosRequest, error) {
	query := `SELECT ` + sosColumns + ` FROM sos_requests ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListForVolunteer retrieves the volunteer's assigned plus all pending requests.
func (r *Repository) ListForVolunteer(ctx context.Context, volunteerID string) ([]*models.SosRequest, error) {
	query := `
		SELECT ` + sosColumns + `
		FROM sos_requests
		WHERE assigned_to = $1 OR status = 'pending'
		ORDER BY created_at DESC`
	return r.list(ctx, query, volunteerID)
}

// ListByReporter retrieves the requests submitted by one reporter.
func (r *Repository) ListByReporter(ctx context.Context, reporterID string) ([]*models.SosRequest, error) {
	query := `
		SELECT ` + sosColumns + `
		FROM sos_requests
		WHERE reporter_id = $1
		ORDER BY created_at DESC`
	return r.list(ctx, query, reporterID)
}

func (r *Repository) list(ctx context.Context, query string, args ...interface{}) ([]*models.SosRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.ListSos.Query: %w", err)
	}
	defer rows.Close()

	var requests []*models.SosRequest
	for rows.Next() {
		sos, err := r.scanSos(rows)
		if err != nil {
			return nil, fmt.Errorf("repository.ListSos.Scan: %w", err)
		}
		requests = append(requests, sos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListSos.Rows: %w", err)
	}
	return requests, nil
}
