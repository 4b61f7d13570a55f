package sos

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"disaster-response/internal/models"
	"disaster-response/internal/notify"
	"disaster-response/internal/predict"

	"go.uber.org/zap"
)

// VolunteerDirectory resolves volunteer usernames to stable identities.
// The username stays on the request only as a display cache.
type VolunteerDirectory interface {
	FindVolunteerByUsername(ctx context.Context, username string) (*models.User, error)
}

// AlertSender delivers out-of-band alerts for high-risk SOS requests. It is
// best-effort: failures are logged and never fail the creation.
type AlertSender interface {
	SendHighRiskAlert(ctx context.Context, sos *models.SosRequest) error
}

// ServiceInterface defines the contract for the SOS lifecycle.
type ServiceInterface interface {
	Create(ctx context.Context, reporterID, reporterUsername string, req models.CreateSosRequest) (*models.SosRequest, error)
	Assign(ctx context.Context, sosID int64, volunteerName string) (*models.SosRequest, error)
	Resolve(ctx context.Context, sosID int64, volunteerID string) (*models.SosRequest, error)
	ListAll(ctx context.Context) ([]*models.SosRequest, error)
	ListForVolunteer(ctx context.Context, volunteerID string) ([]*models.SosRequest, error)
	ListMine(ctx context.Context, reporterID string) ([]*models.SosRequest, error)
}

// Service implements the SOS lifecycle state machine.
type Service struct {
	repo       RepositoryInterface
	volunteers VolunteerDirectory
	predictor  predict.Predictor
	publisher  notify.Publisher
	alerts     AlertSender // optional, may be nil
	logger     *zap.Logger
}

// NewService creates a new SOS service. alerts may be nil when no alert
// channel is configured.
func NewService(
	repo RepositoryInterface,
	volunteers VolunteerDirectory,
	predictor predict.Predictor,
	publisher notify.Publisher,
	alerts AlertSender,
	logger *zap.Logger,
) *Service {
	return &Service{
		repo:       repo,
		volunteers: volunteers,
		predictor:  predictor,
		publisher:  publisher,
		alerts:     alerts,
		logger:     logger,
	}
}

// eventPayload is the denormalized snapshot broadcast on state changes.
func eventPayload(sos *models.SosRequest) map[string]interface{} {
	var assignedTo interface{}
	if sos.AssignedToName != nil {
		assignedTo = *sos.AssignedToName
	}
	return map[string]interface{}{
		"id":          sos.ID,
		"username":    sos.ReporterUsername,
		"description": sos.Description,
		"latitude":    sos.Latitude,
		"longitude":   sos.Longitude,
		"status":      sos.Status,
		"risk_level":  sos.RiskLevel,
		"assigned_to": assignedTo,
		"timestamp":   sos.CreatedAt.Format(time.RFC3339),
	}
}

// Create validates and persists a new SOS request in pending state. The risk
// estimate comes from the predictor; a predictor failure downgrades the risk
// to "Error" and never blocks the creation. The persisted record is then
// broadcast to both role rooms.
func (s *Service) Create(ctx context.Context, reporterID, reporterUsername string, req models.CreateSosRequest) (*models.SosRequest, error) {
	// Counted in runes to match the request validator's min=10.
	if utf8.RuneCountInString(strings.TrimSpace(req.Description)) < 10 {
		return nil, fmt.Errorf("%w: description must be at least 10 characters", models.ErrValidation)
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, fmt.Errorf("%w: latitude/longitude out of range", models.ErrValidation)
	}

	risk := models.RiskUnknown
	if s.predictor != nil {
		sample := predict.SampleEnvironment(req.Latitude, req.Longitude)
		predicted, err := s.predictor.Predict(sample)
		if err != nil {
			s.logger.Error("risk prediction failed", zap.Float64("lat", req.Latitude),
				zap.Float64("lng", req.Longitude), zap.Error(err))
			risk = models.RiskError
		} else {
			risk = predicted
		}
	} else {
		s.logger.Warn("no risk predictor configured, storing Unknown")
	}

	sos := &models.SosRequest{
		ReporterID:       reporterID,
		ReporterUsername: reporterUsername,
		Latitude:         req.Latitude,
		Longitude:        req.Longitude,
		Description:      strings.TrimSpace(req.Description),
		Status:           models.SosStatusPending,
		RiskLevel:        risk,
	}
	if err := s.repo.Create(ctx, sos); err != nil {
		return nil, fmt.Errorf("service.CreateSos: %w", err)
	}

	s.publisher.Publish(notify.Event{
		Type:    notify.EventNewSosAlert,
		Rooms:   []string{notify.RoomAdmin, notify.RoomVolunteer},
		Payload: eventPayload(sos),
	})

	if sos.RiskLevel == models.RiskHigh && s.alerts != nil {
		if err := s.alerts.SendHighRiskAlert(ctx, sos); err != nil {
			s.logger.Warn("high-risk alert email failed", zap.Int64("sos_id", sos.ID), zap.Error(err))
		}
	}

	s.logger.Info("sos alert created", zap.Int64("sos_id", sos.ID),
		zap.String("reporter", reporterUsername), zap.String("risk", string(sos.RiskLevel)))
	return sos, nil
}

// Assign resolves the volunteer by username and moves the request to
// assigned. Re-assignment is allowed at any state, including resolved;
// repeating an assignment with the same volunteer is a no-op beyond the
// redundant broadcast.
func (s *Service) Assign(ctx context.Context, sosID int64, volunteerName string) (*models.SosRequest, error) {
	volunteer, err := s.volunteers.FindVolunteerByUsername(ctx, volunteerName)
	if err != nil {
		return nil, fmt.Errorf("service.AssignSos: volunteer %q: %w", volunteerName, err)
	}

	sos, err := s.repo.Assign(ctx, sosID, volunteer.ID, volunteer.Username)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notify.Event{
		Type:    notify.EventSosStatusUpdated,
		Rooms:   []string{notify.RoomAdmin, notify.RoomVolunteer},
		Payload: eventPayload(sos),
	})

	s.logger.Info("sos assigned", zap.Int64("sos_id", sos.ID), zap.String("volunteer", volunteer.Username))
	return sos, nil
}

// Resolve marks the request resolved when the caller is its assignee.
func (s *Service) Resolve(ctx context.Context, sosID int64, volunteerID string) (*models.SosRequest, error) {
	current, err := s.repo.FindByID(ctx, sosID)
	if err != nil {
		return nil, err
	}
	if current.AssignedTo == nil || *current.AssignedTo != volunteerID {
		return nil, fmt.Errorf("%w: sos request is not assigned to you", models.ErrUnauthorized)
	}

	sos, err := s.repo.ResolveForVolunteer(ctx, sosID, volunteerID)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notify.Event{
		Type:    notify.EventSosStatusUpdated,
		Rooms:   []string{notify.RoomAdmin},
		Payload: eventPayload(sos),
	})

	s.logger.Info("sos resolved", zap.Int64("sos_id", sos.ID), zap.String("volunteer_id", volunteerID))
	return sos, nil
}

// ListAll returns every SOS request (admin map data).
func (s *Service) ListAll(ctx context.Context) ([]*models.SosRequest, error) {
	return s.repo.ListAll(ctx)
}

// ListForVolunteer returns the volunteer's working set: assigned plus pending.
func (s *Service) ListForVolunteer(ctx context.Context, volunteerID string) ([]*models.SosRequest, error) {
	return s.repo.ListForVolunteer(ctx, volunteerID)
}

// ListMine returns the reporter's own requests.
func (s *Service) ListMine(ctx context.Context, reporterID string) ([]*models.SosRequest, error) {
	return s.repo.ListByReporter(ctx, reporterID)
}
