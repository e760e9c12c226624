package service

import (
	"context"
	"encoding/json"

	"app/internal/model"
	"app/internal/repository"

	"github.com/rs/zerolog"
)

// ActivityService appends audit events. Recording is fire-and-forget: a
// failed audit write is logged but never fails the operation that raised it.
type ActivityService interface {
	Record(ctx context.Context, e ActivityEvent)
}

// ActivityEvent describes one audit entry.
type ActivityEvent struct {
	UserID      string
	Action      string
	Category    string
	Description string
	Metadata    any
	IPAddress   string
	UserAgent   string
}

type activityService struct {
	repo   repository.ActivityRepository
	logger zerolog.Logger
}

func NewActivityService(repo repository.ActivityRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("service", "ActivityService").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, e ActivityEvent) {
	entry := &model.ActivityLog{
		UserID:   e.UserID,
		Action:   e.Action,
		Category: e.Category,
	}
	if e.Description != "" {
		entry.Description = &e.Description
	}
	if e.IPAddress != "" {
		entry.IPAddress = &e.IPAddress
	}
	if e.UserAgent != "" {
		entry.UserAgent = &e.UserAgent
	}
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			s.logger.Error().Err(err).Str("action", e.Action).Msg("Failed to marshal activity metadata")
		} else {
			entry.Metadata = raw
		}
	}

	if err := s.repo.InsertActivity(ctx, entry); err != nil {
		s.logger.Error().Err(err).Str("user_id", e.UserID).Str("action", e.Action).Msg("Failed to record activity")
	}
}
