package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/redis"
)

// HistoryService persists change-history rows and fans them out to live
// stream subscribers. With Redis available the record travels through the
// pub/sub channel so every instance's hub sees it; without Redis it goes
// straight onto the in-process bus.
type HistoryService struct {
	repo        repository.HistoryRepository
	eventBus    *bus.Bus
	redisClient *redis.Client // nil when running without redis
	logger      *zap.Logger
}

// NewHistoryService builds the history service.
func NewHistoryService(
	repo repository.HistoryRepository,
	eventBus *bus.Bus,
	redisClient *redis.Client,
	logger *zap.Logger,
) *HistoryService {
	return &HistoryService{
		repo:        repo,
		eventBus:    eventBus,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Record persists one change row, then publishes it. Persistence failure is
// returned to the caller; publish failure is logged and the record falls
// back to the in-process bus so local subscribers still hear about it.
func (s *HistoryService) Record(ctx context.Context, change *model.ChangeHistory) error {
	if err := s.repo.Create(ctx, change); err != nil {
		return fmt.Errorf("record change history: %w", err)
	}

	if s.redisClient != nil {
		payload, err := json.Marshal(change)
		if err == nil {
			if err = s.redisClient.PublishChange(ctx, payload); err == nil {
				return nil
			}
		}
		s.logger.Warn("change fan-out via redis failed, falling back to local bus",
			zap.Int64("change_id", change.ChangeID),
			zap.Error(err),
		)
	}

	s.eventBus.Publish(bus.ChangeRecorded{Change: *change})
	return nil
}

// RecordAll persists and publishes a batch, e.g. the per-field rows of one
// update. Stops at the first persistence failure.
func (s *HistoryService) RecordAll(ctx context.Context, changes []model.ChangeHistory) error {
	for i := range changes {
		if err := s.Record(ctx, &changes[i]); err != nil {
			return err
		}
	}
	return nil
}

// ListByEntity returns the newest-first change page for one entity.
func (s *HistoryService) ListByEntity(ctx context.Context, entityType string, entityID int64, page, pageSize int) ([]dto.ChangeHistoryItem, int64, error) {
	rows, total, err := s.repo.ListByEntity(ctx, entityType, entityID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list entity history: %w", err)
	}
	return toHistoryItems(rows), total, nil
}

// ListByTeam returns the newest-first change page across a team, optionally
// restricted to a set of entity types.
func (s *HistoryService) ListByTeam(ctx context.Context, teamID int64, types []string, page, pageSize int) ([]dto.ChangeHistoryItem, int64, error) {
	rows, total, err := s.repo.ListByTeam(ctx, teamID, types, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list team history: %w", err)
	}
	return toHistoryItems(rows), total, nil
}

func toHistoryItems(rows []model.ChangeHistory) []dto.ChangeHistoryItem {
	items := make([]dto.ChangeHistoryItem, len(rows))
	for i := range rows {
		items[i] = dto.ToChangeHistoryItem(&rows[i])
	}
	return items
}

// stamp fills the actor columns of a change row.
func stamp(change *model.ChangeHistory, actor Actor) *model.ChangeHistory {
	change.UserName = actor.Name
	change.UserEmail = actor.Email
	change.AccessLevel = actor.AccessLevel
	return change
}
