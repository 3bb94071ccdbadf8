package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

// HistoryRepository is the append-only change-history data access interface.
// Listings are newest-first to match the client cache ordering.
type HistoryRepository interface {
	Create(ctx context.Context, change *model.ChangeHistory) error
	ListByEntity(ctx context.Context, entityType string, entityID int64, page, pageSize int) ([]model.ChangeHistory, int64, error)
	ListByTeam(ctx context.Context, teamID int64, types []string, page, pageSize int) ([]model.ChangeHistory, int64, error)
}

type historyRepo struct {
	db *gorm.DB
}

// NewHistoryRepo builds the gorm-backed HistoryRepository.
func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Create(ctx context.Context, change *model.ChangeHistory) error {
	return r.db.WithContext(ctx).Create(change).Error
}

func (r *historyRepo) ListByEntity(ctx context.Context, entityType string, entityID int64, page, pageSize int) ([]model.ChangeHistory, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.ChangeHistory{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var changes []model.ChangeHistory
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC, change_id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&changes).Error
	return changes, total, err
}

func (r *historyRepo) ListByTeam(ctx context.Context, teamID int64, types []string, page, pageSize int) ([]model.ChangeHistory, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&model.ChangeHistory{}).
		Where("team_id = ?", teamID)
	if len(types) > 0 {
		base = base.Where("entity_type IN ?", types)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Where("team_id = ?", teamID)
	if len(types) > 0 {
		query = query.Where("entity_type IN ?", types)
	}

	var changes []model.ChangeHistory
	err := query.
		Order("created_at DESC, change_id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&changes).Error
	return changes, total, err
}
