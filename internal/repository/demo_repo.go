package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

// DemoRepository is the demonstration data access interface.
type DemoRepository interface {
	Create(ctx context.Context, demo *model.Demo) error
	GetByID(ctx context.Context, id int64) (*model.Demo, error)
	ListByTeam(ctx context.Context, teamID int64, page, pageSize int) ([]model.Demo, int64, error)
	// ListOverlappingRange returns demos whose [start, end] intersects
	// [from, to], for the calendar window.
	ListOverlappingRange(ctx context.Context, teamID int64, from, to time.Time) ([]model.Demo, error)
	Update(ctx context.Context, demo *model.Demo) error
	Delete(ctx context.Context, id int64) error
}

type demoRepo struct {
	db *gorm.DB
}

// NewDemoRepo builds the gorm-backed DemoRepository.
func NewDemoRepo(db *gorm.DB) DemoRepository {
	return &demoRepo{db: db}
}

func (r *demoRepo) Create(ctx context.Context, demo *model.Demo) error {
	return r.db.WithContext(ctx).Create(demo).Error
}

func (r *demoRepo) GetByID(ctx context.Context, id int64) (*model.Demo, error) {
	var demo model.Demo
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Where("demo_id = ?", id).
		First(&demo).Error
	if err != nil {
		return nil, err
	}
	return &demo, nil
}

func (r *demoRepo) ListByTeam(ctx context.Context, teamID int64, page, pageSize int) ([]model.Demo, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&model.Demo{}).Where("team_id = ?", teamID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var demos []model.Demo
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("demo_start_date DESC, demo_id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&demos).Error
	return demos, total, err
}

func (r *demoRepo) ListOverlappingRange(ctx context.Context, teamID int64, from, to time.Time) ([]model.Demo, error) {
	var demos []model.Demo
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND demo_start_date <= ? AND demo_end_date >= ?", teamID, to, from).
		Order("demo_start_date ASC, demo_id ASC").
		Find(&demos).Error
	return demos, err
}

func (r *demoRepo) Update(ctx context.Context, demo *model.Demo) error {
	return r.db.WithContext(ctx).Save(demo).Error
}

func (r *demoRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Demo{}, "demo_id = ?", id).Error
}
