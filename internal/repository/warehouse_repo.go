package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

// WarehouseRepository is the warehouse data access interface.
type WarehouseRepository interface {
	Create(ctx context.Context, wh *model.Warehouse) error
	GetByID(ctx context.Context, id int64) (*model.Warehouse, error)
	ListByTeam(ctx context.Context, teamID int64) ([]model.Warehouse, error)
	Update(ctx context.Context, wh *model.Warehouse) error
}

type warehouseRepo struct {
	db *gorm.DB
}

// NewWarehouseRepo builds the gorm-backed WarehouseRepository.
func NewWarehouseRepo(db *gorm.DB) WarehouseRepository {
	return &warehouseRepo{db: db}
}

func (r *warehouseRepo) Create(ctx context.Context, wh *model.Warehouse) error {
	return r.db.WithContext(ctx).Create(wh).Error
}

func (r *warehouseRepo) GetByID(ctx context.Context, id int64) (*model.Warehouse, error) {
	var wh model.Warehouse
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("warehouse_id = ?", id).
		First(&wh).Error
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *warehouseRepo) ListByTeam(ctx context.Context, teamID int64) ([]model.Warehouse, error) {
	var whs []model.Warehouse
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("warehouse_id ASC").
		Find(&whs).Error
	return whs, err
}

func (r *warehouseRepo) Update(ctx context.Context, wh *model.Warehouse) error {
	return r.db.WithContext(ctx).Save(wh).Error
}
