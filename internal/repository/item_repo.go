package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	apperrors "github.com/S-Soo100/Resource-Planning-System-sub004/pkg/errors"
)

// ItemRepository is the inventory data access interface.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	AdjustQuantity(ctx context.Context, id int64, oldQuantity, newQuantity int) error
	Delete(ctx context.Context, id int64) error
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepo builds the gorm-backed ItemRepository.
func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Where("item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) ListByWarehouse(ctx context.Context, warehouseID int64) ([]model.Item, error) {
	var items []model.Item
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("item_id ASC").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// AdjustQuantity writes the new quantity only if the row still holds the one
// the caller read, so concurrent adjustments cannot silently overwrite each
// other.
func (r *itemRepo) AdjustQuantity(ctx context.Context, id int64, oldQuantity, newQuantity int) error {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("item_id = ? AND quantity = ?", id, oldQuantity).
		Update("quantity", newQuantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}
	return nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Item{}, "item_id = ?", id).Error
}
