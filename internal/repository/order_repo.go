package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

// OrderRepository is the order data access interface.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByTeam(ctx context.Context, teamID int64, page, pageSize int) ([]model.Order, int64, error)
	// ListByDeliveryRange returns orders delivering inside [from, to],
	// both inclusive, for the calendar window.
	ListByDeliveryRange(ctx context.Context, teamID int64, from, to time.Time) ([]model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id int64) error
}

type orderRepo struct {
	db *gorm.DB
}

// NewOrderRepo builds the gorm-backed OrderRepository.
func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Item").
		Preload("Requester").
		Where("order_id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) ListByTeam(ctx context.Context, teamID int64, page, pageSize int) ([]model.Order, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&model.Order{}).Where("team_id = ?", teamID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("team_id = ?", teamID).
		Order("delivery_date DESC, order_id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) ListByDeliveryRange(ctx context.Context, teamID int64, from, to time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND delivery_date BETWEEN ? AND ?", teamID, from, to).
		Order("delivery_date ASC, order_id ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, "order_id = ?", id).Error
}
