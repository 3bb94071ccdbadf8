package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
	apperrors "github.com/S-Soo100/Resource-Planning-System-sub004/pkg/errors"
)

var (
	ErrItemNotFound      = errors.New("item not found")
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrInsufficientStock = errors.New("quantity cannot go below zero")
	ErrForbidden         = errors.New("resource belongs to another team")
)

// ItemService manages inventory items. Every mutation records change
// history so item channels see it live.
type ItemService struct {
	items      repository.ItemRepository
	warehouses repository.WarehouseRepository
	history    *HistoryService
	logger     *zap.Logger
}

// NewItemService builds the item service.
func NewItemService(
	items repository.ItemRepository,
	warehouses repository.WarehouseRepository,
	history *HistoryService,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:      items,
		warehouses: warehouses,
		history:    history,
		logger:     logger,
	}
}

// Create registers an item in a warehouse owned by the actor's team.
func (s *ItemService) Create(ctx context.Context, actor Actor, req *dto.CreateItemRequest) (*dto.ItemResponse, error) {
	wh, err := s.loadWarehouse(ctx, actor, req.WarehouseID)
	if err != nil {
		return nil, err
	}

	item := &model.Item{
		WarehouseID: wh.WarehouseID,
		SKU:         req.SKU,
		Name:        req.Name,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.record(ctx, actor, wh.TeamID, item.ItemID, model.ChangeHistory{
		Action:  model.ActionCreate,
		Remarks: item.Name,
	})

	resp := toItemResponse(item)
	return &resp, nil
}

// Get returns one item.
func (s *ItemService) Get(ctx context.Context, actor Actor, id int64) (*dto.ItemResponse, error) {
	item, _, err := s.loadItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toItemResponse(item)
	return &resp, nil
}

// ListByWarehouse returns every item of one warehouse.
func (s *ItemService) ListByWarehouse(ctx context.Context, actor Actor, warehouseID int64) ([]dto.ItemResponse, error) {
	if _, err := s.loadWarehouse(ctx, actor, warehouseID); err != nil {
		return nil, err
	}

	items, err := s.items.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	out := make([]dto.ItemResponse, len(items))
	for i := range items {
		out[i] = toItemResponse(&items[i])
	}
	return out, nil
}

// Update applies the non-nil fields and records one change row per field
// that actually changed.
func (s *ItemService) Update(ctx context.Context, actor Actor, id int64, req *dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, teamID, err := s.loadItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var changes []model.ChangeHistory
	if req.Name != nil && *req.Name != item.Name {
		changes = append(changes, fieldChange("name", "Name", item.Name, *req.Name))
		item.Name = *req.Name
	}
	if req.UnitPrice != nil && *req.UnitPrice != item.UnitPrice {
		changes = append(changes, fieldChange("unit_price", "Unit price",
			strconv.FormatInt(item.UnitPrice, 10), strconv.FormatInt(*req.UnitPrice, 10)))
		item.UnitPrice = *req.UnitPrice
	}

	if len(changes) > 0 {
		if err := s.items.Update(ctx, item); err != nil {
			return nil, fmt.Errorf("update item: %w", err)
		}
		for i := range changes {
			s.record(ctx, actor, teamID, item.ItemID, changes[i])
		}
	}

	resp := toItemResponse(item)
	return &resp, nil
}

// AdjustQuantity moves stock by a signed delta. The resulting quantity must
// stay non-negative.
func (s *ItemService) AdjustQuantity(ctx context.Context, actor Actor, id int64, req *dto.AdjustQuantityRequest) (*dto.ItemResponse, error) {
	item, teamID, err := s.loadItem(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	next := item.Quantity + req.Delta
	if next < 0 {
		return nil, ErrInsufficientStock
	}

	old := item.Quantity
	if err := s.items.AdjustQuantity(ctx, item.ItemID, old, next); err != nil {
		if errors.Is(err, apperrors.ErrOptimisticLock) {
			return nil, err
		}
		return nil, fmt.Errorf("adjust quantity: %w", err)
	}
	item.Quantity = next

	s.record(ctx, actor, teamID, item.ItemID, model.ChangeHistory{
		Action:     model.ActionQuantityChange,
		Field:      "quantity",
		FieldLabel: "Quantity",
		OldValue:   strconv.Itoa(old),
		NewValue:   strconv.Itoa(next),
		Remarks:    req.Remarks,
	})

	resp := toItemResponse(item)
	return &resp, nil
}

// Delete removes an item and records the deletion.
func (s *ItemService) Delete(ctx context.Context, actor Actor, id int64) error {
	item, teamID, err := s.loadItem(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.items.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.record(ctx, actor, teamID, id, model.ChangeHistory{
		Action:  model.ActionDelete,
		Remarks: item.Name,
	})
	return nil
}

// loadItem fetches an item and resolves its owning team, enforcing that
// non-admin actors stay inside their own team.
func (s *ItemService) loadItem(ctx context.Context, actor Actor, id int64) (*model.Item, int64, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrItemNotFound
		}
		return nil, 0, fmt.Errorf("load item: %w", err)
	}

	teamID := int64(0)
	if item.Warehouse != nil {
		teamID = item.Warehouse.TeamID
	}
	if actor.AccessLevel != model.AccessAdmin && teamID != actor.TeamID {
		return nil, 0, ErrForbidden
	}
	return item, teamID, nil
}

func (s *ItemService) loadWarehouse(ctx context.Context, actor Actor, id int64) (*model.Warehouse, error) {
	wh, err := s.warehouses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("load warehouse: %w", err)
	}
	if actor.AccessLevel != model.AccessAdmin && wh.TeamID != actor.TeamID {
		return nil, ErrForbidden
	}
	return wh, nil
}

func (s *ItemService) record(ctx context.Context, actor Actor, teamID, itemID int64, change model.ChangeHistory) {
	change.EntityType = model.EntityItem
	change.EntityID = itemID
	change.TeamID = teamID
	stamp(&change, actor)

	if err := s.history.Record(ctx, &change); err != nil {
		// The mutation already committed; surface the gap in the audit
		// trail instead of failing the request.
		s.logger.Error("item change history write failed",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)
	}
}

// fieldChange builds one per-field update row.
func fieldChange(field, label, oldValue, newValue string) model.ChangeHistory {
	return model.ChangeHistory{
		Action:     model.ActionUpdate,
		Field:      field,
		FieldLabel: label,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
}

func toItemResponse(item *model.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:          item.ItemID,
		WarehouseID: item.WarehouseID,
		SKU:         item.SKU,
		Name:        item.Name,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}
