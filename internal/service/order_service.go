package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/calendar"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderTransition     = errors.New("order status transition not allowed")
	ErrOrderNotEditable    = errors.New("order can no longer be edited")
	ErrOrderNotDeletable   = errors.New("order can no longer be deleted")
	ErrOrderLineItem       = errors.New("order references an unknown item")
	ErrInvalidDeliveryDate = errors.New("invalid delivery date")
)

// OrderService manages delivery requests through their lifecycle
// (requested → approved → shipped → delivered). Every mutation records
// change history.
type OrderService struct {
	orders  repository.OrderRepository
	items   repository.ItemRepository
	history *HistoryService
	logger  *zap.Logger
}

// NewOrderService builds the order service.
func NewOrderService(
	orders repository.OrderRepository,
	items repository.ItemRepository,
	history *HistoryService,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:  orders,
		items:   items,
		history: history,
		logger:  logger,
	}
}

// Create submits a new order in the actor's team.
func (s *OrderService) Create(ctx context.Context, actor Actor, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	deliveryDate, err := calendar.ParseDate(req.DeliveryDate)
	if err != nil {
		return nil, ErrInvalidDeliveryDate
	}

	lines := make([]model.OrderItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		if _, err := s.items.GetByID(ctx, line.ItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOrderLineItem
			}
			return nil, fmt.Errorf("check order line item: %w", err)
		}
		lines = append(lines, model.OrderItem{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	order := &model.Order{
		TeamID:       actor.TeamID,
		Title:        req.Title,
		Receiver:     req.Receiver,
		ReceiverAddr: req.ReceiverAddr,
		DeliveryDate: deliveryDate,
		Status:       model.OrderRequested,
		RequesterID:  &actor.UserID,
		Remarks:      req.Remarks,
		Items:        lines,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.record(ctx, actor, order.TeamID, order.OrderID, model.ChangeHistory{
		Action:  model.ActionCreate,
		Remarks: order.Title,
	})

	resp := toOrderResponse(order)
	return &resp, nil
}

// Get returns one order with its lines.
func (s *OrderService) Get(ctx context.Context, actor Actor, id int64) (*dto.OrderResponse, error) {
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// List returns the actor's team orders, newest delivery first.
func (s *OrderService) List(ctx context.Context, actor Actor, page, pageSize int) ([]dto.OrderResponse, int64, error) {
	orders, total, err := s.orders.ListByTeam(ctx, actor.TeamID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	out := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i])
	}
	return out, total, nil
}

// Update applies the non-nil fields while the order is still editable
// (before shipping) and records one change row per changed field.
func (s *OrderService) Update(ctx context.Context, actor Actor, id int64, req *dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderRequested && order.Status != model.OrderApproved {
		return nil, ErrOrderNotEditable
	}

	var changes []model.ChangeHistory
	if req.Title != nil && *req.Title != order.Title {
		changes = append(changes, fieldChange("title", "Title", order.Title, *req.Title))
		order.Title = *req.Title
	}
	if req.Receiver != nil && *req.Receiver != order.Receiver {
		changes = append(changes, fieldChange("receiver", "Receiver", order.Receiver, *req.Receiver))
		order.Receiver = *req.Receiver
	}
	if req.ReceiverAddr != nil && *req.ReceiverAddr != order.ReceiverAddr {
		changes = append(changes, fieldChange("receiver_addr", "Receiver address", order.ReceiverAddr, *req.ReceiverAddr))
		order.ReceiverAddr = *req.ReceiverAddr
	}
	if req.DeliveryDate != nil {
		next, err := calendar.ParseDate(*req.DeliveryDate)
		if err != nil {
			return nil, ErrInvalidDeliveryDate
		}
		if !next.Equal(order.DeliveryDate) {
			changes = append(changes, fieldChange("delivery_date", "Delivery date",
				calendar.FormatDate(order.DeliveryDate), calendar.FormatDate(next)))
			order.DeliveryDate = next
		}
	}
	if req.Remarks != nil && *req.Remarks != order.Remarks {
		changes = append(changes, fieldChange("remarks", "Remarks", order.Remarks, *req.Remarks))
		order.Remarks = *req.Remarks
	}

	if len(changes) > 0 {
		if err := s.orders.Update(ctx, order); err != nil {
			return nil, fmt.Errorf("update order: %w", err)
		}
		for i := range changes {
			s.record(ctx, actor, order.TeamID, order.OrderID, changes[i])
		}
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// ChangeStatus moves the order along its lifecycle, rejecting transitions
// the state machine does not allow.
func (s *OrderService) ChangeStatus(ctx context.Context, actor Actor, id int64, req *dto.ChangeStatusRequest) (*dto.OrderResponse, error) {
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !model.ValidOrderTransition(order.Status, req.Status) {
		return nil, ErrOrderTransition
	}

	old := order.Status
	order.Status = req.Status
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("change order status: %w", err)
	}

	s.record(ctx, actor, order.TeamID, order.OrderID, model.ChangeHistory{
		Action:     model.ActionStatusChange,
		Field:      "status",
		FieldLabel: "Status",
		OldValue:   old,
		NewValue:   req.Status,
		Remarks:    req.Remarks,
	})

	resp := toOrderResponse(order)
	return &resp, nil
}

// Delete removes an order that has not entered fulfilment.
func (s *OrderService) Delete(ctx context.Context, actor Actor, id int64) error {
	order, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if order.Status != model.OrderRequested && order.Status != model.OrderCancelled {
		return ErrOrderNotDeletable
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.record(ctx, actor, order.TeamID, id, model.ChangeHistory{
		Action:  model.ActionDelete,
		Remarks: order.Title,
	})
	return nil
}

func (s *OrderService) load(ctx context.Context, actor Actor, id int64) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}
	if actor.AccessLevel != model.AccessAdmin && order.TeamID != actor.TeamID {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *OrderService) record(ctx context.Context, actor Actor, teamID, orderID int64, change model.ChangeHistory) {
	change.EntityType = model.EntityOrder
	change.EntityID = orderID
	change.TeamID = teamID
	stamp(&change, actor)

	if err := s.history.Record(ctx, &change); err != nil {
		s.logger.Error("order change history write failed",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
	}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, len(order.Items))
	for i, line := range order.Items {
		lines[i] = dto.OrderLineResponse{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
		}
		if line.Item != nil {
			lines[i].ItemName = line.Item.Name
			lines[i].SKU = line.Item.SKU
		}
	}

	return dto.OrderResponse{
		ID:           order.OrderID,
		TeamID:       order.TeamID,
		Title:        order.Title,
		Receiver:     order.Receiver,
		ReceiverAddr: order.ReceiverAddr,
		DeliveryDate: calendar.FormatDate(order.DeliveryDate),
		Status:       order.Status,
		Lines:        lines,
		Remarks:      order.Remarks,
		CreatedAt:    order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    order.UpdatedAt.Format(time.RFC3339),
	}
}
