package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	apperrors "github.com/S-Soo100/Resource-Planning-System-sub004/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.UserID = m.nextID
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, teamID int64) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if teamID == 0 || (u.TeamID != nil && *u.TeamID == teamID) {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock WarehouseRepository ──

type mockWarehouseRepo struct {
	warehouses map[int64]*model.Warehouse
	nextID     int64
}

func newMockWarehouseRepo() *mockWarehouseRepo {
	return &mockWarehouseRepo{warehouses: make(map[int64]*model.Warehouse)}
}

func (m *mockWarehouseRepo) Create(_ context.Context, wh *model.Warehouse) error {
	m.nextID++
	wh.WarehouseID = m.nextID
	m.warehouses[wh.WarehouseID] = wh
	return nil
}

func (m *mockWarehouseRepo) GetByID(_ context.Context, id int64) (*model.Warehouse, error) {
	if wh, ok := m.warehouses[id]; ok {
		return wh, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWarehouseRepo) ListByTeam(_ context.Context, teamID int64) ([]model.Warehouse, error) {
	var result []model.Warehouse
	for _, wh := range m.warehouses {
		if wh.TeamID == teamID {
			result = append(result, *wh)
		}
	}
	return result, nil
}

func (m *mockWarehouseRepo) Update(_ context.Context, wh *model.Warehouse) error {
	m.warehouses[wh.WarehouseID] = wh
	return nil
}

// ── Mock ItemRepository ──

type mockItemRepo struct {
	items    map[int64]*model.Item
	nextID   int64
	conflict bool // next AdjustQuantity loses the write race
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[int64]*model.Item)}
}

func (m *mockItemRepo) Create(_ context.Context, item *model.Item) error {
	m.nextID++
	item.ItemID = m.nextID
	m.items[item.ItemID] = item
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id int64) (*model.Item, error) {
	if item, ok := m.items[id]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockItemRepo) ListByWarehouse(_ context.Context, warehouseID int64) ([]model.Item, error) {
	var result []model.Item
	for _, item := range m.items {
		if item.WarehouseID == warehouseID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *mockItemRepo) Update(_ context.Context, item *model.Item) error {
	m.items[item.ItemID] = item
	return nil
}

func (m *mockItemRepo) AdjustQuantity(_ context.Context, id int64, oldQuantity, newQuantity int) error {
	item, ok := m.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.conflict || item.Quantity != oldQuantity {
		return apperrors.ErrOptimisticLock
	}
	item.Quantity = newQuantity
	return nil
}

func (m *mockItemRepo) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

// ── Mock OrderRepository ──

type mockOrderRepo struct {
	orders map[int64]*model.Order
	nextID int64
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[int64]*model.Order)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.nextID++
	order.OrderID = m.nextID
	m.orders[order.OrderID] = order
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*model.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrderRepo) ListByTeam(_ context.Context, teamID int64, _, _ int) ([]model.Order, int64, error) {
	var result []model.Order
	for _, o := range m.orders {
		if o.TeamID == teamID {
			result = append(result, *o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepo) ListByDeliveryRange(_ context.Context, teamID int64, from, to time.Time) ([]model.Order, error) {
	var result []model.Order
	for _, o := range m.orders {
		if o.TeamID == teamID && !o.DeliveryDate.Before(from) && !o.DeliveryDate.After(to) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderID < result[j].OrderID })
	return result, nil
}

func (m *mockOrderRepo) Update(_ context.Context, order *model.Order) error {
	m.orders[order.OrderID] = order
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id int64) error {
	delete(m.orders, id)
	return nil
}

// ── Mock DemoRepository ──

type mockDemoRepo struct {
	demos  map[int64]*model.Demo
	nextID int64
}

func newMockDemoRepo() *mockDemoRepo {
	return &mockDemoRepo{demos: make(map[int64]*model.Demo)}
}

func (m *mockDemoRepo) Create(_ context.Context, demo *model.Demo) error {
	m.nextID++
	demo.DemoID = m.nextID
	m.demos[demo.DemoID] = demo
	return nil
}

func (m *mockDemoRepo) GetByID(_ context.Context, id int64) (*model.Demo, error) {
	if d, ok := m.demos[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDemoRepo) ListByTeam(_ context.Context, teamID int64, _, _ int) ([]model.Demo, int64, error) {
	var result []model.Demo
	for _, d := range m.demos {
		if d.TeamID == teamID {
			result = append(result, *d)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockDemoRepo) ListOverlappingRange(_ context.Context, teamID int64, from, to time.Time) ([]model.Demo, error) {
	var result []model.Demo
	for _, d := range m.demos {
		if d.TeamID == teamID && !d.DemoStartDate.After(to) && !d.DemoEndDate.Before(from) {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DemoID < result[j].DemoID })
	return result, nil
}

func (m *mockDemoRepo) Update(_ context.Context, demo *model.Demo) error {
	m.demos[demo.DemoID] = demo
	return nil
}

func (m *mockDemoRepo) Delete(_ context.Context, id int64) error {
	delete(m.demos, id)
	return nil
}

// ── Mock HistoryRepository ──

type mockHistoryRepo struct {
	rows   []model.ChangeHistory
	nextID int64
	failed bool // when set, Create errors
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{}
}

func (m *mockHistoryRepo) Create(_ context.Context, change *model.ChangeHistory) error {
	if m.failed {
		return gorm.ErrInvalidDB
	}
	m.nextID++
	change.ChangeID = m.nextID
	if change.CreatedAt.IsZero() {
		change.CreatedAt = time.Now()
	}
	m.rows = append(m.rows, *change)
	return nil
}

func (m *mockHistoryRepo) ListByEntity(_ context.Context, entityType string, entityID int64, _, _ int) ([]model.ChangeHistory, int64, error) {
	var result []model.ChangeHistory
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].EntityType == entityType && m.rows[i].EntityID == entityID {
			result = append(result, m.rows[i])
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockHistoryRepo) ListByTeam(_ context.Context, teamID int64, types []string, _, _ int) ([]model.ChangeHistory, int64, error) {
	var result []model.ChangeHistory
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].TeamID != teamID {
			continue
		}
		if len(types) > 0 && !containsType(types, m.rows[i].EntityType) {
			continue
		}
		result = append(result, m.rows[i])
	}
	return result, int64(len(result)), nil
}

func containsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
