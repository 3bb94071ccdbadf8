package repository

import "gorm.io/gorm"

// Repository aggregates the per-model data access interfaces.
type Repository struct {
	User      UserRepository
	Team      TeamRepository
	Warehouse WarehouseRepository
	Item      ItemRepository
	Order     OrderRepository
	Demo      DemoRepository
	History   HistoryRepository
}

// NewRepository wires the gorm-backed implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:      NewUserRepo(db),
		Team:      NewTeamRepo(db),
		Warehouse: NewWarehouseRepo(db),
		Item:      NewItemRepo(db),
		Order:     NewOrderRepo(db),
		Demo:      NewDemoRepo(db),
		History:   NewHistoryRepo(db),
	}
}
