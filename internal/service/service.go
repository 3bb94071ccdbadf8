package service

import (
	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/repository"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/redis"
)

// Actor identifies the authenticated user performing an operation. Built
// from JWT claims by the HTTP layer; mutations stamp it into the change
// history they record.
type Actor struct {
	UserID      int64
	Name        string
	Email       string
	AccessLevel string
	TeamID      int64
}

// Service aggregates the business logic layer.
type Service struct {
	Auth     *AuthService
	Item     *ItemService
	Order    *OrderService
	Demo     *DemoService
	Calendar *CalendarService
	ICS      *ICSService
	History  *HistoryService
}

// New wires the services. redisClient may be nil; change fan-out then stays
// in-process and token revocation degrades to expiry-only.
func New(
	repo *repository.Repository,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	eventBus *bus.Bus,
	logger *zap.Logger,
) *Service {
	history := NewHistoryService(repo.History, eventBus, redisClient, logger)
	calendar := NewCalendarService(repo.Order, repo.Demo, logger)

	return &Service{
		Auth:     NewAuthService(repo.User, jwtManager, redisClient, eventBus, logger),
		Item:     NewItemService(repo.Item, repo.Warehouse, history, logger),
		Order:    NewOrderService(repo.Order, repo.Item, history, logger),
		Demo:     NewDemoService(repo.Demo, history, logger),
		Calendar: calendar,
		ICS:      NewICSService(repo.Order, repo.Demo, logger),
		History:  history,
	}
}
