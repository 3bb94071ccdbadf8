package service

import (
	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
)

func testActor() Actor {
	return Actor{
		UserID:      1,
		Name:        "Kim",
		Email:       "kim@kars.co.kr",
		AccessLevel: model.AccessUser,
		TeamID:      7,
	}
}

func newTestHistory(repo *mockHistoryRepo, b *bus.Bus) *HistoryService {
	return NewHistoryService(repo, b, nil, zap.NewNop())
}

func newTestBus() *bus.Bus {
	return bus.New(zap.NewNop())
}
