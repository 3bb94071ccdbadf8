package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/config"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/api/middleware"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/bus"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/model"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/stream"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock HistoryRepository ──

type mockHistoryRepo struct {
	rows []model.ChangeHistory
}

func (m *mockHistoryRepo) Create(_ context.Context, change *model.ChangeHistory) error {
	change.ChangeID = int64(len(m.rows) + 1)
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

func (m *mockHistoryRepo) ListByTeam(_ context.Context, teamID int64, _ []string, _, _ int) ([]model.ChangeHistory, int64, error) {
	var result []model.ChangeHistory
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].TeamID == teamID {
			result = append(result, m.rows[i])
		}
	}
	return result, int64(len(result)), nil
}

// ── fixture ──

type apiFixture struct {
	engine     *gin.Engine
	hub        *stream.Hub
	eventBus   *bus.Bus
	jwtManager *jwt.Manager
	history    *mockHistoryRepo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	logger := zap.NewNop()
	eventBus := bus.New(logger)
	hub := stream.NewHub(eventBus, time.Minute, 16, logger)

	jwtManager := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-key-0123456789",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})

	historyRepo := &mockHistoryRepo{}
	historySvc := service.NewHistoryService(historyRepo, eventBus, nil, logger)

	h := &Handler{
		History: NewHistoryHandler(historySvc),
		Stream:  NewStreamHandler(hub),
	}

	engine := gin.New()
	engine.GET("/api/v1/change-history/:entityType/:id/stream",
		middleware.StreamAuth(jwtManager, nil), h.Stream.Stream)
	authorized := engine.Group("/api/v1", middleware.JWTAuth(jwtManager, nil))
	authorized.GET("/change-history/:entityType/:id", h.History.List)

	return &apiFixture{
		engine:     engine,
		hub:        hub,
		eventBus:   eventBus,
		jwtManager: jwtManager,
		history:    historyRepo,
	}
}

func (f *apiFixture) accessToken(t *testing.T, teamID int64, level string) string {
	t.Helper()
	token, err := f.jwtManager.GenerateAccessToken(1, "kim@kars.co.kr", "Kim", level, teamID)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	return token
}

// ── stream endpoint ──

func TestStream_RejectsMissingToken(t *testing.T) {
	f := newAPIFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/change-history/order/5/stream", nil)
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestStream_RejectsUnknownEntityType(t *testing.T) {
	f := newAPIFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/change-history/invoice/5/stream?token="+f.accessToken(t, 7, model.AccessUser), nil)
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestStream_RejectsForeignTeamChannel(t *testing.T) {
	f := newAPIFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/change-history/team/99/stream?token="+f.accessToken(t, 7, model.AccessUser), nil)
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestStream_DeliversChangeFrame(t *testing.T) {
	f := newAPIFixture(t)

	srv := httptest.NewServer(f.engine)
	defer srv.Close()

	// Broadcast once a subscriber has attached.
	go func() {
		deadline := time.Now().Add(2 * time.Second)
		for f.hub.SubscriberCount() == 0 {
			if time.Now().After(deadline) {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
		f.hub.Broadcast(&model.ChangeHistory{
			ChangeID:   42,
			EntityType: model.EntityOrder,
			EntityID:   5,
			TeamID:     7,
			Action:     model.ActionStatusChange,
			UserName:   "Kim",
		})
	}()

	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(srv.URL +
		"/api/v1/change-history/order/5/stream?token=" + f.accessToken(t, 7, model.AccessUser))
	if err != nil {
		t.Fatalf("GET stream: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q", ct)
	}

	var event, data string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
		if event != "" && data != "" {
			break
		}
	}

	if event != stream.EventChange {
		t.Fatalf("event = %q, want change", event)
	}
	var payload struct {
		ID     int64  `json:"id"`
		Action string `json:"action"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		t.Fatalf("unmarshal frame %q: %v", data, err)
	}
	if payload.ID != 42 || payload.Action != model.ActionStatusChange {
		t.Errorf("frame = %+v", payload)
	}
}

// ── history listings ──

func TestHistoryList_UnknownEntityType(t *testing.T) {
	f := newAPIFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/change-history/invoice/5", nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, 7, model.AccessUser))
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHistoryList_ForeignTeamForbidden(t *testing.T) {
	f := newAPIFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/change-history/team/99", nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, 7, model.AccessUser))
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestHistoryList_ReturnsNewestFirst(t *testing.T) {
	f := newAPIFixture(t)

	f.history.rows = []model.ChangeHistory{
		{ChangeID: 1, EntityType: model.EntityOrder, EntityID: 5, TeamID: 7, Action: model.ActionCreate},
		{ChangeID: 2, EntityType: model.EntityOrder, EntityID: 5, TeamID: 7, Action: model.ActionStatusChange},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/change-history/order/5", nil)
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, 7, model.AccessUser))
	f.engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			List []struct {
				ID     int64  `json:"id"`
				Action string `json:"action"`
			} `json:"list"`
			Pagination struct {
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Success {
		t.Error("success = false")
	}
	if body.Data.Pagination.Total != 2 || len(body.Data.List) != 2 {
		t.Fatalf("got %d rows (total %d), want 2", len(body.Data.List), body.Data.Pagination.Total)
	}
	if body.Data.List[0].ID != 2 {
		t.Errorf("first row id = %d, want newest (2)", body.Data.List[0].ID)
	}
}
