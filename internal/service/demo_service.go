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
	ErrDemoNotFound    = errors.New("demo not found")
	ErrDemoTransition  = errors.New("demo status transition not allowed")
	ErrDemoNotEditable = errors.New("demo can no longer be edited")
	ErrDemoDateRange   = errors.New("demo end date precedes start date")
)

// DemoService manages equipment demonstrations
// (requested → confirmed → shipped → returned). Every mutation records
// change history.
type DemoService struct {
	demos   repository.DemoRepository
	history *HistoryService
	logger  *zap.Logger
}

// NewDemoService builds the demo service.
func NewDemoService(demos repository.DemoRepository, history *HistoryService, logger *zap.Logger) *DemoService {
	return &DemoService{demos: demos, history: history, logger: logger}
}

// Create submits a new demo in the actor's team. The date range is
// validated here; the database CHECK is the backstop.
func (s *DemoService) Create(ctx context.Context, actor Actor, req *dto.CreateDemoRequest) (*dto.DemoResponse, error) {
	start, end, err := parseDemoRange(req.DemoStartDate, req.DemoEndDate)
	if err != nil {
		return nil, err
	}

	demo := &model.Demo{
		TeamID:        actor.TeamID,
		Title:         req.Title,
		DemoManager:   req.DemoManager,
		DemoStartDate: start,
		DemoEndDate:   end,
		Status:        model.DemoRequested,
		RequesterID:   &actor.UserID,
		Remarks:       req.Remarks,
	}
	if err := s.demos.Create(ctx, demo); err != nil {
		return nil, fmt.Errorf("create demo: %w", err)
	}

	s.record(ctx, actor, demo.TeamID, demo.DemoID, model.ChangeHistory{
		Action:  model.ActionCreate,
		Remarks: demo.Title,
	})

	resp := toDemoResponse(demo)
	return &resp, nil
}

// Get returns one demo.
func (s *DemoService) Get(ctx context.Context, actor Actor, id int64) (*dto.DemoResponse, error) {
	demo, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := toDemoResponse(demo)
	return &resp, nil
}

// List returns the actor's team demos, newest start first.
func (s *DemoService) List(ctx context.Context, actor Actor, page, pageSize int) ([]dto.DemoResponse, int64, error) {
	demos, total, err := s.demos.ListByTeam(ctx, actor.TeamID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("list demos: %w", err)
	}

	out := make([]dto.DemoResponse, len(demos))
	for i := range demos {
		out[i] = toDemoResponse(&demos[i])
	}
	return out, total, nil
}

// Update applies the non-nil fields while the demo has not shipped and
// records one change row per changed field. A partial date edit is checked
// against the untouched end of the range.
func (s *DemoService) Update(ctx context.Context, actor Actor, id int64, req *dto.UpdateDemoRequest) (*dto.DemoResponse, error) {
	demo, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if demo.Status != model.DemoRequested && demo.Status != model.DemoConfirmed {
		return nil, ErrDemoNotEditable
	}

	var changes []model.ChangeHistory
	if req.Title != nil && *req.Title != demo.Title {
		changes = append(changes, fieldChange("title", "Title", demo.Title, *req.Title))
		demo.Title = *req.Title
	}
	if req.DemoManager != nil && *req.DemoManager != demo.DemoManager {
		changes = append(changes, fieldChange("demo_manager", "Demo manager", demo.DemoManager, *req.DemoManager))
		demo.DemoManager = *req.DemoManager
	}

	start, end := demo.DemoStartDate, demo.DemoEndDate
	if req.DemoStartDate != nil {
		if start, err = calendar.ParseDate(*req.DemoStartDate); err != nil {
			return nil, ErrDemoDateRange
		}
	}
	if req.DemoEndDate != nil {
		if end, err = calendar.ParseDate(*req.DemoEndDate); err != nil {
			return nil, ErrDemoDateRange
		}
	}
	if end.Before(start) {
		return nil, ErrDemoDateRange
	}
	if !start.Equal(demo.DemoStartDate) {
		changes = append(changes, fieldChange("demo_start_date", "Start date",
			calendar.FormatDate(demo.DemoStartDate), calendar.FormatDate(start)))
		demo.DemoStartDate = start
	}
	if !end.Equal(demo.DemoEndDate) {
		changes = append(changes, fieldChange("demo_end_date", "End date",
			calendar.FormatDate(demo.DemoEndDate), calendar.FormatDate(end)))
		demo.DemoEndDate = end
	}

	if req.Remarks != nil && *req.Remarks != demo.Remarks {
		changes = append(changes, fieldChange("remarks", "Remarks", demo.Remarks, *req.Remarks))
		demo.Remarks = *req.Remarks
	}

	if len(changes) > 0 {
		if err := s.demos.Update(ctx, demo); err != nil {
			return nil, fmt.Errorf("update demo: %w", err)
		}
		for i := range changes {
			s.record(ctx, actor, demo.TeamID, demo.DemoID, changes[i])
		}
	}

	resp := toDemoResponse(demo)
	return &resp, nil
}

// ChangeStatus moves the demo along its lifecycle.
func (s *DemoService) ChangeStatus(ctx context.Context, actor Actor, id int64, req *dto.ChangeStatusRequest) (*dto.DemoResponse, error) {
	demo, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !model.ValidDemoTransition(demo.Status, req.Status) {
		return nil, ErrDemoTransition
	}

	old := demo.Status
	demo.Status = req.Status
	if err := s.demos.Update(ctx, demo); err != nil {
		return nil, fmt.Errorf("change demo status: %w", err)
	}

	s.record(ctx, actor, demo.TeamID, demo.DemoID, model.ChangeHistory{
		Action:     model.ActionStatusChange,
		Field:      "status",
		FieldLabel: "Status",
		OldValue:   old,
		NewValue:   req.Status,
		Remarks:    req.Remarks,
	})

	resp := toDemoResponse(demo)
	return &resp, nil
}

// Delete removes a demo that never left the request stage.
func (s *DemoService) Delete(ctx context.Context, actor Actor, id int64) error {
	demo, err := s.load(ctx, actor, id)
	if err != nil {
		return err
	}
	if demo.Status != model.DemoRequested && demo.Status != model.DemoCancelled {
		return ErrDemoNotEditable
	}

	if err := s.demos.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete demo: %w", err)
	}

	s.record(ctx, actor, demo.TeamID, id, model.ChangeHistory{
		Action:  model.ActionDelete,
		Remarks: demo.Title,
	})
	return nil
}

func (s *DemoService) load(ctx context.Context, actor Actor, id int64) (*model.Demo, error) {
	demo, err := s.demos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDemoNotFound
		}
		return nil, fmt.Errorf("load demo: %w", err)
	}
	if actor.AccessLevel != model.AccessAdmin && demo.TeamID != actor.TeamID {
		return nil, ErrForbidden
	}
	return demo, nil
}

func (s *DemoService) record(ctx context.Context, actor Actor, teamID, demoID int64, change model.ChangeHistory) {
	change.EntityType = model.EntityDemo
	change.EntityID = demoID
	change.TeamID = teamID
	stamp(&change, actor)

	if err := s.history.Record(ctx, &change); err != nil {
		s.logger.Error("demo change history write failed",
			zap.Int64("demo_id", demoID),
			zap.Error(err),
		)
	}
}

func parseDemoRange(startStr, endStr string) (start, end time.Time, err error) {
	if start, err = calendar.ParseDate(startStr); err != nil {
		return start, end, ErrDemoDateRange
	}
	if end, err = calendar.ParseDate(endStr); err != nil {
		return start, end, ErrDemoDateRange
	}
	if end.Before(start) {
		return start, end, ErrDemoDateRange
	}
	return start, end, nil
}

func toDemoResponse(demo *model.Demo) dto.DemoResponse {
	return dto.DemoResponse{
		ID:            demo.DemoID,
		TeamID:        demo.TeamID,
		Title:         demo.Title,
		DemoManager:   demo.DemoManager,
		DemoStartDate: calendar.FormatDate(demo.DemoStartDate),
		DemoEndDate:   calendar.FormatDate(demo.DemoEndDate),
		Status:        demo.Status,
		Remarks:       demo.Remarks,
		CreatedAt:     demo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     demo.UpdatedAt.Format(time.RFC3339),
	}
}
