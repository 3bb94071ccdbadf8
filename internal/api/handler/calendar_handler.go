package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/calendar"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/service"
	"github.com/S-Soo100/Resource-Planning-System-sub004/pkg/response"
)

// CalendarHandler serves the schedule views and the iCalendar feed.
type CalendarHandler struct {
	calendarSvc *service.CalendarService
	icsSvc      *service.ICSService
}

// NewCalendarHandler builds the calendar handler.
func NewCalendarHandler(calendarSvc *service.CalendarService, icsSvc *service.ICSService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc, icsSvc: icsSvc}
}

// Week handles GET /api/v1/calendar/week.
func (h *CalendarHandler) Week(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CalendarViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid calendar query")
		return
	}

	view, err := h.calendarSvc.WeekView(c.Request.Context(), actor.TeamID, &req)
	if err != nil {
		response.BadRequest(c, "invalid calendar query")
		return
	}
	response.OK(c, view)
}

// Month handles GET /api/v1/calendar/month.
func (h *CalendarHandler) Month(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CalendarViewRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid calendar query")
		return
	}

	view, err := h.calendarSvc.MonthView(c.Request.Context(), actor.TeamID, &req)
	if err != nil {
		response.BadRequest(c, "invalid calendar query")
		return
	}
	response.OK(c, view)
}

// Feed handles GET /api/v1/calendar/feed.ics. The range defaults to the
// month grid around today when from/to are absent.
func (h *CalendarHandler) Feed(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")

	var (
		from, to = defaultFeedRange()
		err      error
	)
	if fromStr != "" {
		if from, err = calendar.ParseDate(fromStr); err != nil {
			response.BadRequest(c, "invalid from date")
			return
		}
	}
	if toStr != "" {
		if to, err = calendar.ParseDate(toStr); err != nil {
			response.BadRequest(c, "invalid to date")
			return
		}
	}
	if to.Before(from) {
		response.BadRequest(c, "feed range is reversed")
		return
	}

	feed, err := h.icsSvc.Feed(c.Request.Context(), actor.TeamID, from, to)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="kars-schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// defaultFeedRange covers the current month's full week grid.
func defaultFeedRange() (time.Time, time.Time) {
	month := calendar.MonthOf(time.Now())
	return month.Days[0], month.Days[len(month.Days)-1]
}
