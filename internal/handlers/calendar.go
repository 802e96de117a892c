package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskify/taskify/internal/middleware"
	"github.com/taskify/taskify/internal/services"
	"github.com/taskify/taskify/pkg/response"
)

// CalendarHandler serves the month feed behind the UI's calendar view.
type CalendarHandler struct {
	access   *services.AccessService
	calendar *services.CalendarService
}

func NewCalendarHandler(access *services.AccessService, calendar *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{access: access, calendar: calendar}
}

// MonthFeed returns the tasks of a month grouped by due date, annotated with
// business-day and holiday flags. Defaults to the current month.
func (h *CalendarHandler) MonthFeed(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// View check goes through the facade like every other read.
	if _, err := h.access.GetProject(projectID, middleware.GetUserID(c)); err != nil {
		serviceError(c, err)
		return
	}

	now := time.Now()
	year := now.Year()
	month := now.Month()

	if y := c.Query("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil {
			year = parsed
		}
	}
	if m := c.Query("month"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil && parsed >= 1 && parsed <= 12 {
			month = time.Month(parsed)
		}
	}

	feed, err := h.calendar.MonthFeed(projectID, year, month)
	if err != nil {
		serviceError(c, err)
		return
	}
	response.Success(c, feed)
}
