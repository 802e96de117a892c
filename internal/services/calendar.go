package services

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/jp"
	"github.com/rickar/cal/v2/us"
)

// CalendarService backs the calendar view: tasks of a month grouped by due
// date, with business-day and holiday annotations from the configured
// region's calendar.
type CalendarService struct {
	tasks    *TaskService
	calendar *cal.BusinessCalendar
}

func NewCalendarService(tasks *TaskService, region string) *CalendarService {
	return &CalendarService{
		tasks:    tasks,
		calendar: businessCalendar(region),
	}
}

func businessCalendar(region string) *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()

	var holidays []*cal.Holiday
	switch region {
	case "GB":
		holidays = gb.Holidays
	case "DE":
		holidays = de.Holidays
	case "FR":
		holidays = fr.Holidays
	case "JP":
		holidays = jp.Holidays
	default:
		holidays = us.Holidays
	}
	c.AddHoliday(holidays...)

	return c
}

type CalendarDay struct {
	Date    string        `json:"date"` // YYYY-MM-DD
	Workday bool          `json:"workday"`
	Holiday string        `json:"holiday,omitempty"`
	Tasks   []TaskSummary `json:"tasks"`
}

type TaskSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

type CalendarMonth struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

// MonthFeed returns one entry per day of the month with the tasks due that
// day. Capability checks happen in the facade/handler layer.
func (s *CalendarService) MonthFeed(projectID uint, year int, month time.Month) (*CalendarMonth, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	tasks, err := s.tasks.ListDueInRange(projectID, from, to)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]TaskSummary)
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		key := t.DueDate.Format("2006-01-02")
		byDay[key] = append(byDay[key], TaskSummary{
			ID:       t.ID,
			Title:    t.Title,
			Status:   t.Status,
			Priority: t.Priority,
		})
	}

	feed := &CalendarMonth{Year: year, Month: int(month)}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		day := CalendarDay{
			Date:    key,
			Workday: s.calendar.IsWorkday(d),
			Tasks:   byDay[key],
		}
		if actual, observed, holiday := s.calendar.IsHoliday(d); actual || observed {
			day.Holiday = holiday.Name
		}
		feed.Days = append(feed.Days, day)
	}

	return feed, nil
}
