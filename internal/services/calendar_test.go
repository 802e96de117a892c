package services

import (
	"testing"
	"time"
)

func TestMonthFeed_CoversWholeMonth(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(NewTaskService(db), "US")
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	feed, err := svc.MonthFeed(project.ID, 2026, time.February)
	if err != nil {
		t.Fatalf("MonthFeed() error = %v", err)
	}
	if len(feed.Days) != 28 {
		t.Errorf("February 2026 has %d days in the feed, expected 28", len(feed.Days))
	}
	if feed.Days[0].Date != "2026-02-01" {
		t.Errorf("first day = %q", feed.Days[0].Date)
	}

	// 2026-02-01 is a Sunday
	if feed.Days[0].Workday {
		t.Error("Sunday should not be a workday")
	}
	// 2026-02-02 is a Monday
	if !feed.Days[1].Workday {
		t.Error("a plain Monday should be a workday")
	}
}

func TestMonthFeed_GroupsTasksByDueDate(t *testing.T) {
	db := newTestDB(t)
	tasks := NewTaskService(db)
	svc := NewCalendarService(tasks, "US")
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	due := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	for _, title := range []string{"Write draft", "Review draft"} {
		if _, err := tasks.Create(project.ID, owner.ID, &CreateTaskRequest{Title: title, DueDate: &due}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	// A task without a due date never shows up
	if _, err := tasks.Create(project.ID, owner.ID, &CreateTaskRequest{Title: "Someday"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	// A task in another month stays out of this feed
	april := time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC)
	if _, err := tasks.Create(project.ID, owner.ID, &CreateTaskRequest{Title: "Next month", DueDate: &april}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	feed, err := svc.MonthFeed(project.ID, 2026, time.March)
	if err != nil {
		t.Fatalf("MonthFeed() error = %v", err)
	}

	total := 0
	for _, day := range feed.Days {
		total += len(day.Tasks)
		if day.Date == "2026-03-10" && len(day.Tasks) != 2 {
			t.Errorf("tasks on 2026-03-10 = %d, expected 2", len(day.Tasks))
		}
	}
	if total != 2 {
		t.Errorf("total tasks in feed = %d, expected 2", total)
	}
}

func TestMonthFeed_MarksHolidays(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(NewTaskService(db), "US")
	owner := createTestUser(t, db, "")
	project := createTestProject(t, db, "Board", owner)

	feed, err := svc.MonthFeed(project.ID, 2026, time.July)
	if err != nil {
		t.Fatalf("MonthFeed() error = %v", err)
	}

	var fourth *CalendarDay
	for i := range feed.Days {
		if feed.Days[i].Date == "2026-07-04" {
			fourth = &feed.Days[i]
		}
	}
	if fourth == nil {
		t.Fatal("feed is missing July 4th")
	}
	if fourth.Holiday == "" {
		t.Error("July 4th should carry a holiday name in the US calendar")
	}
	if fourth.Workday {
		t.Error("July 4th 2026 (a Saturday) should not be a workday")
	}
}
