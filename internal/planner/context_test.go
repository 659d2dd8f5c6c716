package planner

import (
	"fmt"
	"testing"

	"github.com/benvon/day-planner/internal/models"
)

type stubCalendar struct {
	events []models.CalendarEvent
	err    error
}

func (c *stubCalendar) Lookup(profile *models.Profile, date string) ([]models.CalendarEvent, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.events, nil
}

func TestDeriveContext(t *testing.T) {
	t.Parallel()

	cal := &stubCalendar{events: []models.CalendarEvent{
		{Time: "11:30", Title: "Design review"},
		{Time: "09:00", Title: "Standup sync"},
	}}
	e := NewContextEngine(cal)
	profile := &models.Profile{Meta: models.ProfileMeta{Role: "software engineer", NightOwl: true, Hobby: "guitar"}}

	ctx, err := e.DeriveContext(profile, "2025-06-02")
	if err != nil {
		t.Fatalf("DeriveContext failed: %v", err)
	}

	if ctx.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2", ctx.EventCount)
	}
	if ctx.FirstEventTime != "09:00" || ctx.LastEventTime != "11:30" {
		t.Errorf("Events not sorted: first %s, last %s", ctx.FirstEventTime, ctx.LastEventTime)
	}
	if ctx.DayLoad != models.DayLoadLight {
		t.Errorf("DayLoad = %q, want light", ctx.DayLoad)
	}

	wantBlocks := []models.FreeBlock{
		{Start: "06:00", End: "09:00", Minutes: 180},
		{Start: "09:00", End: "11:30", Minutes: 150},
		{Start: "11:30", End: "22:30", Minutes: 660},
	}
	if len(ctx.FreeBlocks) != len(wantBlocks) {
		t.Fatalf("FreeBlocks = %v, want %v", ctx.FreeBlocks, wantBlocks)
	}
	for i, w := range wantBlocks {
		if ctx.FreeBlocks[i] != w {
			t.Errorf("Block %d = %+v, want %+v", i, ctx.FreeBlocks[i], w)
		}
	}
	if ctx.BlockCount != 3 || ctx.LongestBlock != 660 {
		t.Errorf("BlockCount/LongestBlock = %d/%d, want 3/660", ctx.BlockCount, ctx.LongestBlock)
	}

	// Every block starts before noon, so the longest wins the morning slot
	// and no afternoon window is reported
	if len(ctx.FocusWindows) != 1 || ctx.FocusWindows[0].Window != "11:30-22:30" {
		t.Errorf("FocusWindows = %v", ctx.FocusWindows)
	}

	if ctx.EventTypes.Meeting != 1 || ctx.EventTypes.Call != 1 {
		t.Errorf("EventTypes = %+v", ctx.EventTypes)
	}

	// 2 events over a 2.5h span
	if ctx.MeetingDensity != 0.8 {
		t.Errorf("MeetingDensity = %v, want 0.8", ctx.MeetingDensity)
	}

	if ctx.Weekday != "Mon" || ctx.IsWeekend {
		t.Errorf("Weekday/IsWeekend = %s/%v", ctx.Weekday, ctx.IsWeekend)
	}
	if ctx.Role != "software engineer" || !ctx.NightOwl || ctx.Hobby != "guitar" {
		t.Error("Profile flags not copied through")
	}
}

func TestDeriveContextEmptyDay(t *testing.T) {
	t.Parallel()

	e := NewContextEngine(&stubCalendar{})
	ctx, err := e.DeriveContext(&models.Profile{}, "2025-06-07")
	if err != nil {
		t.Fatalf("DeriveContext failed: %v", err)
	}

	if ctx.EventCount != 0 || ctx.DayLoad != models.DayLoadLight {
		t.Errorf("Expected empty light day, got %d events / %q", ctx.EventCount, ctx.DayLoad)
	}
	if len(ctx.FreeBlocks) != 0 {
		t.Errorf("Expected no free blocks, got %v", ctx.FreeBlocks)
	}
	if ctx.MeetingDensity != 0 {
		t.Errorf("MeetingDensity = %v, want 0", ctx.MeetingDensity)
	}
	if !ctx.IsWeekend || ctx.Weekday != "Sat" {
		t.Errorf("Expected Saturday weekend, got %s/%v", ctx.Weekday, ctx.IsWeekend)
	}
}

func TestDeriveContextCalendarError(t *testing.T) {
	t.Parallel()

	e := NewContextEngine(&stubCalendar{err: fmt.Errorf("lookup failed")})
	if _, err := e.DeriveContext(&models.Profile{}, "2025-06-02"); err == nil {
		t.Error("Expected an error from the calendar")
	}
}

func TestFocusWindowsAfternoon(t *testing.T) {
	t.Parallel()

	blocks := []models.FreeBlock{
		{Start: "06:00", End: "08:30", Minutes: 150},
		{Start: "08:30", End: "14:00", Minutes: 330},
		{Start: "14:00", End: "22:30", Minutes: 510},
	}
	windows := focusWindows(blocks)
	if len(windows) != 2 {
		t.Fatalf("Expected morning and afternoon windows, got %v", windows)
	}
	if windows[0].Window != "08:30-14:00" || windows[0].Minutes != 330 {
		t.Errorf("Morning window = %+v", windows[0])
	}
	if windows[1].Window != "14:00-22:30" || windows[1].Minutes != 510 {
		t.Errorf("Afternoon window = %+v", windows[1])
	}
}

func TestFocusWindowsSkipShortBlocks(t *testing.T) {
	t.Parallel()

	blocks := []models.FreeBlock{
		{Start: "09:00", End: "09:30", Minutes: 30},
	}
	if windows := focusWindows(blocks); len(windows) != 0 {
		t.Errorf("Expected no windows for short blocks, got %v", windows)
	}
}

func TestClassifyLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count int
		want  models.DayLoad
	}{
		{0, models.DayLoadLight},
		{2, models.DayLoadLight},
		{3, models.DayLoadMedium},
		{4, models.DayLoadMedium},
		{5, models.DayLoadHeavy},
		{9, models.DayLoadHeavy},
	}
	for _, tt := range tests {
		if got := classifyLoad(tt.count); got != tt.want {
			t.Errorf("classifyLoad(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestToMinutes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"06:00", 360},
		{"22:30", 1350},
		{"bogus", 0},
		{"aa:bb", 0},
	}
	for _, tt := range tests {
		if got := toMinutes(tt.in); got != tt.want {
			t.Errorf("toMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFreeBlocksNeverNegative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		events []models.CalendarEvent
		want   []models.FreeBlock
	}{
		{
			name: "duplicate times give a zero-minute gap",
			events: []models.CalendarEvent{
				{Time: "09:00", Title: "Standup"},
				{Time: "09:00", Title: "Triage"},
			},
			want: []models.FreeBlock{
				{Start: "06:00", End: "09:00", Minutes: 180},
				{Start: "09:00", End: "09:00", Minutes: 0},
				{Start: "09:00", End: "22:30", Minutes: 810},
			},
		},
		{
			// The untimed event sorts last but has no minute value, so the
			// raw gap is negative and must clamp to zero
			name: "untimed event clamps the gap to zero",
			events: []models.CalendarEvent{
				{Time: "14:00", Title: "Review"},
				{Time: "", Title: "All day"},
			},
			want: []models.FreeBlock{
				{Start: "06:00", End: "14:00", Minutes: 480},
				{Start: "14:00", End: "", Minutes: 0},
				{Start: "", End: "22:30", Minutes: 1350},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewContextEngine(&stubCalendar{events: tt.events})
			ctx, err := e.DeriveContext(&models.Profile{}, "2025-06-02")
			if err != nil {
				t.Fatalf("DeriveContext failed: %v", err)
			}
			if len(ctx.FreeBlocks) != len(tt.want) {
				t.Fatalf("FreeBlocks = %+v, want %+v", ctx.FreeBlocks, tt.want)
			}
			for i, w := range tt.want {
				if ctx.FreeBlocks[i] != w {
					t.Errorf("Block %d = %+v, want %+v", i, ctx.FreeBlocks[i], w)
				}
			}
			for _, b := range ctx.FreeBlocks {
				if b.Minutes < 0 {
					t.Errorf("Negative block %+v", b)
				}
			}
		})
	}
}

func TestUntimedEventsSortLast(t *testing.T) {
	t.Parallel()

	cal := &stubCalendar{events: []models.CalendarEvent{
		{Time: "", Title: "All day"},
		{Time: "10:00", Title: "Standup"},
	}}
	e := NewContextEngine(cal)

	ctx, err := e.DeriveContext(&models.Profile{}, "2025-06-02")
	if err != nil {
		t.Fatalf("DeriveContext failed: %v", err)
	}
	if ctx.FirstEventTitle != "Standup" || ctx.LastEventTitle != "All day" {
		t.Errorf("Unexpected order: first %q, last %q", ctx.FirstEventTitle, ctx.LastEventTitle)
	}
}
