package google

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"
)

// MockCalendarService is an in-memory CalendarService used in demo mode and tests.
// Events live only for the lifetime of the process.
type MockCalendarService struct {
	logger *zap.Logger

	mu     sync.Mutex
	events []*calendar.Event

	// CreateErr, when set, is returned by CreateEvent to simulate backend failures
	CreateErr error
	// ListErr, when set, is returned by ListEvents to simulate backend failures
	ListErr error
}

// NewMockCalendarService creates an empty in-memory calendar service
func NewMockCalendarService(logger *zap.Logger) *MockCalendarService {
	return &MockCalendarService{logger: logger}
}

// NewDemoCalendarService creates an in-memory calendar service pre-seeded with
// a morning standup and an afternoon review on the given date
func NewDemoCalendarService(logger *zap.Logger, date time.Time) *MockCalendarService {
	svc := NewMockCalendarService(logger)
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	seed := []struct {
		summary     string
		description string
		start       time.Duration
		end         time.Duration
	}{
		{"Team Standup", "Daily sync", 10 * time.Hour, 10*time.Hour + 30*time.Minute},
		{"Design Review", "Weekly review of open proposals", 14 * time.Hour, 15 * time.Hour},
	}
	for _, s := range seed {
		_, _ = svc.CreateEvent("primary", &calendar.Event{
			Summary:     s.summary,
			Description: s.description,
			Start:       &calendar.EventDateTime{DateTime: midnight.Add(s.start).Format(time.RFC3339), TimeZone: "UTC"},
			End:         &calendar.EventDateTime{DateTime: midnight.Add(s.end).Format(time.RFC3339), TimeZone: "UTC"},
		})
	}
	return svc
}

// ListEvents returns the stored events intersecting the given range, ordered by start time
func (m *MockCalendarService) ListEvents(calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	type timedEvent struct {
		event *calendar.Event
		start time.Time
	}

	var matched []timedEvent
	for _, event := range m.events {
		start, end, err := eventTimes(event)
		if err != nil {
			continue
		}
		if start.Before(timeMax) && timeMin.Before(end) {
			matched = append(matched, timedEvent{event: event, start: start})
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].start.Before(matched[j].start)
	})

	result := make([]*calendar.Event, 0, len(matched))
	for _, te := range matched {
		result = append(result, te.event)
	}

	if m.logger != nil {
		m.logger.Debug("mock calendar listed events",
			zap.String("calendarID", calendarID),
			zap.Int("eventCount", len(result)))
	}

	return result, nil
}

// CreateEvent stores the event and assigns it an identifier
func (m *MockCalendarService) CreateEvent(calendarID string, event *calendar.Event) (*calendar.Event, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	if event.Start == nil || event.End == nil {
		return nil, fmt.Errorf("event start and end are required")
	}

	created := *event
	created.Id = uuid.New().String()
	created.Status = "confirmed"
	created.HtmlLink = fmt.Sprintf("https://calendar.google.com/event?eid=%s", created.Id)

	m.mu.Lock()
	m.events = append(m.events, &created)
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Debug("mock calendar created event",
			zap.String("calendarID", calendarID),
			zap.String("eventID", created.Id),
			zap.String("eventSummary", created.Summary))
	}

	return &created, nil
}

// EventCount reports how many events are stored
func (m *MockCalendarService) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func eventTimes(event *calendar.Event) (time.Time, time.Time, error) {
	if event.Start == nil || event.End == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("event has no start or end")
	}
	start, err := time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(time.RFC3339, event.End.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
