package timeslot

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow   = errors.New("start time must be before end time")
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")
	ErrNoValidWeekdays = errors.New("slot must be valid on at least one weekday")
	ErrDateNotServed   = errors.New("slot does not serve the requested weekday")
)

// TimeSlot is a named recurring window (e.g. 9-11am) with a maximum number
// of orders it can serve on a given date. Immutable after creation.
type TimeSlot struct {
	id            uuid.UUID
	name          string
	startTime     time.Duration // offset from midnight
	endTime       time.Duration
	maxCapacity   int
	validWeekdays map[time.Weekday]struct{}
}

func NewTimeSlot(name string, startTime, endTime time.Duration, maxCapacity int, weekdays []time.Weekday) (*TimeSlot, error) {
	if startTime >= endTime {
		return nil, ErrInvalidWindow
	}
	if maxCapacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if len(weekdays) == 0 {
		return nil, ErrNoValidWeekdays
	}

	valid := make(map[time.Weekday]struct{}, len(weekdays))
	for _, d := range weekdays {
		valid[d] = struct{}{}
	}

	return &TimeSlot{
		id:            uuid.New(),
		name:          name,
		startTime:     startTime,
		endTime:       endTime,
		maxCapacity:   maxCapacity,
		validWeekdays: valid,
	}, nil
}

func ReconstructTimeSlot(id uuid.UUID, name string, startTime, endTime time.Duration, maxCapacity int, weekdays []time.Weekday) *TimeSlot {
	valid := make(map[time.Weekday]struct{}, len(weekdays))
	for _, d := range weekdays {
		valid[d] = struct{}{}
	}
	return &TimeSlot{
		id:            id,
		name:          name,
		startTime:     startTime,
		endTime:       endTime,
		maxCapacity:   maxCapacity,
		validWeekdays: valid,
	}
}

// ValidateDate checks the slot serves the weekday of the requested date.
func (s *TimeSlot) ValidateDate(date time.Time) error {
	if _, ok := s.validWeekdays[date.Weekday()]; !ok {
		return ErrDateNotServed
	}
	return nil
}

func (s *TimeSlot) ID() uuid.UUID            { return s.id }
func (s *TimeSlot) Name() string             { return s.name }
func (s *TimeSlot) StartTime() time.Duration { return s.startTime }
func (s *TimeSlot) EndTime() time.Duration   { return s.endTime }
func (s *TimeSlot) MaxCapacity() int         { return s.maxCapacity }

func (s *TimeSlot) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(s.validWeekdays))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if _, ok := s.validWeekdays[d]; ok {
			days = append(days, d)
		}
	}
	return days
}
