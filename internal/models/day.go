package models

import (
	"fmt"
	"strings"
	"time"
)

// Day is a weekly occurrence of a service. Each day carries a fixed two-digit
// code used as the middle fragment of session codes.
type Day int

const (
	Monday Day = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const LengthOfWeek = 7

var dayInfo = map[Day]struct {
	name    string
	code    string
	weekday time.Weekday
}{
	Monday:    {"MONDAY", "11", time.Monday},
	Tuesday:   {"TUESDAY", "22", time.Tuesday},
	Wednesday: {"WEDNESDAY", "33", time.Wednesday},
	Thursday:  {"THURSDAY", "44", time.Thursday},
	Friday:    {"FRIDAY", "55", time.Friday},
	Saturday:  {"SATURDAY", "66", time.Saturday},
	Sunday:    {"SUNDAY", "77", time.Sunday},
}

// AllDays lists the week starting on Monday.
var AllDays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func (d Day) Valid() bool {
	_, ok := dayInfo[d]
	return ok
}

// Code returns the two-digit occurrence code of the day.
func (d Day) Code() string {
	return dayInfo[d].code
}

func (d Day) Weekday() time.Weekday {
	return dayInfo[d].weekday
}

func (d Day) String() string {
	if info, ok := dayInfo[d]; ok {
		return info.name
	}
	return fmt.Sprintf("Day(%d)", int(d))
}

// DayOf maps a time.Weekday onto its Day.
func DayOf(w time.Weekday) Day {
	for d, info := range dayInfo {
		if info.weekday == w {
			return d
		}
	}
	return 0
}

// ParseDay accepts full names ("friday") and three-letter forms ("FRI").
func ParseDay(s string) (Day, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, d := range AllDays {
		name := dayInfo[d].name
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// ParseDays parses a comma separated list such as "MON,WED,FRI".
func ParseDays(s string) ([]Day, error) {
	var days []Day
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		d, err := ParseDay(part)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
