package date

import (
	"fmt"
	"time"
)

const (
	// Layout used by exchange transaction exports
	DefaultFormat = "01/02/2006 15:04:05"

	// Layout used when only the day matters, eg. in cost basis detail lines
	DayFormat    = "01/02/2006"
	ISODayFormat = "2006-01-02"
)

// Date is the instant a transaction happened. Time zones are dropped on
// construction, so two Dates compare by wall clock in UTC.
type Date struct {
	time time.Time
}

func New(year uint32, month time.Month, day uint32) Date {
	return NewWithTime(year, month, day, 0, 0, 0)
}

func NewWithTime(year uint32, month time.Month, day uint32, hour, min, sec int) Date {
	return Date{time.Date(int(year), month, int(day), hour, min, sec, 0, time.UTC)}
}

func NewFromTime(t time.Time) Date {
	year, month, day := t.Date()
	return Date{time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func Parse(layout string, s string) (Date, error) {
	tm, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, err
	}
	if tm.Location() != time.UTC {
		return Date{}, fmt.Errorf("Format %v and string %v carry a time zone, which is not supported", layout, s)
	}
	return NewFromTime(tm), nil
}

var TodaysDateForTest Date = Date{}

func Today() Date {
	if !TodaysDateForTest.IsZero() {
		return TodaysDateForTest
	}
	now := time.Now()
	return New(uint32(now.Year()), now.Month(), uint32(now.Day()))
}

func (d Date) IsZero() bool {
	return d.time.IsZero()
}

func (d Date) Equal(other Date) bool {
	return d.time.Equal(other.time)
}

// After reports whether the instant d is after u.
func (d Date) After(u Date) bool {
	return d.time.After(u.time)
}

// Before reports whether the instant d is before u.
func (d Date) Before(u Date) bool {
	return d.time.Before(u.time)
}

func (d Date) AddDays(nDays int) Date {
	return Date{d.time.AddDate(0, 0, nDays)}
}

func (d Date) Year() int {
	return d.time.Year()
}

func (d Date) Format(layout string) string {
	return d.time.Format(layout)
}

func (d Date) DayString() string {
	return d.Format(DayFormat)
}

func (d Date) String() string {
	return d.Format(DefaultFormat)
}
