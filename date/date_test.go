package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	rq := require.New(t)

	d1 := NewWithTime(2021, time.March, 4, 13, 5, 9)
	d2, err := Parse(DefaultFormat, "03/04/2021 13:05:09")
	rq.Nil(err)
	rq.True(d1.Equal(d2))
	rq.Equal("03/04/2021 13:05:09", d1.String())
	rq.Equal("03/04/2021", d1.DayString())
	rq.Equal("2021-03-04", d1.Format(ISODayFormat))
	rq.Equal(2021, d1.Year())

	_, err = Parse(DefaultFormat, "2021-03-04")
	rq.NotNil(err)

	_, err = Parse(time.RFC3339, "2021-03-04T10:00:00+02:00")
	rq.NotNil(err)

	d3 := d1.AddDays(2)
	rq.Equal("03/06/2021 13:05:09", d3.String())
	rq.True(d3.After(d1))
	rq.True(d1.Before(d3))
	rq.False(d1.Before(d2))

	rq.True(Date{}.IsZero())
	rq.False(New(2020, time.January, 1).IsZero())
}

func TestToday(t *testing.T) {
	rq := require.New(t)

	TodaysDateForTest = New(2022, time.July, 1)
	defer func() { TodaysDateForTest = Date{} }()
	rq.Equal(2022, Today().Year())
}
