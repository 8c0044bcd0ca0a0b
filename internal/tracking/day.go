package tracking

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dayFormat is the display format entries are stored with (DD/MM/YYYY).
const dayFormat = "02/01/2006"

// Day is an explicit calendar-day key. Cycling entries merge on Day equality,
// so the key deliberately carries no time-of-day or timezone component.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

func DayOf(t time.Time) Day {
	return Day{
		Year:  t.Year(),
		Month: t.Month(),
		Date:  t.Day(),
	}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day [%s]: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Date, int(d.Month), d.Year)
}

func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Day) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("unquote day: %w", err)
	}
	day, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = day
	return nil
}
