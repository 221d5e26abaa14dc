package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseISO8601 accepts ISO-8601 dates in basic or extended format:
// calendar (2024, 2024-03, 2024-03-01, 20240301), ordinal (2024-061,
// 2024061) and week (2024-W09-5, 2024W095) dates. A time may follow after
// "T" or a space: hh, hh:mm, hh:mm:ss or hhmmss, with an optional decimal
// fraction on the last component and a zone of Z, ±hh, ±hhmm or ±hh:mm.
// Values without a zone are read as UTC.
func ParseISO8601(s string) (time.Time, error) {
	p := &isoParser{s: strings.TrimSpace(s)}
	t, ok := p.parse()
	if !ok || p.i != len(p.s) {
		return time.Time{}, fmt.Errorf("invalid ISO-8601 date %q", s)
	}
	return t, nil
}

type isoParser struct {
	s string
	i int
}

func (p *isoParser) peek() byte {
	if p.i < len(p.s) {
		return p.s[p.i]
	}
	return 0
}

func (p *isoParser) accept(chars string) bool {
	if c := p.peek(); c != 0 && strings.IndexByte(chars, c) >= 0 {
		p.i++
		return true
	}
	return false
}

// run counts the digits starting at the cursor.
func (p *isoParser) run() int {
	n := 0
	for p.i+n < len(p.s) && p.s[p.i+n] >= '0' && p.s[p.i+n] <= '9' {
		n++
	}
	return n
}

func (p *isoParser) number(width int) (int, bool) {
	if p.run() < width {
		return 0, false
	}
	n, _ := strconv.Atoi(p.s[p.i : p.i+width])
	p.i += width
	return n, true
}

func (p *isoParser) parse() (time.Time, bool) {
	sign := 1
	if p.accept("-") {
		sign = -1
	} else {
		p.accept("+")
	}

	// six digits would be the ambiguous YYYYMM form
	if n := p.run(); n < 4 || n == 6 {
		return time.Time{}, false
	}
	year, _ := p.number(4)
	year *= sign

	if p.i == len(p.s) {
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}

	date, ok := p.date(year)
	if !ok {
		return time.Time{}, false
	}
	if p.i == len(p.s) {
		return date, true
	}
	if !p.accept("Tt ") {
		return time.Time{}, false
	}
	return p.clock(date)
}

// date reads whatever follows the year: month and day, ordinal day or week.
func (p *isoParser) date(year int) (time.Time, bool) {
	extended := p.accept("-")

	if p.accept("W") {
		week, ok := p.number(2)
		if !ok || week < 1 || week > weeksIn(year) {
			return time.Time{}, false
		}
		weekday := 1
		if extended && p.accept("-") || !extended && p.run() > 0 {
			if weekday, ok = p.number(1); !ok || weekday < 1 || weekday > 7 {
				return time.Time{}, false
			}
		}
		return isoWeekStart(year).AddDate(0, 0, (week-1)*7+weekday-1), true
	}

	switch n := p.run(); {
	case n == 3:
		day, _ := p.number(3)
		if day < 1 || day > time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() {
			return time.Time{}, false
		}
		return time.Date(year, time.January, day, 0, 0, 0, 0, time.UTC), true
	case extended && n == 2:
		month, _ := p.number(2)
		day := 1
		if p.accept("-") {
			var ok bool
			if day, ok = p.number(2); !ok {
				return time.Time{}, false
			}
		}
		return calendarDate(year, month, day)
	case !extended && n == 4:
		month, _ := p.number(2)
		day, _ := p.number(2)
		return calendarDate(year, month, day)
	}
	return time.Time{}, false
}

func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

// isoWeekStart is the Monday of week 1, the week holding January 4th.
func isoWeekStart(year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return jan4.AddDate(0, 0, -((int(jan4.Weekday()) + 6) % 7))
}

func weeksIn(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// clock reads the time of day and zone and applies them to date.
func (p *isoParser) clock(date time.Time) (time.Time, bool) {
	hour, ok := p.number(2)
	if !ok || hour > 24 {
		return time.Time{}, false
	}
	elapsed := time.Duration(hour) * time.Hour
	unit := time.Hour

	colon := p.accept(":")
	if colon || p.run() >= 2 {
		minute, ok := p.number(2)
		if !ok || minute > 59 {
			return time.Time{}, false
		}
		elapsed += time.Duration(minute) * time.Minute
		unit = time.Minute

		if colon && p.accept(":") || !colon && p.run() >= 2 {
			second, ok := p.number(2)
			if !ok || second > 60 {
				return time.Time{}, false
			}
			elapsed += time.Duration(second) * time.Second
			unit = time.Second
		}
	}

	if p.accept(".,") {
		n := p.run()
		if n == 0 {
			return time.Time{}, false
		}
		frac, _ := strconv.ParseFloat("0."+p.s[p.i:p.i+n], 64)
		p.i += n
		elapsed += time.Duration(frac * float64(unit))
	}

	if hour == 24 && elapsed != 24*time.Hour {
		return time.Time{}, false
	}

	offset, ok := p.zone()
	if !ok {
		return time.Time{}, false
	}
	return date.Add(elapsed - offset), true
}

// zone returns the UTC offset; no zone means UTC.
func (p *isoParser) zone() (time.Duration, bool) {
	if p.accept("Zz") {
		return 0, true
	}

	sign := time.Duration(1)
	switch {
	case p.accept("+"):
	case p.accept("-"):
		sign = -1
	default:
		return 0, true
	}

	hours, ok := p.number(2)
	if !ok || hours > 23 {
		return 0, false
	}
	offset := time.Duration(hours) * time.Hour

	colon := p.accept(":")
	if colon || p.run() > 0 {
		minutes, ok := p.number(2)
		if !ok || minutes > 59 {
			return 0, false
		}
		offset += time.Duration(minutes) * time.Minute
	}
	return sign * offset, true
}
