/*
Package date holds a calendar date where the year, month and day can each be left unspecified.

Sometimes not all parts of a date are needed. For example `-d 2019-11` filters all entries
from November 2019, while `-d 21` on an add command only supplies the day and lets the
year and month be filled from today.
*/
package date

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a string matches none of the known formats, or when the
// supplied parts do not form a real calendar day.
var ErrInvalidDate = errors.New("invalid date")

const (
	partDay uint8 = 1 << iota
	partMonth
	partYear
)

// Date is a calendar date plus a mask recording which of year, month and day were supplied.
// Unset parts resolve to 1970-01-01 but are left out when the date is rendered.
type Date struct {
	t    time.Time
	used uint8
}

// Ordered, first match wins.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?P<y>\d{4})-(?P<m>\d{1,2})-(?P<d>\d{1,2})`), // YYYY-MM-DD
	regexp.MustCompile(`^(?P<y>\d{4})/(?P<m>\d{1,2})/(?P<d>\d{1,2})`), // YYYY/MM/DD
	regexp.MustCompile(`^(?P<y>\d{2})-(?P<m>\d{1,2})-(?P<d>\d{1,2})`), // YY-MM-DD
	regexp.MustCompile(`^(?P<y>\d{2})/(?P<m>\d{1,2})/(?P<d>\d{1,2})`), // YY/MM/DD
	regexp.MustCompile(`^(?P<y>\d{4})-(?P<m>\d{1,2})`),                // YYYY-MM
	regexp.MustCompile(`^(?P<m>\d{1,2})-(?P<d>\d{1,2})`),              // MM-DD

	regexp.MustCompile(`^(?P<d>\d{1,2})\.(?P<m>\d{1,2})\.(?P<y>\d{4})`), // DD.MM.YYYY
	regexp.MustCompile(`^(?P<d>\d{1,2})\.(?P<m>\d{1,2})`),               // DD.MM

	regexp.MustCompile(`^(?P<m>\d{1,2})/(?P<d>\d{1,2})/(?P<y>\d{2,4})`), // MM/DD/YYYY
	regexp.MustCompile(`^(?P<m>\d{1,2})/(?P<d>\d{1,2})`),                // MM/DD

	regexp.MustCompile(`^(?P<y>\d{4})`),   // YYYY
	regexp.MustCompile(`^(?P<d>\d{1,2})`), // DD
}

// New returns the empty date: 1970-01-01 with no part supplied.
func New() Date {
	return Date{t: time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

// Parse reads s using the first matching format. Parts the format does not carry stay unset.
// A two digit year is read as 20YY.
func Parse(s string) (Date, error) {
	var y, m, d int

	for _, re := range patterns {
		match := re.FindStringSubmatch(s)
		if match == nil {
			continue
		}
		for i, name := range re.SubexpNames() {
			if name == "" {
				continue
			}
			v, err := strconv.Atoi(match[i])
			if err != nil {
				return Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
			}
			switch name {
			case "y":
				y = v
			case "m":
				m = v
			case "d":
				d = v
			}
		}
		break
	}

	var used uint8
	if y == 0 {
		y = 1970
	} else {
		used |= partYear
		if y < 100 {
			y += 2000
		}
	}
	if m == 0 {
		m = 1
	} else {
		used |= partMonth
	}
	if d == 0 {
		d = 1
	} else {
		used |= partDay
	}

	if used == 0 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	t, err := build(y, m, d)
	if err != nil {
		return Date{}, fmt.Errorf("%q: %w", s, err)
	}
	return Date{t: t, used: used}, nil
}

// MustParse is like Parse but panics on error. Meant for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// build constructs a UTC midnight time, refusing anything time.Date would normalise.
func build(y, m, d int) (time.Time, error) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, y, m, d)
	}
	return t, nil
}

func (d Date) has(p uint8) bool {
	return d.used&p != 0
}

func (d Date) HasYear() bool  { return d.has(partYear) }
func (d Date) HasMonth() bool { return d.has(partMonth) }
func (d Date) HasDay() bool   { return d.has(partDay) }

// IsEmpty reports whether no part was supplied.
func (d Date) IsEmpty() bool {
	return d.used == 0
}

func (d Date) resolved() time.Time {
	if d.t.IsZero() {
		return New().t
	}
	return d.t
}

func (d Date) Year() int  { return d.resolved().Year() }
func (d Date) Month() int { return int(d.resolved().Month()) }
func (d Date) Day() int   { return d.resolved().Day() }

// Time returns the resolved calendar day at midnight UTC.
func (d Date) Time() time.Time {
	return d.resolved()
}

func (d *Date) set(y, m, dd int) error {
	t, err := build(y, m, dd)
	if err != nil {
		return err
	}
	d.t = t
	return nil
}

// SetYear sets the year and marks it as supplied.
func (d *Date) SetYear(y int) error {
	if err := d.RawSetYear(y); err != nil {
		return err
	}
	d.used |= partYear
	return nil
}

// RawSetYear sets the year without marking it as supplied.
func (d *Date) RawSetYear(y int) error {
	return d.set(y, d.Month(), d.Day())
}

// SetMonth sets the month and marks it as supplied.
func (d *Date) SetMonth(m int) error {
	if err := d.RawSetMonth(m); err != nil {
		return err
	}
	d.used |= partMonth
	return nil
}

// RawSetMonth sets the month without marking it as supplied.
func (d *Date) RawSetMonth(m int) error {
	return d.set(d.Year(), m, d.Day())
}

// SetDay sets the day and marks it as supplied.
func (d *Date) SetDay(dd int) error {
	if err := d.RawSetDay(dd); err != nil {
		return err
	}
	d.used |= partDay
	return nil
}

// RawSetDay sets the day without marking it as supplied.
func (d *Date) RawSetDay(dd int) error {
	return d.set(d.Year(), d.Month(), dd)
}

// Fill completes the missing parts from now and marks them as supplied.
// Used when adding entries: the filled day is a real part of the entry's date.
func (d *Date) Fill(now time.Time) error {
	if !d.HasYear() {
		if err := d.SetYear(now.Year()); err != nil {
			return err
		}
	}
	if !d.HasMonth() {
		if err := d.SetMonth(int(now.Month())); err != nil {
			return err
		}
	}
	if !d.HasDay() {
		if err := d.SetDay(now.Day()); err != nil {
			return err
		}
	}
	return nil
}

// RawFill completes the missing parts from now without marking them, so a filter keeps
// its granularity. A day taken from now is clamped to the last day of the month.
func (d *Date) RawFill(now time.Time) error {
	if !d.HasYear() {
		if err := d.RawSetYear(now.Year()); err != nil {
			return err
		}
	}
	if !d.HasMonth() {
		if err := d.RawSetMonth(int(now.Month())); err != nil {
			return err
		}
	}
	if !d.HasDay() {
		day := now.Day()
		if last := daysIn(d.Year(), d.Month()); day > last {
			day = last
		}
		if err := d.RawSetDay(day); err != nil {
			return err
		}
	}
	return nil
}

// daysIn is the number of days in the month.
func daysIn(y, m int) int {
	return time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Equal compares the resolved year, month and day only. Which parts were supplied is ignored.
func (d Date) Equal(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

// FMonth is the two digit month.
func (d Date) FMonth() string {
	return d.resolved().Format("01")
}

func (d Date) join(sep string, parts uint8) string {
	items := make([]string, 0, 3)
	t := d.resolved()
	if parts&partYear != 0 && d.HasYear() {
		items = append(items, t.Format("2006"))
	}
	if parts&partMonth != 0 && d.HasMonth() {
		items = append(items, t.Format("01"))
	}
	if parts&partDay != 0 && d.HasDay() {
		items = append(items, t.Format("02"))
	}
	return strings.Join(items, sep)
}

// YMD renders the supplied parts joined by '-'.
func (d Date) YMD() string {
	return d.join("-", partYear|partMonth|partDay)
}

// YM renders the supplied year and month joined by '-'.
func (d Date) YM() string {
	return d.FYM("-")
}

// FYM renders the supplied year and month joined by sep.
func (d Date) FYM(sep string) string {
	return d.join(sep, partYear|partMonth)
}

// RYM always renders year and month, joined by '_'. Month file names are built from it.
func (d Date) RYM() string {
	return d.resolved().Format("2006_01")
}

func (d Date) String() string {
	return d.YMD()
}

func (d Date) GoString() string {
	yn := func(b bool) string {
		if b {
			return "Y"
		}
		return "N"
	}
	return fmt.Sprintf("Date[%s, Y=%s M=%s D=%s]",
		d.resolved().Format("2006-01-02"), yn(d.HasYear()), yn(d.HasMonth()), yn(d.HasDay()))
}
