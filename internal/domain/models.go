package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Bar is one timestamped price bar
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Profile is the textual description of a listed company or fund
type Profile struct {
	Name        string
	Description string
	Exchange    string
	Homepage    string
	Employees   int
	MarketCap   float64
}

// Stock is what the data source returns for one query
type Stock struct {
	Symbol  string
	Bars    []Bar
	Profile *Profile // nil if the profile lookup failed or was skipped
}

// FirstBar returns the oldest bar, if any
func (s *Stock) FirstBar() (Bar, bool) {
	if s == nil || len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[0], true
}

// LastBar returns the newest bar, if any
func (s *Stock) LastBar() (Bar, bool) {
	if s == nil || len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// CompanyName returns the profile name or "" when no profile is loaded
func (s *Stock) CompanyName() string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.Name
}

// TimeFrame is the width of the historical window shown in the chart
type TimeFrame uint8

const (
	FiveDays TimeFrame = iota
	OneMonth
	ThreeMonths
	SixMonths
	YearToDate
	OneYear
	TwoYears
	FiveYears
	TenYears
	Max
)

// TimeFrames lists every time frame in menu order
var TimeFrames = []TimeFrame{
	FiveDays, OneMonth, ThreeMonths, SixMonths, YearToDate,
	OneYear, TwoYears, FiveYears, TenYears, Max,
}

var timeFrameNames = [...]string{"5d", "1mo", "3mo", "6mo", "ytd", "1y", "2y", "5y", "10y", "max"}

// Errors returned by ParseTimeFrame
var (
	ErrEmptyTimeFrame   = errors.New("cannot parse time frame from empty string")
	ErrInvalidTimeFrame = errors.New("invalid time frame literal")
)

// ParseTimeFrame parses the short names used on the command line ("5d", "1mo", ...)
func ParseTimeFrame(s string) (TimeFrame, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyTimeFrame
	}
	for i, name := range timeFrameNames {
		if name == s {
			return TimeFrame(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFrame, s)
}

func (tf TimeFrame) String() string {
	if int(tf) < len(timeFrameNames) {
		return timeFrameNames[tf]
	}
	return fmt.Sprintf("TimeFrame(%d)", uint8(tf))
}

// MarshalText implements encoding.TextMarshaler so config files store "1mo"
func (tf TimeFrame) MarshalText() ([]byte, error) {
	return []byte(tf.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (tf *TimeFrame) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeFrame(string(text))
	if err != nil {
		return err
	}
	*tf = parsed
	return nil
}

const day = 24 * time.Hour

// Duration returns the window length. Year-to-date and max have no fixed
// length and report false; they cannot be paged.
func (tf TimeFrame) Duration() (time.Duration, bool) {
	switch tf {
	case FiveDays:
		return 5 * day, true
	case OneMonth:
		return 30 * day, true
	case ThreeMonths:
		return 30 * 3 * day, true
	case SixMonths:
		return 30 * 6 * day, true
	case OneYear:
		return 30 * 12 * day, true
	case TwoYears:
		return 30 * 12 * 2 * day, true
	case FiveYears:
		return 30 * 12 * 5 * day, true
	case TenYears:
		return 30 * 12 * 10 * day, true
	default:
		return 0, false
	}
}

// Window returns the interval to request for the latest data, ending at now
func (tf TimeFrame) Window(now time.Time) (time.Time, time.Time) {
	if d, ok := tf.Duration(); ok {
		return now.Add(-d), now
	}
	if tf == YearToDate {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now
	}
	// max: as far back as the data source is willing to go
	return now.AddDate(-30, 0, 0), now
}

// Indicator is a technical overlay drawn on top of the price line
type Indicator uint8

const (
	SMA Indicator = iota
	EMA
	Bollinger
)

// Indicators lists every indicator in menu order
var Indicators = []Indicator{SMA, EMA, Bollinger}

var indicatorNames = [...]string{"sma", "ema", "bollinger"}

func (i Indicator) String() string {
	if int(i) < len(indicatorNames) {
		return indicatorNames[i]
	}
	return fmt.Sprintf("Indicator(%d)", uint8(i))
}

// Label is the menu text for the indicator
func (i Indicator) Label() string {
	switch i {
	case SMA:
		return "SMA(20)"
	case EMA:
		return "EMA(20)"
	case Bollinger:
		return "Bollinger(20,2)"
	default:
		return i.String()
	}
}

// ParseIndicator parses "sma", "ema" or "bollinger". An empty string means
// no indicator and returns ok=false with a nil error.
func ParseIndicator(s string) (ind Indicator, ok bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return 0, false, nil
	}
	for i, name := range indicatorNames {
		if name == s {
			return Indicator(i), true, nil
		}
	}
	return 0, false, fmt.Errorf("unknown indicator %q", s)
}

// DateRange is an explicit [Start, End] window. The zero value means
// "latest data for the time frame".
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range is the implicit "latest" window
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) String() string {
	if r.IsZero() {
		return "latest"
	}
	return r.Start.Format("2006-01-02") + " – " + r.End.Format("2006-01-02")
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// ShiftBefore returns the window of the time frame's length that ends the
// day before first. Time frames without a duration cannot page and return
// the zero range with ok=false.
func ShiftBefore(tf TimeFrame, first time.Time) (DateRange, bool) {
	d, ok := tf.Duration()
	if !ok {
		return DateRange{}, false
	}
	end := endOfDay(first.Add(-day))
	start := startOfDay(end.Add(-d).Add(day))
	return DateRange{Start: start, End: end}, true
}

// ShiftAfter returns the window that starts the day after last. A window
// that would end after now collapses back to the zero ("latest") range.
func ShiftAfter(tf TimeFrame, last, now time.Time) (DateRange, bool) {
	d, ok := tf.Duration()
	if !ok {
		return DateRange{}, false
	}
	start := startOfDay(last.Add(day))
	end := endOfDay(start.Add(d).Add(-day))
	if end.After(now) {
		return DateRange{}, true
	}
	return DateRange{Start: start, End: end}, true
}

// Query identifies one request to the data source
type Query struct {
	Symbol    string
	TimeFrame TimeFrame
	Range     DateRange
}

// Key is the cache key for the query
func (q Query) Key() string {
	if q.Range.IsZero() {
		return fmt.Sprintf("%s|%s|latest", q.Symbol, q.TimeFrame)
	}
	return fmt.Sprintf("%s|%s|%d-%d", q.Symbol, q.TimeFrame, q.Range.Start.Unix(), q.Range.End.Unix())
}

// Bounds returns the concrete interval to request, resolving the zero range
// against now
func (q Query) Bounds(now time.Time) (time.Time, time.Time) {
	if !q.Range.IsZero() {
		return q.Range.Start, q.Range.End
	}
	return q.TimeFrame.Window(now)
}
