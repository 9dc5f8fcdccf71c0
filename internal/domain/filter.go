package domain

import (
	"fmt"
	"time"
)

// DateRange is an inclusive pair of calendar days; Start never follows End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both bounds to days and swaps them if reversed.
func NewDateRange(start, end time.Time) DateRange {
	start, end = day(start), day(end)
	if start.After(end) {
		start, end = end, start
	}
	return DateRange{Start: start, End: end}
}

// ParseDateRange parses two YYYY-MM-DD strings.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse start date %q: %w", start, err)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("parse end date %q: %w", end, err)
	}
	return NewDateRange(s, e), nil
}

// WithStart moves the start bound, dragging End along if it would be passed.
func (r DateRange) WithStart(start time.Time) DateRange {
	r.Start = day(start)
	if r.Start.After(r.End) {
		r.End = r.Start
	}
	return r
}

// WithEnd moves the end bound, dragging Start along if it would be passed.
func (r DateRange) WithEnd(end time.Time) DateRange {
	r.End = day(end)
	if r.End.Before(r.Start) {
		r.Start = r.End
	}
	return r
}

// StartDate renders the start bound as YYYY-MM-DD.
func (r DateRange) StartDate() string { return r.Start.Format(time.DateOnly) }

// EndDate renders the end bound as YYYY-MM-DD.
func (r DateRange) EndDate() string { return r.End.Format(time.DateOnly) }

func (r DateRange) String() string {
	return r.StartDate() + ".." + r.EndDate()
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Period is a preset trailing window ending today.
type Period string

const (
	PeriodLast7Days  Period = "last-7-days"
	PeriodLast30Days Period = "last-30-days"
	PeriodLast90Days Period = "last-90-days"
)

// Range resolves the preset into a concrete range ending on now's day.
func (p Period) Range(now time.Time) (DateRange, error) {
	var days int
	switch p {
	case PeriodLast7Days:
		days = 7
	case PeriodLast30Days:
		days = 30
	case PeriodLast90Days:
		days = 90
	default:
		return DateRange{}, fmt.Errorf("unknown period %q", p)
	}
	end := day(now)
	return DateRange{Start: end.AddDate(0, 0, -(days - 1)), End: end}, nil
}

// SourceFilter selects all feeds or a single one.
type SourceFilter string

const (
	AllSources SourceFilter = "all-sources"
	FilterSFC  SourceFilter = "sfc"
	FilterHKMA SourceFilter = "hkma"
	FilterSEC  SourceFilter = "sec"
	FilterHKEX SourceFilter = "hkex"
)

// ParseSourceFilter accepts the filter keys and the bare feed names.
func ParseSourceFilter(value string) (SourceFilter, error) {
	if value == "" || value == string(AllSources) || value == "all" {
		return AllSources, nil
	}
	src, ok := ParseSource(value)
	if !ok {
		return "", fmt.Errorf("unknown source filter %q", value)
	}
	return SourceFilterFor(src), nil
}

// SourceFilterFor returns the filter selecting a single feed.
func SourceFilterFor(src Source) SourceFilter {
	switch src {
	case SourceSFC:
		return FilterSFC
	case SourceHKMA:
		return FilterHKMA
	case SourceSEC:
		return FilterSEC
	case SourceHKEX:
		return FilterHKEX
	}
	return AllSources
}

// APIValue returns the `sources` query value, empty when no filtering applies.
func (f SourceFilter) APIValue() string {
	switch f {
	case FilterSFC:
		return string(SourceSFC)
	case FilterHKMA:
		return string(SourceHKMA)
	case FilterSEC:
		return string(SourceSEC)
	case FilterHKEX:
		return string(SourceHKEX)
	}
	return ""
}

// StatusFilter selects all statuses or a single one.
type StatusFilter string

const AllStatuses StatusFilter = "all-statuses"

// StatusFilterFor returns the filter selecting a single status.
func StatusFilterFor(s Status) StatusFilter {
	return StatusFilter(s)
}

// ParseStatusFilter accepts the filter keys.
func ParseStatusFilter(value string) (StatusFilter, error) {
	if value == "" || value == string(AllStatuses) || value == "all" {
		return AllStatuses, nil
	}
	s := Status(value)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status filter %q", value)
	}
	return StatusFilterFor(s), nil
}

// APIValue returns the `status` query value, empty when no filtering applies.
func (f StatusFilter) APIValue() string {
	s := Status(f)
	if !s.Valid() {
		return ""
	}
	return s.APIValue()
}

// Filters is the full set of inputs shaping a listing fetch.
type Filters struct {
	DateRange DateRange
	Source    SourceFilter
	Status    StatusFilter
}

// Query translates the filters into gateway parameters.
func (f Filters) Query() NewsQuery {
	return NewsQuery{
		StartDate: f.DateRange.StartDate(),
		EndDate:   f.DateRange.EndDate(),
		Sources:   f.Source.APIValue(),
		Status:    f.Status.APIValue(),
	}
}

// NewsQuery holds the grouped listing parameters; empty values are omitted.
type NewsQuery struct {
	StartDate string
	EndDate   string
	Sources   string
	Status    string
}
