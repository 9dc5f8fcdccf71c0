package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"NewsDesk/internal/domain"
)

// filterOptions are the listing flags shared by every command that needs
// articles loaded first.
type filterOptions struct {
	from   string
	to     string
	period string
	source string
	status string
}

func (o *filterOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.from, "from", "", "first day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.to, "to", "", "last day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.period, "period", "", "preset window: last-7-days, last-30-days, last-90-days")
	cmd.Flags().StringVar(&o.source, "source", "", "all-sources, sfc, hkma, sec or hkex")
	cmd.Flags().StringVar(&o.status, "status", "", "all-statuses, pending, verified or discarded")
}

// apply layers the flags over base. A period is resolved first so explicit
// bounds can narrow it.
func (o *filterOptions) apply(base domain.Filters, now time.Time) (domain.Filters, error) {
	f := base

	if o.period != "" {
		dr, err := domain.Period(o.period).Range(now)
		if err != nil {
			return domain.Filters{}, err
		}
		f.DateRange = dr
	}
	if o.from != "" {
		day, err := parseDay(o.from)
		if err != nil {
			return domain.Filters{}, err
		}
		f.DateRange = f.DateRange.WithStart(day)
	}
	if o.to != "" {
		day, err := parseDay(o.to)
		if err != nil {
			return domain.Filters{}, err
		}
		f.DateRange = f.DateRange.WithEnd(day)
	}

	if o.source != "" {
		src, err := domain.ParseSourceFilter(o.source)
		if err != nil {
			return domain.Filters{}, err
		}
		f.Source = src
	}
	if o.status != "" {
		st, err := domain.ParseStatusFilter(o.status)
		if err != nil {
			return domain.Filters{}, err
		}
		f.Status = st
	}

	return f, nil
}

func parseDay(value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return t, nil
}
