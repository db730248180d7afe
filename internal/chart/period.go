// Package chart turns backend time series into chart-ready datasets:
// period-appropriate labels, a gradient-filled line, event annotations and
// the hover/period-gain numbers shown above the chart.
package chart

import (
	"fmt"
	"strings"
	"time"
)

type Period int

const (
	Period1W Period = iota
	Period1M
	Period3M
	Period6M
	PeriodYTD
	Period1Y
	PeriodAll
)

func (p Period) String() string {
	switch p {
	case Period1W:
		return "1w"
	case Period1M:
		return "1m"
	case Period3M:
		return "3m"
	case Period6M:
		return "6m"
	case PeriodYTD:
		return "ytd"
	case Period1Y:
		return "1y"
	case PeriodAll:
		return "all"
	default:
		return "1m"
	}
}

func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1w", "week":
		return Period1W, nil
	case "1m", "month", "":
		return Period1M, nil
	case "3m":
		return Period3M, nil
	case "6m":
		return Period6M, nil
	case "ytd":
		return PeriodYTD, nil
	case "1y", "year":
		return Period1Y, nil
	case "all", "max":
		return PeriodAll, nil
	default:
		return Period1M, fmt.Errorf("unknown period %q", s)
	}
}

// Label formats one ISO day for the axis. Short ranges need the weekday to
// tell points apart, long ranges need the year; a single fixed format
// either clutters or loses information.
func (p Period) Label(isoDay string) string {
	day := isoDay
	if len(day) > 10 {
		day = day[:10]
	}
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return isoDay
	}
	switch p {
	case Period1W:
		return t.Format("Mon, Jan 2")
	case Period1M, Period3M:
		return t.Format("Jan 2")
	case Period6M, PeriodYTD, Period1Y:
		return t.Format("Jan 06")
	default:
		return t.Format("Jan 2006")
	}
}
