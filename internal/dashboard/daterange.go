package dashboard

import "time"

// DateRange resolves a filter to a concrete [start, end] window. The end is
// always "now" normalized to the end of the current calendar day except for
// custom filters, where the caller-supplied end wins. Relative filters are
// inclusive of exactly that many calendar days ending today.
func DateRange(filter DateFilter) (time.Time, time.Time) {
	return dateRangeAt(filter, time.Now())
}

// dateRangeAt is the pure core of DateRange: for an identical "now" it is
// idempotent.
func dateRangeAt(filter DateFilter, now time.Time) (time.Time, time.Time) {
	end := endOfDay(now)

	switch filter.Type {
	case FilterToday:
		return startOfDay(now), end
	case Filter7Days:
		return startOfDay(end.AddDate(0, 0, -6)), end
	case Filter30Days:
		return startOfDay(end.AddDate(0, 0, -29)), end
	case FilterCustom:
		start := time.Unix(0, 0).UTC()
		if filter.Start != nil {
			start = *filter.Start
		}
		if filter.End != nil {
			return start, *filter.End
		}
		return start, end
	default:
		return time.Unix(0, 0).UTC(), end
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// PeriodLabel returns the display label for a filter, matching the labels the
// dashboard UI renders.
func PeriodLabel(filter DateFilter) string {
	switch filter.Type {
	case FilterToday:
		return "Hoje"
	case Filter7Days:
		return "Últimos 7 dias"
	case Filter30Days:
		return "Últimos 30 dias"
	case FilterCustom:
		return "Período personalizado"
	default:
		return ""
	}
}

func resolvePeriod(filter DateFilter) Period {
	start, end := DateRange(filter)
	return Period{Start: start, End: end, Label: PeriodLabel(filter)}
}
