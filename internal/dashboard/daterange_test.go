package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, time.March, 15, 14, 30, 45, 0, time.UTC)

func TestDateRangeAt_Today(t *testing.T) {
	start, end := dateRangeAt(DateFilter{Type: FilterToday}, testNow)

	assert.Equal(t, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 15, 23, 59, 59, 999000000, time.UTC), end)
}

func TestDateRangeAt_SevenDays(t *testing.T) {
	start, end := dateRangeAt(DateFilter{Type: Filter7Days}, testNow)

	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 15, 23, 59, 59, 999000000, time.UTC), end)
	// Inclusive of exactly seven calendar days.
	assert.Equal(t, 7, end.YearDay()-start.YearDay()+1)
}

func TestDateRangeAt_ThirtyDays(t *testing.T) {
	start, end := dateRangeAt(DateFilter{Type: Filter30Days}, testNow)

	assert.Equal(t, time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 15, 23, 59, 59, 999000000, time.UTC), end)
}

func TestDateRangeAt_CrossesMonthBoundary(t *testing.T) {
	now := time.Date(2025, time.March, 2, 8, 0, 0, 0, time.UTC)

	start, _ := dateRangeAt(DateFilter{Type: Filter7Days}, now)

	assert.Equal(t, time.Date(2025, time.February, 24, 0, 0, 0, 0, time.UTC), start)
}

func TestDateRangeAt_Custom(t *testing.T) {
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 31, 18, 0, 0, 0, time.UTC)

	start, end := dateRangeAt(DateFilter{Type: FilterCustom, Start: &from, End: &to}, testNow)

	assert.Equal(t, from, start)
	assert.Equal(t, to, end)
}

func TestDateRangeAt_CustomMissingBounds(t *testing.T) {
	start, end := dateRangeAt(DateFilter{Type: FilterCustom}, testNow)

	assert.Equal(t, time.Unix(0, 0).UTC(), start)
	assert.Equal(t, time.Date(2025, time.March, 15, 23, 59, 59, 999000000, time.UTC), end)
}

func TestDateRangeAt_Idempotent(t *testing.T) {
	filter := DateFilter{Type: Filter30Days}

	s1, e1 := dateRangeAt(filter, testNow)
	s2, e2 := dateRangeAt(filter, testNow)

	assert.Equal(t, s1, s2)
	assert.Equal(t, e1, e2)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Hoje", PeriodLabel(DateFilter{Type: FilterToday}))
	assert.Equal(t, "Últimos 7 dias", PeriodLabel(DateFilter{Type: Filter7Days}))
	assert.Equal(t, "Últimos 30 dias", PeriodLabel(DateFilter{Type: Filter30Days}))
	assert.Equal(t, "Período personalizado", PeriodLabel(DateFilter{Type: FilterCustom}))
	assert.Equal(t, "", PeriodLabel(DateFilter{Type: FilterType("bogus")}))
}
