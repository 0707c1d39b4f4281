package earnings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
)

func amt(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.Parse(s)
	require.NoError(t, err)
	return a
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, time.Now())
	assert.Equal(t, Summary{}, s)
	assert.Equal(t, "0.00", s.Total.String())
}

func TestAggregateTodayScenario(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)
	rows := []Earning{
		{Amount: amt(t, "20.00"), Type: domain.EarningTrip, CreatedAt: now.Add(-2 * time.Hour)},
		{Amount: amt(t, "5.00"), Type: domain.EarningTip, CreatedAt: now.Add(-1 * time.Hour)},
		{Amount: amt(t, "0.00"), Type: domain.EarningBonus, CreatedAt: now.Add(-30 * time.Minute)},
	}

	s := Aggregate(rows, now)
	assert.Equal(t, "25.00", s.Total.String())
	assert.Equal(t, "25.00", s.Today.String())
	assert.Equal(t, "20.00", s.Breakdown.Trips.String())
	assert.Equal(t, "5.00", s.Breakdown.Tips.String())
	assert.Equal(t, "0.00", s.Breakdown.Bonuses.String())
}

func TestAggregateCutoffs(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	rows := []Earning{
		// today, 09:00
		{Amount: 1000, Type: domain.EarningTrip, CreatedAt: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)},
		// yesterday: inside week and month, outside today
		{Amount: 200, Type: domain.EarningTip, CreatedAt: now.AddDate(0, 0, -1)},
		// 8 days ago: inside month only
		{Amount: 30, Type: domain.EarningBonus, CreatedAt: now.AddDate(0, 0, -8)},
		// 40 days ago: total only
		{Amount: 4, Type: domain.EarningTrip, CreatedAt: now.AddDate(0, 0, -40)},
	}

	s := Aggregate(rows, now)
	assert.Equal(t, money.Amount(1234), s.Total)
	assert.Equal(t, money.Amount(1000), s.Today)
	assert.Equal(t, money.Amount(1200), s.ThisWeek)
	assert.Equal(t, money.Amount(1230), s.ThisMonth)
}

func TestAggregateBreakdownPartitionsTotal(t *testing.T) {
	now := time.Now()
	types := []domain.EarningType{domain.EarningTrip, domain.EarningTip, domain.EarningBonus}
	var rows []Earning
	for i := 0; i < 50; i++ {
		rows = append(rows, Earning{
			Amount:    money.Amount(i * 137),
			Type:      types[i%3],
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}

	s := Aggregate(rows, now)
	assert.Equal(t, s.Total, s.Breakdown.Trips+s.Breakdown.Tips+s.Breakdown.Bonuses)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 45, 0, time.UTC)

	start, ok := PeriodStart(domain.PeriodToday, now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), start)

	start, ok = PeriodStart(domain.PeriodWeek, now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -7), start)

	start, ok = PeriodStart(domain.PeriodMonth, now)
	require.True(t, ok)
	assert.Equal(t, now.AddDate(0, -1, 0), start)

	_, ok = PeriodStart(domain.PeriodAll, now)
	assert.False(t, ok)
}
