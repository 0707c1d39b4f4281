package earnings

import (
	"time"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
)

// Summary is what the earnings screen renders. All sums are integer minor
// units; an empty ledger yields all zeros, never an error.
type Summary struct {
	Total     money.Amount `json:"total"`
	Today     money.Amount `json:"today"`
	ThisWeek  money.Amount `json:"this_week"`
	ThisMonth money.Amount `json:"this_month"`
	Breakdown Breakdown    `json:"breakdown"`
}

type Breakdown struct {
	Trips   money.Amount `json:"trips"`
	Tips    money.Amount `json:"tips"`
	Bonuses money.Amount `json:"bonuses"`
}

// PeriodStart returns the creation-time lower bound for a period, relative to
// now. PeriodAll has no bound.
func PeriodStart(p domain.Period, now time.Time) (time.Time, bool) {
	switch p {
	case domain.PeriodToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case domain.PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case domain.PeriodMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// Aggregate computes the summary over an already-fetched set of entries. The
// today/week/month subtotals re-filter the same set against three cutoffs
// derived from the single `now`, and the breakdown partitions the set by
// type, so breakdown.trips+tips+bonuses always equals total.
func Aggregate(rows []Earning, now time.Time) Summary {
	todayStart, _ := PeriodStart(domain.PeriodToday, now)
	weekStart, _ := PeriodStart(domain.PeriodWeek, now)
	monthStart, _ := PeriodStart(domain.PeriodMonth, now)

	var s Summary
	for _, e := range rows {
		s.Total += e.Amount
		if !e.CreatedAt.Before(todayStart) {
			s.Today += e.Amount
		}
		if !e.CreatedAt.Before(weekStart) {
			s.ThisWeek += e.Amount
		}
		if !e.CreatedAt.Before(monthStart) {
			s.ThisMonth += e.Amount
		}
		switch e.Type {
		case domain.EarningTrip:
			s.Breakdown.Trips += e.Amount
		case domain.EarningTip:
			s.Breakdown.Tips += e.Amount
		case domain.EarningBonus:
			s.Breakdown.Bonuses += e.Amount
		}
	}
	return s
}
