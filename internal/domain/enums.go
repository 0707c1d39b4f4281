package domain

type EarningType string

const (
	EarningTrip  EarningType = "trip"
	EarningTip   EarningType = "tip"
	EarningBonus EarningType = "bonus"
)

func ParseEarningType(s string) (EarningType, bool) {
	switch EarningType(s) {
	case EarningTrip, EarningTip, EarningBonus:
		return EarningType(s), true
	}
	return "", false
}

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodAll:
		return Period(s), true
	}
	return "", false
}
