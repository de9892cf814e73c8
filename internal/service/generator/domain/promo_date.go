// internal/service/generator/domain/promo_date.go
package domain

import "time"

// DateLayout 订单日期与预计送达日期的输出格式 (MM/DD/YYYY)
const DateLayout = "01/02/2006"

// PromoRule 描述促销日：Month 月从 StartDay 起第 Week 个星期四的第二天。
type PromoRule struct {
	Month    time.Month
	StartDay int
	Week     int
}

// DefaultPromoRule 黑色星期五：11 月第 4 个星期四之后的周五
var DefaultPromoRule = PromoRule{Month: time.November, StartDay: 1, Week: 4}

// NextPromotionalDate 计算相对 today 的下一个促销日。
// 当 today 已经过了 Month 月，或在 Month 月且日期大于 StartDay+Week 时，顺延到下一年。
func NextPromotionalDate(today time.Time, rule PromoRule) (time.Time, error) {
	if rule.Month < time.January || rule.Month > time.December {
		return time.Time{}, NewCalculationError(nil, "invalid promotional month %d", rule.Month)
	}
	if rule.Week < 1 {
		return time.Time{}, NewCalculationError(nil, "invalid promotional week %d", rule.Week)
	}

	year := today.Year()
	if today.Month() > rule.Month || (today.Month() == rule.Month && today.Day() > rule.StartDay+rule.Week) {
		year++
	}

	if rule.StartDay < 1 || rule.StartDay > daysIn(rule.Month, year) {
		return time.Time{}, NewCalculationError(nil, "day %d is out of range for month %s %d", rule.StartDay, rule.Month, year)
	}

	d := time.Date(year, rule.Month, rule.StartDay, 0, 0, 0, 0, time.UTC)
	// 先滚到当天或之后的第一个星期四，再加 Week-1 周
	offset := (int(time.Thursday) - int(d.Weekday()) + 7) % 7
	d = d.AddDate(0, 0, offset+7*(rule.Week-1))
	d = d.AddDate(0, 0, 1)

	if d.Month() != rule.Month {
		return time.Time{}, NewCalculationError(nil, "promotional date %s falls outside %s", d.Format(DateLayout), rule.Month)
	}
	return d, nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
