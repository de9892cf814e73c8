package domain

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextPromotionalDate_KnownBlackFridays(t *testing.T) {
	cases := []struct {
		today time.Time
		want  time.Time
	}{
		{date(2023, time.January, 10), date(2023, time.November, 24)},
		{date(2024, time.June, 1), date(2024, time.November, 29)},
		{date(2025, time.November, 5), date(2025, time.November, 28)},
		// 11 月 6 日已超过 StartDay+Week，顺延到下一年
		{date(2025, time.November, 6), date(2026, time.November, 27)},
		{date(2026, time.December, 31), date(2027, time.November, 26)},
		{date(2026, time.October, 18), date(2026, time.November, 27)},
	}
	for _, tc := range cases {
		got, err := NextPromotionalDate(tc.today, DefaultPromoRule)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "today=%s", tc.today.Format(DateLayout))
	}
}

func TestNextPromotionalDate_AlwaysFridayAfterFourthThursday(t *testing.T) {
	start := date(2020, time.January, 1)
	for i := 0; i < 365*8; i += 5 {
		today := start.AddDate(0, 0, i)
		got, err := NextPromotionalDate(today, DefaultPromoRule)
		require.NoError(t, err)

		assert.Equal(t, time.Friday, got.Weekday())
		assert.Equal(t, time.November, got.Month())

		thursday := got.AddDate(0, 0, -1)
		assert.Equal(t, time.Thursday, thursday.Weekday())
		// 第 4 个星期四落在 22~28 日
		assert.GreaterOrEqual(t, thursday.Day(), 22)
		assert.LessOrEqual(t, thursday.Day(), 28)
	}
}

func TestNextPromotionalDate_InvalidRule(t *testing.T) {
	_, err := NextPromotionalDate(date(2025, time.March, 1), PromoRule{Month: 13, StartDay: 1, Week: 4})
	assert.True(t, errors.Is(err, ErrCalculation))

	_, err = NextPromotionalDate(date(2025, time.March, 1), PromoRule{Month: time.February, StartDay: 30, Week: 1})
	assert.True(t, errors.Is(err, ErrCalculation))

	_, err = NextPromotionalDate(date(2025, time.March, 1), PromoRule{Month: time.November, StartDay: 1, Week: 0})
	assert.True(t, errors.Is(err, ErrCalculation))

	// 从 11 月 20 日起第 4 个星期四会跑到 12 月
	_, err = NextPromotionalDate(date(2025, time.March, 1), PromoRule{Month: time.November, StartDay: 20, Week: 4})
	assert.True(t, errors.Is(err, ErrCalculation))
}
