package domain

import "github.com/shopspring/decimal"

// Round2 把金额四舍五入到两位小数
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// SumRound2 精确求和后再保留两位小数，避免浮点累加误差
func SumRound2(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Round(2).Float64()
	return f
}

// NetTotal = total - shipping - coupon - tax，不做下限截断，允许为负数
func NetTotal(total, shipping, coupon, tax float64) float64 {
	net := decimal.NewFromFloat(total).
		Sub(decimal.NewFromFloat(shipping)).
		Sub(decimal.NewFromFloat(coupon)).
		Sub(decimal.NewFromFloat(tax))
	f, _ := net.Round(2).Float64()
	return f
}
