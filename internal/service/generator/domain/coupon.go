// internal/service/generator/domain/coupon.go
package domain

import "math/rand"

// Coupon 是一张固定的促销折扣券。Fraction 是折扣比例，范围 (0,1]。
type Coupon struct {
	Code     string
	Fraction float64
}

// Coupons 固定的黑五折扣券表，只读。
var Coupons = []Coupon{
	{Code: "FRIDAYFIVEOFF", Fraction: 0.05},
	{Code: "BLACK10%", Fraction: 0.1},
	{Code: "BF15DISCOUNT", Fraction: 0.15},
	{Code: "20OFFFOURYOUBF", Fraction: 0.2},
}

// Discount 是 DiscountEngine 的结果，未使用时 Code 为空、Fraction 为 0。
type Discount struct {
	Applied  bool
	Code     string
	Fraction float64
}

// DiscountEngine 决定是否使用优惠券以及使用哪一张。
type DiscountEngine struct {
	applied *WeightedTable[bool]
	coupons []Coupon
}

// NewDiscountEngine weights 依次对应 [true, false]
func NewDiscountEngine(weights []float64) (*DiscountEngine, error) {
	applied, err := NewWeightedTable([]bool{true, false}, weights)
	if err != nil {
		return nil, err
	}
	return &DiscountEngine{applied: applied, coupons: Coupons}, nil
}

// Apply 先按权重决定是否用券，用券时在固定券表中均匀抽取一张。
func (e *DiscountEngine) Apply(rng *rand.Rand) Discount {
	if !e.applied.Pick(rng) {
		return Discount{}
	}
	c := e.coupons[rng.Intn(len(e.coupons))]
	return Discount{Applied: true, Code: c.Code, Fraction: c.Fraction}
}
