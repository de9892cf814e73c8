package domain

import (
	"math/rand"
	"time"
)

// ShippingMethod 配送方式
type ShippingMethod string

const (
	ShippingStandard  ShippingMethod = "Standard"
	ShippingExpedited ShippingMethod = "Expedited"
	ShippingNextDay   ShippingMethod = "Next Day"
)

// ShippingMethods 固定顺序，权重表按这个顺序对齐
var ShippingMethods = []ShippingMethod{ShippingStandard, ShippingExpedited, ShippingNextDay}

const (
	minShippingRate   = 0.01
	maxShippingRate   = 0.10
	minDeliveryOffset = 3
	maxDeliveryOffset = 30
)

// Shipping 是 ShippingEngine 的计算结果
type Shipping struct {
	Method            ShippingMethod
	Cost              float64
	EstimatedDelivery string
}

// ShippingEngine 计算配送方式、运费和预计送达日期。
type ShippingEngine struct {
	methods *WeightedTable[ShippingMethod]
}

func NewShippingEngine(weights []float64) (*ShippingEngine, error) {
	methods, err := NewWeightedTable(ShippingMethods, weights)
	if err != nil {
		return nil, err
	}
	return &ShippingEngine{methods: methods}, nil
}

// Compute 订阅用户免运费；否则运费为小计的 1%~10%。送达日期 = 促销日 + [3,30] 天。
func (e *ShippingEngine) Compute(rng *rand.Rand, subscriber bool, subtotal float64, promoDate time.Time) Shipping {
	method := e.methods.Pick(rng)

	var cost float64
	if !subscriber {
		cost = Round2(Uniform(rng, subtotal*minShippingRate, subtotal*maxShippingRate))
	}

	delivery := promoDate.AddDate(0, 0, IntBetween(rng, minDeliveryOffset, maxDeliveryOffset))
	return Shipping{
		Method:            method,
		Cost:              cost,
		EstimatedDelivery: delivery.Format(DateLayout),
	}
}
