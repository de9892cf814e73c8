package domain

import "math/rand"

const (
	minItemPrice = 1.0
	maxItemPrice = 100.0
)

// SynthesizeItems 用 seed (订单序号) 重新播种共享随机源后生成商品列表。
// 重播种会影响同一订单后续所有共享随机源上的抽取，调用顺序不可调整。
func SynthesizeItems(rng *rand.Rand, seed int64, catalog *Catalog, maxItems int) (OrderedItems, error) {
	if catalog.Len() == 0 {
		return nil, NewConfigurationError(nil, "cannot synthesize items from an empty catalog")
	}
	if maxItems < 1 {
		return nil, NewConfigurationError(nil, "max items per order must be at least 1, got %d", maxItems)
	}

	rng.Seed(seed)

	types := catalog.types
	count := IntBetween(rng, 1, maxItems)
	items := make(OrderedItems, 0, count)
	for i := 0; i < count; i++ {
		productType := types[rng.Intn(len(types))]
		descriptions := catalog.descriptions[productType]
		items = append(items, LineItem{
			Type:        productType,
			Description: descriptions[rng.Intn(len(descriptions))],
			Price:       itemPrice(rng),
		})
	}
	return items, nil
}

// itemPrice 在 [1,100) 上取价格并保留两位小数；舍入到 100.00 时压回 99.99
func itemPrice(rng *rand.Rand) float64 {
	price := Round2(Uniform(rng, minItemPrice, maxItemPrice))
	if price >= maxItemPrice {
		price = maxItemPrice - 0.01
	}
	return price
}
