package domain

import (
	"math"
	"math/rand"

	"github.com/mroth/weightedrand"
)

// weightScale 是最大权重换算后的整数值，其余权重按与最大值的比例缩放
const weightScale = 1 << 20

// WeightedTable 是一张固定的加权候选表，构造一次，多次抽取。
type WeightedTable[T any] struct {
	candidates []T
	chooser    *weightedrand.Chooser
}

// NewWeightedTable 校验候选项与权重一一对应、权重非负且不全为 0。
func NewWeightedTable[T any](candidates []T, weights []float64) (*WeightedTable[T], error) {
	if len(candidates) == 0 {
		return nil, NewConfigurationError(nil, "weighted choice needs at least one candidate")
	}
	if len(candidates) != len(weights) {
		return nil, NewConfigurationError(nil, "weighted choice has %d candidates but %d weights", len(candidates), len(weights))
	}

	maxWeight := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, NewConfigurationError(nil, "invalid weight %v at position %d", w, i)
		}
		maxWeight = math.Max(maxWeight, w)
	}
	if maxWeight == 0 {
		return nil, NewConfigurationError(nil, "weighted choice needs at least one positive weight, got %v", weights)
	}

	choices := make([]weightedrand.Choice, 0, len(candidates))
	var total uint
	for i, w := range weights {
		scaled := uint(math.Round(w / maxWeight * weightScale))
		// 正权重至少为 1，不能因为取整而永远抽不到
		if w > 0 && scaled == 0 {
			scaled = 1
		}
		if total > math.MaxInt-scaled {
			return nil, NewConfigurationError(nil, "weighted choice over %d candidates overflows", len(candidates))
		}
		total += scaled
		// Item 存下标，Pick 时再映射回候选项，保持泛型类型安全
		choices = append(choices, weightedrand.NewChoice(i, scaled))
	}

	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return nil, NewConfigurationError(err, "cannot build weighted choice over %v", weights)
	}
	return &WeightedTable[T]{candidates: candidates, chooser: chooser}, nil
}

// Pick 从共享随机源中抽取一次（单次有放回抽样）。
func (t *WeightedTable[T]) Pick(rng *rand.Rand) T {
	return t.candidates[t.chooser.PickSource(rng).(int)]
}
