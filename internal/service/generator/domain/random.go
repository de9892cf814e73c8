package domain

import "math/rand"

// NewSource 创建整个生成过程共享的伪随机源。seed 为 0 时由调用方决定是否改用时间种子。
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Uniform 在 [lo, hi) 上均匀取值
func Uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// IntBetween 在闭区间 [lo, hi] 上均匀取整数
func IntBetween(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
