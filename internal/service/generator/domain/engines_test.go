package domain

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]CatalogEntry{
		{Type: "Electronics", Descriptions: []string{"Phone", "Laptop", "Headphones"}},
		{Type: "Books", Descriptions: []string{"Novel"}},
		{Type: "Toys", Descriptions: []string{"Puzzle", "Kite"}},
	})
	require.NoError(t, err)
	return c
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewCatalog([]CatalogEntry{{Type: "Books"}})
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = NewCatalog([]CatalogEntry{
		{Type: "Books", Descriptions: []string{"Novel"}},
		{Type: "Books", Descriptions: []string{"Atlas"}},
	})
	assert.True(t, errors.Is(err, ErrConfiguration))

	c, err := NewCatalog([]CatalogEntry{{Type: "Books", Descriptions: []string{"Novel"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Books"}, c.Types())
	assert.Equal(t, []string{"Novel"}, c.Descriptions("Books"))
}

func TestSynthesizeItems_DeterministicPerSeed(t *testing.T) {
	catalog := testCatalog(t)

	a, err := SynthesizeItems(NewSource(1), 17, catalog, 10)
	require.NoError(t, err)
	// 共享随机源之前的状态不影响结果：重播种后完全一致
	noisy := NewSource(123456)
	noisy.Float64()
	noisy.Intn(50)
	b, err := SynthesizeItems(noisy, 17, catalog, 10)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSynthesizeItems_Bounds(t *testing.T) {
	catalog := testCatalog(t)
	rng := NewSource(5)

	for seed := int64(1); seed <= 200; seed++ {
		items, err := SynthesizeItems(rng, seed, catalog, 4)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(items), 1)
		require.LessOrEqual(t, len(items), 4)
		for _, item := range items {
			assert.Contains(t, catalog.Descriptions(item.Type), item.Description)
			assert.GreaterOrEqual(t, item.Price, 1.0)
			assert.Less(t, item.Price, 100.0)
			assert.Equal(t, Round2(item.Price), item.Price)
		}
	}
}

func TestSynthesizeItems_EmptyCatalog(t *testing.T) {
	_, err := SynthesizeItems(NewSource(1), 1, nil, 3)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestDiscountEngine(t *testing.T) {
	engine, err := NewDiscountEngine([]float64{0.3, 0.7})
	require.NoError(t, err)

	codes := map[string]float64{}
	for _, c := range Coupons {
		codes[c.Code] = c.Fraction
	}

	rng := NewSource(11)
	applied := 0
	const draws = 5000
	for i := 0; i < draws; i++ {
		d := engine.Apply(rng)
		if !d.Applied {
			assert.Equal(t, "", d.Code)
			assert.Zero(t, d.Fraction)
			continue
		}
		applied++
		assert.Equal(t, codes[d.Code], d.Fraction)
	}
	assert.InDelta(t, 0.3, float64(applied)/draws, 0.03)

	_, err = NewDiscountEngine([]float64{1})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestShippingEngine(t *testing.T) {
	engine, err := NewShippingEngine([]float64{0.7, 0.2, 0.1})
	require.NoError(t, err)
	promo := date(2025, time.November, 28)
	rng := NewSource(3)

	for i := 0; i < 500; i++ {
		s := engine.Compute(rng, true, 250.5, promo)
		assert.Zero(t, s.Cost)
		assert.Contains(t, ShippingMethods, s.Method)

		s = engine.Compute(rng, false, 250.5, promo)
		assert.GreaterOrEqual(t, s.Cost, Round2(250.5*0.01))
		assert.LessOrEqual(t, s.Cost, Round2(250.5*0.10))

		delivery, err := time.Parse(DateLayout, s.EstimatedDelivery)
		require.NoError(t, err)
		days := int(delivery.Sub(promo).Hours() / 24)
		assert.GreaterOrEqual(t, days, 3)
		assert.LessOrEqual(t, days, 30)
	}

	// 小计为 0 时运费退化为 0
	assert.Zero(t, engine.Compute(rng, false, 0, promo).Cost)
}

func TestMoneyHelpers(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005))
	assert.Equal(t, 0.3, SumRound2(0.1, 0.2))
	assert.Equal(t, -3.5, NetTotal(1, 2, 0.5, 2))
}
