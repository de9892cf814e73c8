package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedItems_KeysKeepInsertionOrder(t *testing.T) {
	items := make(OrderedItems, 0, 11)
	for i := 0; i < 11; i++ {
		items = append(items, LineItem{Type: "Books", Description: "Novel", Price: float64(i + 1)})
	}

	b, err := json.Marshal(items)
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, `{"product_1":{"type":"Books","description":"Novel","price":1}`))
	assert.Less(t, strings.Index(s, `"product_2"`), strings.Index(s, `"product_10"`))

	var decoded OrderedItems
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, items, decoded)
}

func TestOrderedItems_RejectsUnknownKeys(t *testing.T) {
	var decoded OrderedItems
	assert.Error(t, json.Unmarshal([]byte(`{"item_1":{"type":"a","description":"b","price":1}}`), &decoded))
}

func TestOrder_EncodeEnvelope(t *testing.T) {
	o := &Order{
		OrderID:         "2025-11-42",
		OrderDate:       "11/28/2025",
		UserID:          3,
		OrderedItems:    OrderedItems{{Type: "Books", Description: "Novel", Price: 9.99}},
		NumOrderedItems: 1,
		TotalOrderPrice: 9.99,
		PaymentMethod:   PaymentPayPal,
		ShippingMethod:  ShippingNextDay,
	}
	b, err := o.Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), `{"order":{"order_id":"2025-11-42","order_date":"11/28/2025","user_id":3,`))
	assert.Contains(t, string(b), `"payment_method":"PayPal"`)
	assert.Contains(t, string(b), `"shipping_method":"Next Day"`)
	assert.NotContains(t, string(b), "\n")

	var env Envelope
	require.NoError(t, json.Unmarshal(b, &env))
	assert.Equal(t, o, env.Order)
}
