// internal/service/generator/domain/order.go
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LineItem 订单中的一件商品，只属于一个订单
type LineItem struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// itemKeyPrefix 序列化时的键前缀：product_1, product_2, ...
const itemKeyPrefix = "product_"

// OrderedItems 按插入顺序保存商品，序列化成 {"product_1": {...}, "product_2": {...}}。
// encoding/json 会对 map 的键排序 (product_10 排在 product_2 前面)，所以这里自己写。
type OrderedItems []LineItem

func (items OrderedItems) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", itemKeyPrefix+strconv.Itoa(i+1))
		b, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (items *OrderedItems) UnmarshalJSON(data []byte) error {
	var raw map[string]LineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	indexed := make([]int, 0, len(raw))
	for key := range raw {
		n, err := strconv.Atoi(strings.TrimPrefix(key, itemKeyPrefix))
		if err != nil || !strings.HasPrefix(key, itemKeyPrefix) {
			return fmt.Errorf("unexpected ordered item key %q", key)
		}
		indexed = append(indexed, n)
	}
	sort.Ints(indexed)

	out := make(OrderedItems, 0, len(indexed))
	for _, n := range indexed {
		out = append(out, raw[itemKeyPrefix+strconv.Itoa(n)])
	}
	*items = out
	return nil
}

// Prices 返回所有商品价格
func (items OrderedItems) Prices() []float64 {
	prices := make([]float64, len(items))
	for i, item := range items {
		prices[i] = item.Price
	}
	return prices
}

// Order 是生成器输出的基本单位。除 NetTotalOrderPrice 外都由各个引擎独立抽取；
// NetTotalOrderPrice 是派生字段，可能为负。
type Order struct {
	OrderID                   string         `json:"order_id"`
	OrderDate                 string         `json:"order_date"`
	UserID                    int            `json:"user_id"`
	SubscriberUser            bool           `json:"subscriber_user"`
	OrderedItems              OrderedItems   `json:"ordered_items"`
	NumOrderedItems           int            `json:"num_ordered_items"`
	TotalOrderPrice           float64        `json:"total_order_price"`
	PaymentMethod             PaymentMethod  `json:"payment_method"`
	DiscountCouponApplied     bool           `json:"discount_coupon_applied"`
	DiscountCouponDescription string         `json:"discount_coupon_description"`
	DiscountCouponValue       float64        `json:"discount_coupon_value"`
	SalesTaxValue             float64        `json:"sales_tax_value"`
	GiftWrap                  bool           `json:"gift_wrap"`
	ShippingMethod            ShippingMethod `json:"shipping_method"`
	ShippingCost              float64        `json:"shipping_cost"`
	EstimatedDelivery         string         `json:"estimated_delivery"`
	Platform                  string         `json:"platform"`
	NetTotalOrderPrice        float64        `json:"net_total_order_price"`
}

// Envelope 是输出记录的外层：{"order": {...}}
type Envelope struct {
	Order *Order `json:"order"`
}

// Encode 序列化成一行 JSON (不含换行)
func (o *Order) Encode() ([]byte, error) {
	return json.Marshal(Envelope{Order: o})
}
