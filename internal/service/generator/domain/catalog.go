package domain

// Catalog 是商品类型到描述列表的只读映射。
// types 保留数据源中的原始顺序，保证相同种子下抽样结果可复现。
type Catalog struct {
	types        []string
	descriptions map[string][]string
}

// CatalogEntry 是构造 Catalog 时的一行输入
type CatalogEntry struct {
	Type         string
	Descriptions []string
}

// NewCatalog 校验并构造目录：至少一个类型，每个类型至少一个描述，类型不能重复。
func NewCatalog(entries []CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, NewConfigurationError(nil, "product catalog is empty")
	}
	c := &Catalog{
		types:        make([]string, 0, len(entries)),
		descriptions: make(map[string][]string, len(entries)),
	}
	for _, e := range entries {
		if e.Type == "" {
			return nil, NewConfigurationError(nil, "product catalog has an empty product type")
		}
		if _, dup := c.descriptions[e.Type]; dup {
			return nil, NewConfigurationError(nil, "product type %q appears more than once", e.Type)
		}
		if len(e.Descriptions) == 0 {
			return nil, NewConfigurationError(nil, "product type %q has no descriptions", e.Type)
		}
		c.types = append(c.types, e.Type)
		c.descriptions[e.Type] = append([]string(nil), e.Descriptions...)
	}
	return c, nil
}

// Types 返回类型列表的副本
func (c *Catalog) Types() []string {
	return append([]string(nil), c.types...)
}

// Descriptions 返回某个类型的描述列表副本
func (c *Catalog) Descriptions(productType string) []string {
	return append([]string(nil), c.descriptions[productType]...)
}

// Len 类型数量
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.types)
}
