package port

import (
	"context"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// CatalogSource 是商品目录的出站端口。实现必须保留数据源中的类型顺序。
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
}
