package catalog

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/httpclient"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/port"
)

var (
	errNotMapping   = errors.New("catalog document must be a mapping of type to descriptions")
	errTrailingData = errors.New("unexpected data after catalog object")
)

// FileSource 从本地 JSON/YAML 文件读取目录
type FileSource struct {
	Path string
}

func (s FileSource) LoadCatalog(_ context.Context) (*domain.Catalog, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, domain.NewConfigurationError(err, "cannot read product catalog %q", s.Path)
	}
	return Parse(data, DetectFormat(s.Path, ""))
}

// HTTPSource 通过可追踪的 HTTP 客户端拉取目录
type HTTPSource struct {
	URL    string
	Client *httpclient.Client
}

func (s HTTPSource) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	body, contentType, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, domain.NewConfigurationError(err, "cannot fetch product catalog %q", s.URL)
	}
	return Parse(body, DetectFormat(s.URL, contentType))
}

// Options 决定使用哪一种目录来源
type Options struct {
	Location string // 文件路径或 http(s) URL
	MySQLDSN string // 非空时优先从 MySQL 读取
	Client   *httpclient.Client
}

// NewSource 按 Options 选择目录来源
func NewSource(opts Options) (port.CatalogSource, error) {
	switch {
	case opts.MySQLDSN != "":
		return NewMySQLSource(opts.MySQLDSN)
	case strings.HasPrefix(opts.Location, "http://"), strings.HasPrefix(opts.Location, "https://"):
		if opts.Client == nil {
			return nil, domain.NewConfigurationError(nil, "http catalog source requires a client")
		}
		return HTTPSource{URL: opts.Location, Client: opts.Client}, nil
	case opts.Location != "":
		return FileSource{Path: opts.Location}, nil
	default:
		return nil, domain.NewConfigurationError(nil, "no product catalog configured")
	}
}
