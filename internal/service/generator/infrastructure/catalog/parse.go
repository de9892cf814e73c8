// internal/service/generator/infrastructure/catalog/parse.go
package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// Format 是目录文档的编码
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// DetectFormat 根据文件名后缀或 Content-Type 判断格式，默认 JSON
func DetectFormat(name, contentType string) Format {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") ||
		strings.Contains(contentType, "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// Parse 解析目录文档，保留类型在文档中出现的顺序
func Parse(data []byte, format Format) (*domain.Catalog, error) {
	var (
		entries []domain.CatalogEntry
		err     error
	)
	switch format {
	case FormatYAML:
		entries, err = parseYAML(data)
	default:
		entries, err = parseJSON(data)
	}
	if err != nil {
		return nil, domain.NewConfigurationError(err, "malformed product catalog")
	}
	return domain.NewCatalog(entries)
}

// parseJSON 逐个 token 读取顶层对象；map 会丢失键顺序
func parseJSON(data []byte) ([]domain.CatalogEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotMapping
	}

	var entries []domain.CatalogEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var descriptions []string
		if err := dec.Decode(&descriptions); err != nil {
			return nil, err
		}
		entries = append(entries, domain.CatalogEntry{Type: key, Descriptions: descriptions})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return entries, nil
}

func parseYAML(data []byte) ([]domain.CatalogEntry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errNotMapping
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errNotMapping
	}

	entries := make([]domain.CatalogEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		var descriptions []string
		if err := root.Content[i+1].Decode(&descriptions); err != nil {
			return nil, err
		}
		entries = append(entries, domain.CatalogEntry{Type: root.Content[i].Value, Descriptions: descriptions})
	}
	return entries, nil
}
