package catalog

import (
	"context"

	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

// ProductModel 对应数据库中的 products 表，每行是一个 (类型, 描述)
type ProductModel struct {
	ID          uint   `gorm:"primaryKey"`
	Type        string `gorm:"type:varchar(128);index"`
	Description string `gorm:"type:varchar(255)"`
}

// TableName 指定 GORM 应该使用的表名
func (ProductModel) TableName() string {
	return "products"
}

// MySQLSource 从 products 表读取目录，类型顺序按首次出现的 id
type MySQLSource struct {
	db *gorm.DB
}

// NewMySQLSource 先用驱动解析 DSN，再打开连接
func NewMySQLSource(dsn string) (*MySQLSource, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, domain.NewConfigurationError(err, "invalid catalog mysql dsn")
	}
	cfg.ParseTime = true

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{DSN: cfg.FormatDSN(), DSNConfig: cfg}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, domain.NewConfigurationError(err, "cannot open catalog database")
	}
	return &MySQLSource{db: db}, nil
}

func (s *MySQLSource) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	var rows []ProductModel
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, domain.NewConfigurationError(err, "cannot query products")
	}
	return fromRows(rows)
}

// fromRows 把平铺的行聚合成目录
func fromRows(rows []ProductModel) (*domain.Catalog, error) {
	var entries []domain.CatalogEntry
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Type]
		if !ok {
			i = len(entries)
			index[r.Type] = i
			entries = append(entries, domain.CatalogEntry{Type: r.Type})
		}
		entries[i].Descriptions = append(entries[i].Descriptions, r.Description)
	}
	return domain.NewCatalog(entries)
}

// Close 释放底层连接池
func (s *MySQLSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
