// internal/pkg/bootstrap/config.go
package bootstrap

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
)

const (
	EnvPrefix = "ORDERGEN"
	// ConfigFileEnv 指向可选的 YAML 配置文件
	ConfigFileEnv = "ORDERGEN_CONFIG_FILE"
)

// 支持的 sink 名称
const (
	SinkStdout    = "stdout"
	SinkKafka     = "kafka"
	SinkRedis     = "redis"
	SinkWebSocket = "websocket"
)

type Config struct {
	ServiceName string        `mapstructure:"service_name"`
	LogLevel    string        `mapstructure:"log_level"`
	Seed        int64         `mapstructure:"seed"`
	Promo       PromoConfig   `mapstructure:"promo"`
	Volume      VolumeConfig  `mapstructure:"volume"`
	Delay       DelayConfig   `mapstructure:"delay"`
	Weights     WeightsConfig `mapstructure:"weights"`
	Catalog     CatalogConfig `mapstructure:"catalog"`
	Sinks       []string      `mapstructure:"sinks"`
	HTTP        HTTPConfig    `mapstructure:"http"`
	Jaeger      JaegerConfig  `mapstructure:"jaeger"`
	Kafka       KafkaConfig   `mapstructure:"kafka"`
	Redis       RedisConfig   `mapstructure:"redis"`
	Nacos       NacosConfig   `mapstructure:"nacos"`
}

type PromoConfig struct {
	Month    int `mapstructure:"month"`
	StartDay int `mapstructure:"start_day"`
	Week     int `mapstructure:"week"`
}

type VolumeConfig struct {
	TotalOrders      int `mapstructure:"total_orders"`
	NumUsers         int `mapstructure:"num_users"`
	MaxOrdersPerUser int `mapstructure:"max_orders_per_user"`
	MaxItemsPerOrder int `mapstructure:"max_items_per_order"`
}

type DelayConfig struct {
	Min time.Duration `mapstructure:"min"`
	Max time.Duration `mapstructure:"max"`
}

// WeightsConfig 的每个切片都与 domain 中候选项的固定顺序对齐
type WeightsConfig struct {
	Subscriber []float64 `mapstructure:"subscriber"`
	Coupon     []float64 `mapstructure:"coupon"`
	Payment    []float64 `mapstructure:"payment"`
	Shipping   []float64 `mapstructure:"shipping"`
}

type CatalogConfig struct {
	Location string `mapstructure:"location"`
	MySQLDSN string `mapstructure:"mysql_dsn"`
}

type HTTPConfig struct {
	// Addr 为空时不启动旁路 HTTP 服务
	Addr string `mapstructure:"addr"`
}

type JaegerConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type RedisConfig struct {
	Addrs    []string `mapstructure:"addrs"`
	Password string   `mapstructure:"password"`
	Channel  string   `mapstructure:"channel"`
}

type NacosConfig struct {
	ServerAddrs string `mapstructure:"server_addrs"`
	Namespace   string `mapstructure:"namespace"`
	Group       string `mapstructure:"group"`
	DataID      string `mapstructure:"data_id"`
}

// field: default value
var defaults = map[string]interface{}{
	"service_name":               "order-generator",
	"log_level":                  "info",
	"seed":                       0,
	"promo.month":                11,
	"promo.start_day":            1,
	"promo.week":                 4,
	"volume.total_orders":        1000,
	"volume.num_users":           50,
	"volume.max_orders_per_user": 10,
	"volume.max_items_per_order": 10,
	"delay.min":                  100 * time.Millisecond,
	"delay.max":                  time.Second,
	"weights.subscriber":         []float64{0.5, 0.5},
	"weights.coupon":             []float64{0.3, 0.7},
	"weights.payment":            []float64{0.75, 0.05, 0.05, 0.05, 0.05, 0.05},
	"weights.shipping":           []float64{0.7, 0.2, 0.1},
	"catalog.location":           "data/products.json",
	"catalog.mysql_dsn":          "",
	"sinks":                      []string{SinkStdout},
	"http.addr":                  "",
	"jaeger.endpoint":            "",
	"kafka.brokers":              []string{},
	"kafka.topic":                "orders",
	"redis.addrs":                []string{},
	"redis.password":             "",
	"redis.channel":              "orders",
	"nacos.server_addrs":         "",
	"nacos.namespace":            "",
	"nacos.group":                "DEFAULT_GROUP",
	"nacos.data_id":              "",
}

// RemoteConfig 是配置中心的最小接口，*nacos.Client 满足该接口
type RemoteConfig interface {
	GetConfig(dataID string) (string, error)
}

// Load 依次合并默认值、可选的 YAML 文件、配置中心文档和环境变量 (优先级从低到高)
func Load(configFile string, remote RemoteConfig) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, domain.NewConfigurationError(err, "could not read config file %q", configFile)
		}
	}

	if remote != nil {
		dataID := v.GetString("nacos.data_id")
		if dataID == "" {
			return nil, domain.NewConfigurationError(nil, "nacos.data_id is required when a config center is used")
		}
		content, err := remote.GetConfig(dataID)
		if err != nil {
			return nil, domain.NewConfigurationError(err, "could not fetch remote config")
		}
		v.SetConfigType("yaml")
		if err := v.MergeConfig(strings.NewReader(content)); err != nil {
			return nil, domain.NewConfigurationError(err, "could not merge remote config %q", dataID)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, domain.NewConfigurationError(err, "could not unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 只检查配置层面的约束，权重与日期规则由 domain 在构造时校验
func (c *Config) Validate() error {
	switch {
	case c.Promo.Month < 1 || c.Promo.Month > 12:
		return domain.NewConfigurationError(nil, "promo.month must be within 1..12, got %d", c.Promo.Month)
	case c.Volume.TotalOrders < 1:
		return domain.NewConfigurationError(nil, "volume.total_orders must be at least 1")
	case c.Volume.NumUsers < 1 || c.Volume.MaxOrdersPerUser < 1 || c.Volume.MaxItemsPerOrder < 1:
		return domain.NewConfigurationError(nil, "volume limits must be at least 1")
	case c.Delay.Min < 0 || c.Delay.Max < c.Delay.Min:
		return domain.NewConfigurationError(nil, "invalid delay range [%s, %s]", c.Delay.Min, c.Delay.Max)
	case c.Catalog.Location == "" && c.Catalog.MySQLDSN == "":
		return domain.NewConfigurationError(nil, "catalog.location or catalog.mysql_dsn is required")
	case len(c.Sinks) == 0:
		return domain.NewConfigurationError(nil, "at least one sink is required")
	}

	for _, sink := range c.Sinks {
		switch sink {
		case SinkStdout:
		case SinkKafka:
			if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
				return domain.NewConfigurationError(nil, "kafka sink requires kafka.brokers and kafka.topic")
			}
		case SinkRedis:
			if len(c.Redis.Addrs) == 0 || c.Redis.Channel == "" {
				return domain.NewConfigurationError(nil, "redis sink requires redis.addrs and redis.channel")
			}
		case SinkWebSocket:
			if c.HTTP.Addr == "" {
				return domain.NewConfigurationError(nil, "websocket sink requires http.addr")
			}
		default:
			return domain.NewConfigurationError(nil, "unknown sink %q", sink)
		}
	}
	return nil
}

// HasSink 判断是否启用了某个 sink
func (c *Config) HasSink(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}
