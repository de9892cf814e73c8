package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/bootstrap"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/httpclient"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/logger"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/mq"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/nacos"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/pkg/redis"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/application"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/domain"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/infrastructure"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/infrastructure/adapter"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/infrastructure/catalog"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/interfaces"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/service/generator/port"
	"github.com/rodrigofmcarvalho/faker-order-generator/internal/tracing"
)

const interruptNotice = "Gracefully stopping generating order data..."

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}
	if err := logger.Init(cfg.ServiceName, cfg.LogLevel, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: invalid log level: %v\n", err)
		return 1
	}

	runID := uuid.NewString()
	sigCtx, stop := bootstrap.WithSignals(context.Background())
	defer stop()
	ctx := logger.WithRunID(sigCtx, runID)
	log := logger.Ctx(ctx)

	// 1. Tracer
	tp, shutdownTracer, err := tracing.InitTracerProvider(cfg.ServiceName, cfg.Jaeger.Endpoint)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize tracer provider")
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Error shutting down tracer provider")
		}
	}()
	tracer := tp.Tracer("order-generator")

	// 2. Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := infrastructure.NewPrometheusMetrics(reg)
	if err != nil {
		log.Error().Err(err).Msg("failed to register metrics")
		return 1
	}

	// 3. 目录必须在产出任何记录之前加载成功
	cat, err := loadCatalog(ctx, cfg, tracer)
	if err != nil {
		log.Error().Err(err).Msg("❌ failed to load product catalog")
		return 1
	}

	// 4. 生成器
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	synth, err := application.NewOrderSynthesizer(cat, application.SynthesizerConfig{
		PromoRule: domain.PromoRule{
			Month:    time.Month(cfg.Promo.Month),
			StartDay: cfg.Promo.StartDay,
			Week:     cfg.Promo.Week,
		},
		MaxItemsPerOrder: cfg.Volume.MaxItemsPerOrder,
		Weights: application.Weights{
			SubscriberUser:  cfg.Weights.Subscriber,
			CouponApplied:   cfg.Weights.Coupon,
			PaymentMethods:  cfg.Weights.Payment,
			ShippingMethods: cfg.Weights.Shipping,
		},
	}, tracer, metrics)
	if err != nil {
		log.Error().Err(err).Msg("❌ invalid generator configuration")
		return 1
	}
	stream, err := application.NewOrderStream(synth, domain.NewSource(seed), application.TimerPacer{}, application.StreamConfig{
		NumUsers:         cfg.Volume.NumUsers,
		MaxOrdersPerUser: cfg.Volume.MaxOrdersPerUser,
		TotalCap:         cfg.Volume.TotalOrders,
		MinDelay:         cfg.Delay.Min,
		MaxDelay:         cfg.Delay.Max,
	})
	if err != nil {
		log.Error().Err(err).Msg("❌ invalid stream configuration")
		return 1
	}

	// 5. Sinks
	var hub *adapter.Hub
	if cfg.HasSink(bootstrap.SinkWebSocket) {
		hub = adapter.NewHub()
	}
	sink, err := buildSink(ctx, cfg, tracer, runID, hub, metrics)
	if err != nil {
		log.Error().Err(err).Msg("❌ failed to initialize sinks")
		return 1
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing sinks")
		}
	}()

	log.Info().
		Int64("seed", seed).
		Str("promo_date", synth.PromoDate().Format(domain.DateLayout)).
		Int("total_orders", cfg.Volume.TotalOrders).
		Str("sink", sink.Name()).
		Msg("🚀 Generating Black Friday orders")

	// 6. 生成器与旁路 HTTP 服务一起运行，生成结束后关停 HTTP 服务
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancelRun()
		return application.NewRunner(sink).Run(gctx, stream)
	})
	if hub != nil {
		g.Go(func() error { return hub.Run(gctx) })
	}
	if cfg.HTTP.Addr != "" {
		mux := http.NewServeMux()
		var ws http.HandlerFunc
		if hub != nil {
			ws = hub.ServeWs
		}
		interfaces.NewGeneratorHandler(runID, synth.PromoDate().Format(domain.DateLayout), cfg.Volume.TotalOrders, stream, reg, ws).
			RegisterRoutes(mux)
		g.Go(func() error { return bootstrap.Serve(gctx, cfg.HTTP.Addr, mux) })
	}

	err = g.Wait()
	if err != nil {
		log.Error().Err(err).Msg("❌ order generation failed")
	}
	return exitStatus(err, sigCtx.Err() != nil, os.Stderr)
}

// exitStatus 决定进程退出码。被信号中断的运行是正常结束，退出码为 0 并提示用户。
func exitStatus(runErr error, interrupted bool, stderr io.Writer) int {
	if runErr != nil {
		return 1
	}
	if interrupted {
		fmt.Fprintln(stderr, interruptNotice)
	}
	return 0
}

// loadConfig 先读本地配置，配置了 Nacos 时再合并远端文档
func loadConfig() (*bootstrap.Config, error) {
	configFile := os.Getenv(bootstrap.ConfigFileEnv)
	cfg, err := bootstrap.Load(configFile, nil)
	if err != nil || cfg.Nacos.ServerAddrs == "" {
		return cfg, err
	}

	client, err := nacos.NewConfigClient(cfg.Nacos.ServerAddrs, cfg.Nacos.Namespace, cfg.Nacos.Group)
	if err != nil {
		return nil, domain.NewConfigurationError(err, "nacos")
	}
	defer client.Close()
	return bootstrap.Load(configFile, client)
}

func loadCatalog(ctx context.Context, cfg *bootstrap.Config, tracer trace.Tracer) (*domain.Catalog, error) {
	source, err := catalog.NewSource(catalog.Options{
		Location: cfg.Catalog.Location,
		MySQLDSN: cfg.Catalog.MySQLDSN,
		Client:   httpclient.NewClient(tracer),
	})
	if err != nil {
		return nil, err
	}
	if closer, ok := source.(io.Closer); ok {
		defer closer.Close()
	}

	loadCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return source.LoadCatalog(loadCtx)
}

func buildSink(ctx context.Context, cfg *bootstrap.Config, tracer trace.Tracer, runID string, hub *adapter.Hub, metrics port.Metrics) (port.OrderSink, error) {
	var sinks []port.OrderSink
	fail := func(err error) (port.OrderSink, error) {
		for _, s := range sinks {
			_ = s.Close()
		}
		return nil, err
	}

	for _, name := range cfg.Sinks {
		switch name {
		case bootstrap.SinkStdout:
			sinks = append(sinks, adapter.NewWriterSink(os.Stdout))
		case bootstrap.SinkKafka:
			writer := mq.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
			sinks = append(sinks, adapter.NewKafkaSinkAdapter(writer, tracer, runID))
		case bootstrap.SinkRedis:
			client, err := redis.NewClient(ctx, cfg.Redis.Addrs, cfg.Redis.Password)
			if err != nil {
				return fail(err)
			}
			sinks = append(sinks, adapter.NewRedisSinkAdapter(client, cfg.Redis.Channel, client.Close))
		case bootstrap.SinkWebSocket:
			sinks = append(sinks, hub)
		default:
			return fail(domain.NewConfigurationError(nil, "unknown sink %q", name))
		}
	}
	return adapter.NewMultiSink(metrics, sinks...), nil
}
