package interfaces

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	zlog "github.com/rs/zerolog/log"
)

// Progress 提供运行进度，*application.OrderStream 满足该接口
type Progress interface {
	Emitted() int
}

// Status 是 /healthz 的响应体
type Status struct {
	Status    string `json:"status"`
	RunID     string `json:"run_id"`
	PromoDate string `json:"promo_date"`
	Emitted   int    `json:"emitted"`
	Target    int    `json:"target"`
}

// GeneratorHandler 封装了生成器旁路 HTTP 服务的处理器
type GeneratorHandler struct {
	runID     string
	promoDate string
	target    int
	progress  Progress
	gatherer  prometheus.Gatherer
	ws        http.HandlerFunc
}

// NewGeneratorHandler ws 为空时不注册 /ws
func NewGeneratorHandler(runID, promoDate string, target int, progress Progress, gatherer prometheus.Gatherer, ws http.HandlerFunc) *GeneratorHandler {
	return &GeneratorHandler{
		runID:     runID,
		promoDate: promoDate,
		target:    target,
		progress:  progress,
		gatherer:  gatherer,
		ws:        ws,
	}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *GeneratorHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	if h.ws != nil {
		mux.HandleFunc("/ws", h.ws)
	}
}

func (h *GeneratorHandler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	status := Status{
		Status:    "ok",
		RunID:     h.runID,
		PromoDate: h.promoDate,
		Emitted:   h.progress.Emitted(),
		Target:    h.target,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		zlog.Warn().Err(err).Msg("failed to write healthz response")
	}
}
