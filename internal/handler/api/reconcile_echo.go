package api

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	domrepo "github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/normalize"
	"github.com/williamppmm/rvc-investment-analyzer/internal/usecase"
	xhttp "github.com/williamppmm/rvc-investment-analyzer/pkg/http"
	xlogger "github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
	"github.com/williamppmm/rvc-investment-analyzer/pkg/queue"
)

// ReconcileEchoHandler exposes the reconciliation pipeline over Echo.
type ReconcileEchoHandler struct {
	logger          *xlogger.Logger
	reconciler      *usecase.Reconciler
	periods         *normalize.PeriodNormalizer
	sectors         *normalize.SectorNormalizer
	converter       *normalize.CurrencyConverter
	classifications domrepo.ClassificationStore
	snapshots       domrepo.SnapshotStore
	refreshQueue    queue.QueueService
}

// ReconcileHandlerDeps bundles handler dependencies. Snapshots and
// RefreshQueue are optional.
type ReconcileHandlerDeps struct {
	Logger          *xlogger.Logger
	Reconciler      *usecase.Reconciler
	Periods         *normalize.PeriodNormalizer
	Sectors         *normalize.SectorNormalizer
	Converter       *normalize.CurrencyConverter
	Classifications domrepo.ClassificationStore
	Snapshots       domrepo.SnapshotStore
	RefreshQueue    queue.QueueService
}

func NewReconcileEchoHandler(deps ReconcileHandlerDeps) *ReconcileEchoHandler {
	return &ReconcileEchoHandler{
		logger:          deps.Logger,
		reconciler:      deps.Reconciler,
		periods:         deps.Periods,
		sectors:         deps.Sectors,
		converter:       deps.Converter,
		classifications: deps.Classifications,
		snapshots:       deps.Snapshots,
		refreshQueue:    deps.RefreshQueue,
	}
}

func (h *ReconcileEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/reconcile", h.Reconcile)
	g.POST("/overrides", h.Overrides)
	g.POST("/normalize", h.Normalize)
	g.POST("/sector-score", h.SectorScore)
	g.POST("/convert", h.Convert)
	g.POST("/refresh", h.Refresh)
	g.GET("/classification/:ticker", h.Classification)
	g.GET("/sectors", h.Sectors)
}

func (h *ReconcileEchoHandler) Reconcile(c echo.Context) error {
	req := &models.ReconcileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	doc, err := h.reconciler.Reconcile(c.Request().Context(), req.Ticker)
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			return xhttp.NotFoundResponse(c, "no source returned data for "+strings.ToUpper(req.Ticker))
		}
		h.logger.Error("reconcile failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, doc)
}

// OverridesResponse pairs the adjusted document with what was and was not
// applied.
type OverridesResponse struct {
	Document *models.Document  `json:"document"`
	Applied  []string          `json:"applied"`
	Invalid  map[string]string `json:"invalid,omitempty"`
}

func (h *ReconcileEchoHandler) Overrides(c echo.Context) error {
	req := &models.OverridesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	ctx := c.Request().Context()
	base, err := h.reconciler.Reconcile(ctx, req.Ticker)
	if err != nil && !errors.Is(err, usecase.ErrNoData) {
		h.logger.Error("override base reconcile failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	overrides := make(map[models.Field]float64, len(req.Metrics))
	for name, value := range req.Metrics {
		overrides[models.Field(name)] = value
	}

	doc, report, err := h.reconciler.ApplyOverrides(ctx, req.Ticker, base, overrides)
	if err != nil {
		h.logger.Error("apply overrides failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	resp := &OverridesResponse{Document: doc, Applied: make([]string, 0, len(report.Applied))}
	for _, f := range report.Applied {
		resp.Applied = append(resp.Applied, f.String())
	}
	if len(report.Invalid) > 0 {
		resp.Invalid = make(map[string]string, len(report.Invalid))
		for f, reason := range report.Invalid {
			resp.Invalid[f.String()] = reason
		}
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *ReconcileEchoHandler) Normalize(c echo.Context) error {
	req := &models.NormalizeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if len(req.Allowed) == 0 {
		return xhttp.SuccessResponse(c, h.periods.NormalizeBatch(req.Values, req.Bases))
	}

	allowed := make([]models.Period, 0, len(req.Allowed))
	for _, p := range req.Allowed {
		allowed = append(allowed, models.Period(strings.ToUpper(p)))
	}

	batch := &models.BatchNormalization{
		Values:  make(map[string]float64),
		Periods: make(map[string]models.Period),
	}
	for _, base := range req.Bases {
		if nm := h.periods.Normalize(base, req.Values, allowed); nm != nil {
			batch.Values[base] = nm.Value
			batch.Periods[base] = nm.Period
			batch.NormalizedCount++
			continue
		}
		batch.FailedCount++
		batch.FailedMetrics = append(batch.FailedMetrics, base)
	}
	return xhttp.SuccessResponse(c, batch)
}

func (h *ReconcileEchoHandler) SectorScore(c echo.Context) error {
	req := &models.SectorScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	metric := models.Field(strings.ToLower(req.Metric))
	if !metric.IsNumeric() {
		return xhttp.BadRequestResponse(c, "unknown metric: "+req.Metric)
	}

	res := h.sectors.Normalize(*req.Value, metric, req.Sector, req.Invert)
	return xhttp.SuccessResponse(c, res)
}

func (h *ReconcileEchoHandler) Convert(c echo.Context) error {
	req := &models.ConvertRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	conv := h.converter.Convert(*req.Value, req.From, req.To)
	return xhttp.SuccessResponse(c, conv)
}

func (h *ReconcileEchoHandler) Refresh(c echo.Context) error {
	req := &models.RefreshRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if h.refreshQueue == nil {
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, "refresh queue disabled")
	}

	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	if err := h.refreshQueue.PublishMessage(c.Request().Context(), usecase.RefreshMessageType, req); err != nil {
		h.logger.Error("refresh enqueue failed", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.DataResponse(c, http.StatusAccepted, map[string]string{"ticker": req.Ticker, "status": "queued"})
}

func (h *ReconcileEchoHandler) Classification(c echo.Context) error {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		return xhttp.BadRequestResponse(c, "ticker is required")
	}

	cls, ok := h.classifications.Load(c.Request().Context(), ticker)
	if !ok {
		return xhttp.NotFoundResponse(c, "no stored classification for "+ticker)
	}
	return xhttp.SuccessResponse(c, cls)
}

// SectorsResponse lists the benchmark sectors and their covered metrics.
type SectorsResponse struct {
	Sectors map[string][]string `json:"sectors"`
}

func (h *ReconcileEchoHandler) Sectors(c echo.Context) error {
	resp := &SectorsResponse{Sectors: make(map[string][]string)}
	for _, sector := range h.sectors.Sectors() {
		fields := h.sectors.MetricsFor(sector)
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.String())
		}
		sort.Strings(names)
		resp.Sectors[sector] = names
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *ReconcileEchoHandler) Health(c echo.Context) error {
	status := map[string]string{"status": "ok"}
	if h.snapshots != nil {
		if err := h.snapshots.Health(c.Request().Context()); err != nil {
			status["clickhouse"] = err.Error()
			return xhttp.DataResponse(c, http.StatusServiceUnavailable, status)
		}
		status["clickhouse"] = "ok"
	}
	return xhttp.SuccessResponse(c, status)
}
