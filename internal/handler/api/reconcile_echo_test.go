package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williamppmm/rvc-investment-analyzer/internal/domain/models"
	domrepo "github.com/williamppmm/rvc-investment-analyzer/internal/domain/repository"
	internalrepo "github.com/williamppmm/rvc-investment-analyzer/internal/repository"
	"github.com/williamppmm/rvc-investment-analyzer/internal/service/fallback"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/classify"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/normalize"
	"github.com/williamppmm/rvc-investment-analyzer/internal/services/reconcile"
	"github.com/williamppmm/rvc-investment-analyzer/internal/usecase"
	xhttp "github.com/williamppmm/rvc-investment-analyzer/pkg/http"
	xlogger "github.com/williamppmm/rvc-investment-analyzer/pkg/logger"
)

func newTestEcho(t *testing.T) (*echo.Echo, domrepo.ClassificationStore) {
	t.Helper()

	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stderr"})
	require.NoError(t, err)

	store, err := internalrepo.NewJSONClassificationStore(filepath.Join(t.TempDir(), "cls.json"), l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	converter := normalize.NewCurrencyConverter(nil)
	reconciler := usecase.NewReconciler(usecase.ReconcilerDeps{
		Adapters:        []domrepo.SourceAdapter{fallback.New(nil)},
		Merger:          reconcile.NewMerger(reconcile.DefaultPolicy()),
		Dispersion:      reconcile.NewDispersionAnalyzer(nil, nil, nil),
		Derived:         reconcile.NewDerivedCalculator(),
		Sanity:          reconcile.NewSanityValidator(reconcile.DefaultSanityBounds()),
		Classifier:      classify.NewClassifier(nil),
		Classifications: store,
		Converter:       converter,
		Logger:          l,
	})

	h := NewReconcileEchoHandler(ReconcileHandlerDeps{
		Logger:          l,
		Reconciler:      reconciler,
		Periods:         normalize.NewPeriodNormalizer(nil),
		Sectors:         normalize.NewSectorNormalizer(nil, nil),
		Converter:       converter,
		Classifications: store,
	})

	e := echo.New()
	h.RegisterRoutes(e)
	return e, store
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, req)

	var envelope xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return rr, envelope
}

func TestReconcileEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/reconcile", `{"ticker":"aapl"}`)
	require.Equal(t, http.StatusOK, envelope.Status)

	doc, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "AAPL", doc["ticker"])
	assert.Equal(t, "fallback_example", doc["primary_source"])
	assert.Equal(t, "EQUITY", doc["asset_type"])
	assert.Equal(t, float64(3), doc["schema_version"])
	assert.True(t, doc["analysis_allowed"].(bool))
}

func TestReconcileEndpointValidatesBody(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/reconcile", `{}`)
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
}

func TestReconcileEndpointETF(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/reconcile", `{"ticker":"VOO"}`)
	require.Equal(t, http.StatusOK, envelope.Status)

	doc := envelope.Data.(map[string]interface{})
	assert.Equal(t, "ETF", doc["asset_type"])
	assert.False(t, doc["analysis_allowed"].(bool))
	assert.NotNil(t, doc["etf_profile"])
}

func TestOverridesEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/overrides",
		`{"ticker":"MSFT","metrics":{"pe_ratio":30,"fcf_yield":5}}`)
	require.Equal(t, http.StatusOK, envelope.Status)

	data := envelope.Data.(map[string]interface{})
	applied, ok := data["applied"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, applied, "pe_ratio")

	invalid, ok := data["invalid"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, invalid, "fcf_yield")

	doc := data["document"].(map[string]interface{})
	assert.Equal(t, "manual_override", doc["primary_source"])
}

func TestNormalizeEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/normalize",
		`{"bases":["roe","roic"],"values":{"roe_ttm":22.3,"roe_mrq":21.0,"roic":14.5}}`)
	require.Equal(t, http.StatusOK, envelope.Status)

	data := envelope.Data.(map[string]interface{})
	values := data["values"].(map[string]interface{})
	assert.InDelta(t, 22.3, values["roe"].(float64), 0.001)
	assert.InDelta(t, 14.5, values["roic"].(float64), 0.001)

	periods := data["periods"].(map[string]interface{})
	assert.Equal(t, "TTM", periods["roe"])
	assert.Equal(t, "TTM (assumed)", periods["roic"])
}

func TestSectorScoreEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sector-score",
		`{"value":35,"metric":"roe","sector":"Technology"}`)
	require.Equal(t, http.StatusOK, envelope.Status)

	data := envelope.Data.(map[string]interface{})
	assert.InDelta(t, 85.0, data["score"].(float64), 0.001)
	require.NotNil(t, data["z_score"])
	assert.Greater(t, data["z_score"].(float64), 1.0)
}

func TestSectorScoreEndpointRejectsUnknownMetric(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sector-score",
		`{"value":1,"metric":"nonsense","sector":"Technology"}`)
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
}

func TestConvertEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/convert",
		`{"value":100,"from_currency":"EUR","to_currency":"USD"}`)
	require.Equal(t, http.StatusOK, envelope.Status)

	data := envelope.Data.(map[string]interface{})
	assert.InDelta(t, 108.0, data["value"].(float64), 0.001)
}

func TestClassificationEndpoint(t *testing.T) {
	e, store := newTestEcho(t)

	require.NoError(t, store.Save(context.Background(), &models.AssetClassification{
		Ticker:    "GLD",
		AssetType: models.AssetETF,
		TypeLabel: "ETF",
		Source:    "manual_override",
	}))

	_, envelope := doJSON(t, e, http.MethodGet, "/api/classification/gld", "")
	require.Equal(t, http.StatusOK, envelope.Status)
	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "ETF", data["asset_type"])

	_, missing := doJSON(t, e, http.MethodGet, "/api/classification/ZZZZ", "")
	assert.Equal(t, http.StatusNotFound, missing.Status)
}

func TestRefreshEndpointWithoutQueue(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/refresh", `{"ticker":"AAPL"}`)
	assert.Equal(t, http.StatusServiceUnavailable, envelope.Status)
}

func TestSectorsEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodGet, "/api/sectors", "")
	require.Equal(t, http.StatusOK, envelope.Status)

	data := envelope.Data.(map[string]interface{})
	sectors := data["sectors"].(map[string]interface{})
	assert.Len(t, sectors, 11)
	assert.Contains(t, sectors, "Financials")
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := newTestEcho(t)

	_, envelope := doJSON(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, envelope.Status)
}
