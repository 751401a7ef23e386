package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/SpiritForge_Go/internal/logger"
	"github.com/osse101/SpiritForge_Go/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for operators
type AdminMetricsResponse struct {
	HTTP     HTTPMetrics     `json:"http"`
	Events   EventMetrics    `json:"events"`
	Crafting CraftingMetrics `json:"crafting"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type CraftingMetrics struct {
	CraftsByType       map[string]float64 `json:"crafts_by_type"`
	RejectionsByReason map[string]float64 `json:"rejections_by_reason"`
	ItemsConsumed      float64            `json:"items_consumed"`
	ItemsCreated       float64            `json:"items_created"`
	SpiritsSynthesized uint64             `json:"spirits_synthesized"`
	AvgSpiritGrade     float64            `json:"avg_spirit_grade"`
	SpiritsBound       float64            `json:"spirits_bound"`
	CatalogRecipes     float64            `json:"catalog_recipes"`
}

// HandleGetMetrics summarizes the Prometheus registry as JSON
// @Summary Metrics summary
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/metrics [get]
func HandleGetMetrics(gatherer prometheus.Gatherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := gatherMetrics(gatherer)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to gather metrics", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to gather metrics")
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Crafting: CraftingMetrics{
			CraftsByType:       make(map[string]float64),
			RejectionsByReason: make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumCountersByLabel(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			var count uint64
			var sum float64
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				count += hist.GetSampleCount()
				sum += hist.GetSampleSum()
				// Worst route wins
				if p95 := estimateQuantile(hist, 0.95) * 1000; p95 > resp.HTTP.P95LatencyMs {
					resp.HTTP.P95LatencyMs = p95
				}
			}
			if count > 0 {
				resp.HTTP.AvgLatencyMs = sum / float64(count) * 1000
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameEventsPublished:
			sumCountersByLabel(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumCountersByLabel(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNameCraftsTotal:
			sumCountersByLabel(mf, metrics.LabelRecipeType, resp.Crafting.CraftsByType)
		case metrics.MetricNameCraftRejectionsTotal:
			sumCountersByLabel(mf, metrics.LabelReason, resp.Crafting.RejectionsByReason)
		case metrics.MetricNameItemsConsumed:
			resp.Crafting.ItemsConsumed = sumCounters(mf)
		case metrics.MetricNameItemsCreated:
			resp.Crafting.ItemsCreated = sumCounters(mf)
		case metrics.MetricNameSpiritsBound:
			resp.Crafting.SpiritsBound = sumCounters(mf)
		case metrics.MetricNameSpiritGrade:
			var sum float64
			for _, m := range mf.GetMetric() {
				resp.Crafting.SpiritsSynthesized += m.GetHistogram().GetSampleCount()
				sum += m.GetHistogram().GetSampleSum()
			}
			if resp.Crafting.SpiritsSynthesized > 0 {
				resp.Crafting.AvgSpiritGrade = sum / float64(resp.Crafting.SpiritsSynthesized)
			}
		case metrics.MetricNameCatalogRecipes:
			for _, m := range mf.GetMetric() {
				resp.Crafting.CatalogRecipes += m.GetGauge().GetValue()
			}
		}
	}

	return resp, nil
}

func sumCountersByLabel(mf *dto.MetricFamily, labelName string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if value := getLabelValue(m, labelName); value != "" {
			into[value] += m.GetCounter().GetValue()
		}
	}
}

func sumCounters(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		if float64(bucket.GetCumulativeCount()) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
