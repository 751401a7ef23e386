package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Crafting Metrics
var (
	CraftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftsTotal,
			Help: HelpTextCraftsTotal,
		},
		[]string{LabelRecipeType},
	)

	CraftRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCraftRejectionsTotal,
			Help: HelpTextCraftRejectionsTotal,
		},
		[]string{LabelRecipeType, LabelReason},
	)

	ItemsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsConsumed,
			Help: HelpTextItemsConsumed,
		},
		[]string{LabelRecipeType},
	)

	ItemsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsCreated,
			Help: HelpTextItemsCreated,
		},
		[]string{LabelRecipeType},
	)

	SpiritGrade = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSpiritGrade,
			Help:    HelpTextSpiritGrade,
			Buckets: SpiritGradeBuckets,
		},
	)

	RecipesLearned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesLearned,
			Help: HelpTextRecipesLearned,
		},
	)

	RecipesUnlearned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRecipesUnlearned,
			Help: HelpTextRecipesUnlearned,
		},
	)

	RecipeTypeToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRecipeTypeToggles,
			Help: HelpTextRecipeTypeToggles,
		},
		[]string{LabelRecipeType, LabelEnabled},
	)

	SpiritsBound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSpiritsBound,
			Help: HelpTextSpiritsBound,
		},
	)

	CatalogRecipes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCatalogRecipes,
			Help: HelpTextCatalogRecipes,
		},
	)
)
