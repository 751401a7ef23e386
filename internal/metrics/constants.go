package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Crafting metric names
const (
	MetricNameCraftsTotal          = "crafts_total"
	MetricNameCraftRejectionsTotal = "craft_rejections_total"
	MetricNameItemsConsumed        = "items_consumed_total"
	MetricNameItemsCreated         = "items_created_total"
	MetricNameSpiritGrade          = "spirit_grade"
	MetricNameRecipesLearned       = "recipes_learned_total"
	MetricNameRecipesUnlearned     = "recipes_unlearned_total"
	MetricNameRecipeTypeToggles    = "recipe_type_toggles_total"
	MetricNameSpiritsBound         = "spirits_bound_total"
	MetricNameCatalogRecipes       = "catalog_recipes"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Crafting metric help text
const (
	HelpTextCraftsTotal          = "Total number of successful crafts"
	HelpTextCraftRejectionsTotal = "Total number of rejected craft executions"
	HelpTextItemsConsumed        = "Total quantity of resources consumed by crafting"
	HelpTextItemsCreated         = "Total quantity of items produced by crafting"
	HelpTextSpiritGrade          = "Grade of synthesized spirits"
	HelpTextRecipesLearned       = "Total number of recipes learned"
	HelpTextRecipesUnlearned     = "Total number of recipes unlearned"
	HelpTextRecipeTypeToggles    = "Total number of recipe type opt-in changes"
	HelpTextSpiritsBound         = "Total number of spirits bound to items"
	HelpTextCatalogRecipes       = "Number of recipes in the loaded catalog"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelRecipeType = "recipe_type"
	LabelReason     = "reason"
	LabelEnabled    = "enabled"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SpiritGradeBuckets has one bucket per spirit grade
var SpiritGradeBuckets = []float64{1, 2, 3, 4, 5, 6}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

// PathUnmatched labels requests that matched no route
const PathUnmatched = "unmatched"
