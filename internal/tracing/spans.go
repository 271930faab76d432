package tracing

// Span attribute keys for dimensional-analysis tracing.
// These constants define the semantic conventions for span attributes
// across the engine.
const (
	// Dimension attributes
	AttrDimensionSymbol = "dimension.symbol"

	// Unit attributes
	AttrUnitSymbol   = "unit.symbol"
	AttrTargetSymbol = "unit.target_symbol"

	// Search attributes
	AttrSearchMaxDims         = "search.max_composing_dims"
	AttrSearchMaxExp          = "search.max_exp"
	AttrSearchMaxCombinations = "search.max_combinations"
	AttrSearchResultCount     = "search.result_count"
	AttrSearchCacheHit        = "search.cache_hit"

	// Error attributes
	AttrErrorMessage = "error.message"
)

// Span names for the engine's traced operations.
const (
	SpanEquivalentsSearch = "dimension.equivalents"
	SpanConversion        = "unit.conversion"
)

// Event names for span events.
const (
	EventCacheHit      = "cache.hit"
	EventCacheMiss     = "cache.miss"
	EventErrorOccurred = "error.occurred"
)
