package dimension

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dimens/internal/cachemanager"
	"dimens/internal/log"
	"dimens/internal/tracing"
)

// DefaultSearchTTL is how long equivalence search results stay cached.
// The catalog is immutable for the life of the process, so entries only
// expire to bound memory.
const DefaultSearchTTL = 30 * time.Minute

// searchInput carries one equivalence query through the read-through
// cache into the exhaustive search. computed reports back whether the
// search actually ran, i.e. the cache missed.
type searchInput struct {
	dim      Dimension
	opts     EquivalentsOptions
	computed *bool
}

// Searcher runs equivalence searches behind a read-through cache with
// tracing. The exhaustive search solves one linear system per basis
// combination (50388 of them for the default catalog), so repeated
// queries for the same dimension are served from cache.
type Searcher struct {
	cache  *cachemanager.ReadThroughCache[string, []Dimension, searchInput]
	tracer trace.Tracer
	ttl    time.Duration
}

// NewSearcher returns a Searcher caching results for ttl. skipCache
// disables memoisation while keeping the traced search path. The tracer
// may be a no-op tracer when tracing is disabled.
func NewSearcher(tracer trace.Tracer, ttl time.Duration, skipCache bool) *Searcher {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	manager := cachemanager.NewInMemoryCacheManager[string, []Dimension](
		"equivalents", ttl, cachemanager.DefaultCleanupInterval)
	return &Searcher{
		cache:  cachemanager.NewReadThroughCache[string, []Dimension, searchInput](manager, runSearch, skipCache),
		tracer: tracer,
		ttl:    ttl,
	}
}

// Equivalents returns dim.Equivalents(opts), served from cache when the
// same search ran before.
func (s *Searcher) Equivalents(ctx context.Context, dim Dimension, opts EquivalentsOptions) []Dimension {
	opts = opts.withDefaults()
	key := searchKey(dim, opts)

	ctx, span := s.tracer.Start(ctx, tracing.SpanEquivalentsSearch, trace.WithAttributes(
		attribute.String(tracing.AttrDimensionSymbol, dim.Symbol()),
		attribute.Int(tracing.AttrSearchMaxDims, opts.MaxComposingDims),
		attribute.Int(tracing.AttrSearchMaxExp, opts.MaxExp),
		attribute.Int(tracing.AttrSearchMaxCombinations, opts.MaxCombinations),
	))
	defer span.End()

	computed := false
	// runSearch cannot fail, so the read-through error is always nil.
	results, _ := s.cache.Get(ctx, key, searchInput{dim: dim, opts: opts, computed: &computed}, s.ttl)

	if !computed {
		span.AddEvent(tracing.EventCacheHit)
	}
	span.SetAttributes(
		attribute.Bool(tracing.AttrSearchCacheHit, !computed),
		attribute.Int(tracing.AttrSearchResultCount, len(results)),
	)
	return results
}

// runSearch is the read-through compute function: it only runs when the
// cache misses (or is skipped).
func runSearch(ctx context.Context, in searchInput) ([]Dimension, error) {
	if in.computed != nil {
		*in.computed = true
	}
	trace.SpanFromContext(ctx).AddEvent(tracing.EventCacheMiss)

	results := in.dim.Equivalents(in.opts)
	log.Debug(log.CatDimension, "equivalence search completed",
		"dimension", in.dim.Symbol(), "results", len(results))
	return results, nil
}

// searchKey identifies a search by the raw exponent vector (which may
// be fractional) plus every option that changes the result set.
func searchKey(dim Dimension, opts EquivalentsOptions) string {
	var b strings.Builder
	b.WriteString("equiv:")
	for _, v := range dim.vec {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte(',')
	}
	fmt.Fprintf(&b, ":%d:%d:%d", opts.MaxComposingDims, opts.MaxExp, opts.MaxCombinations)
	return b.String()
}
