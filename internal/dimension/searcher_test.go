package dimension

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace/noop"

	"dimens/internal/tracing"
)

func newTestSearcher() *Searcher {
	return NewSearcher(noop.NewTracerProvider().Tracer("test"), time.Minute, false)
}

// newRecordedSearcher returns a searcher whose spans are captured by the
// returned recorder.
func newRecordedSearcher(skipCache bool) (*Searcher, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewSearcher(provider.Tracer("test"), time.Minute, skipCache), recorder
}

func cacheHitAttr(t *testing.T, span sdktrace.ReadOnlySpan) bool {
	t.Helper()
	for _, attr := range span.Attributes() {
		if string(attr.Key) == tracing.AttrSearchCacheHit {
			return attr.Value.AsBool()
		}
	}
	t.Fatalf("span %q has no %s attribute", span.Name(), tracing.AttrSearchCacheHit)
	return false
}

func TestSearcher_MatchesDirectSearch(t *testing.T) {
	force := mustParse(t, "F")
	searcher := newTestSearcher()

	direct := force.Equivalents(EquivalentsOptions{})
	cached := searcher.Equivalents(context.Background(), force, EquivalentsOptions{})

	require.Equal(t, len(direct), len(cached))
	for i := range direct {
		assert.Equal(t, direct[i].Vector(), cached[i].Vector())
	}
}

func TestSearcher_RepeatQueriesAreStable(t *testing.T) {
	energy := mustParse(t, "E")
	searcher := newTestSearcher()

	first := searcher.Equivalents(context.Background(), energy, EquivalentsOptions{})
	second := searcher.Equivalents(context.Background(), energy, EquivalentsOptions{})

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Vector(), second[i].Vector())
	}
}

func TestSearcher_SecondQueryHitsCache(t *testing.T) {
	searcher, recorder := newRecordedSearcher(false)
	energy := mustParse(t, "E")

	searcher.Equivalents(context.Background(), energy, EquivalentsOptions{MaxComposingDims: 2})
	searcher.Equivalents(context.Background(), energy, EquivalentsOptions{MaxComposingDims: 2})

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, tracing.SpanEquivalentsSearch, spans[0].Name())
	assert.False(t, cacheHitAttr(t, spans[0]), "first query computes")
	assert.True(t, cacheHitAttr(t, spans[1]), "second query is served from cache")
}

func TestSearcher_SkipCacheAlwaysSearches(t *testing.T) {
	searcher, recorder := newRecordedSearcher(true)
	energy := mustParse(t, "E")

	searcher.Equivalents(context.Background(), energy, EquivalentsOptions{MaxComposingDims: 2})
	searcher.Equivalents(context.Background(), energy, EquivalentsOptions{MaxComposingDims: 2})

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.False(t, cacheHitAttr(t, spans[0]))
	assert.False(t, cacheHitAttr(t, spans[1]), "a skipped cache never reports a hit")
}

func TestSearcher_OptionsChangeTheCacheKey(t *testing.T) {
	energy := mustParse(t, "E")
	searcher := newTestSearcher()

	narrow := searcher.Equivalents(context.Background(), energy, EquivalentsOptions{MaxComposingDims: 2})
	wide := searcher.Equivalents(context.Background(), energy, EquivalentsOptions{MaxComposingDims: 4})

	assert.Greater(t, len(wide), len(narrow))
}

func TestSearchKey_DistinguishesFractionalVectors(t *testing.T) {
	half := mustParse(t, "L^1/2")
	whole := mustParse(t, "L")

	assert.NotEqual(t,
		searchKey(half, EquivalentsOptions{}.withDefaults()),
		searchKey(whole, EquivalentsOptions{}.withDefaults()))
}
