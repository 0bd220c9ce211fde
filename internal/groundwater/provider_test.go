package groundwater

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmwise/crop-advisor/internal/domain"
	"github.com/farmwise/crop-advisor/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubSource struct {
	status BlockStatus
	err    error
	calls  int
}

func (s *stubSource) FetchStatus(_ context.Context, _, _ string) (BlockStatus, error) {
	s.calls++
	return s.status, s.err
}

func TestGetStatus_KnownFallbackBlock(t *testing.T) {
	p := NewProvider(discardLogger())

	status := p.GetStatus(context.Background(), "Pune", "Baramati")
	assert.Equal(t, domain.ClassificationOverExploited, status.Classification)
	assert.InDelta(t, 32, status.WaterTableDepthM, 1e-9)
}

func TestGetStatus_GenericFallback(t *testing.T) {
	p := NewProvider(discardLogger())

	status := p.GetStatus(context.Background(), "Nowhere", "Elsewhere")
	assert.Equal(t, domain.ClassificationSemiCritical, status.Classification)
	assert.InDelta(t, 20, status.WaterTableDepthM, 1e-9)
}

func TestGetStatus_CaseInsensitiveKey(t *testing.T) {
	p := NewProvider(discardLogger())

	a := p.GetStatus(context.Background(), "PUNE", "BARAMATI")
	b := p.GetStatus(context.Background(), "pune", " baramati ")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, p.cache.len())
}

func TestGetStatus_LiveSourcePreferred(t *testing.T) {
	src := &stubSource{status: BlockStatus{
		Classification:   domain.ClassificationSafe,
		WaterTableDepthM: 5,
	}}
	p := NewProvider(discardLogger(), WithSource(src))

	status := p.GetStatus(context.Background(), "Pune", "Baramati")
	assert.Equal(t, domain.ClassificationSafe, status.Classification)
	assert.Equal(t, 1, src.calls)
}

func TestGetStatus_LiveFailureDegradesToFallback(t *testing.T) {
	src := &stubSource{err: errors.New("upstream down")}
	p := NewProvider(discardLogger(), WithSource(src))

	status := p.GetStatus(context.Background(), "Pune", "Baramati")
	assert.Equal(t, domain.ClassificationOverExploited, status.Classification)
}

func TestGetStatus_LiveFailureCountsFallback(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	src := &stubSource{err: errors.New("upstream down")}
	p := NewProvider(discardLogger(), WithSource(src), WithMetrics(metrics))

	p.GetStatus(context.Background(), "Pune", "Baramati")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CollaboratorFallbacks.WithLabelValues("status")), 1e-9)

	// A cache hit must not count again.
	p.GetStatus(context.Background(), "Pune", "Baramati")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.CollaboratorFallbacks.WithLabelValues("status")), 1e-9)
}

func TestGetStatus_CachesForTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	src := &stubSource{status: BlockStatus{Classification: domain.ClassificationSafe}}
	p := NewProvider(discardLogger(), WithSource(src), WithClock(clock))

	ctx := context.Background()
	p.GetStatus(ctx, "Pune", "Baramati")
	p.GetStatus(ctx, "Pune", "Baramati")
	assert.Equal(t, 1, src.calls, "second call within TTL must hit the cache")

	clock.Advance(StatusTTL + 1)
	p.GetStatus(ctx, "Pune", "Baramati")
	assert.Equal(t, 2, src.calls, "expired entry must refetch")
}

func TestGetLevel_StressBox(t *testing.T) {
	p := NewProvider(discardLogger())

	// Aurangabad sits inside the hard-rock belt.
	assert.InDelta(t, 26.0, p.GetLevel(19.88, 75.34), 1e-9)
	// Satara is outside it.
	assert.InDelta(t, 18.0, p.GetLevel(17.69, 74.00), 1e-9)
}

func TestGetHistoricalTrend(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := NewProvider(discardLogger(), WithClock(clock))

	trend := p.GetHistoricalTrend(context.Background(), "Pune", "Baramati", 5)
	require.Len(t, trend, 5)

	year := clock.Now().Year()
	assert.Equal(t, year-4, trend[0].Year)
	assert.Equal(t, year, trend[4].Year)

	// Over-exploited blocks decline 1.2 m/year toward the current depth.
	assert.InDelta(t, 32-4*1.2, trend[0].LevelM, 1e-9)
	assert.InDelta(t, 32, trend[4].LevelM, 1e-9)
	for _, pt := range trend {
		assert.InDelta(t, 1.2, pt.ChangeM, 1e-9)
	}
}

func TestGetHistoricalTrend_ClampsAtSurface(t *testing.T) {
	p := NewProvider(discardLogger())

	// Karveer is 6 m deep and safe; a long history cannot go above ground.
	trend := p.GetHistoricalTrend(context.Background(), "Kolhapur", "Karveer", 5)
	require.Len(t, trend, 5)
	for _, pt := range trend {
		assert.GreaterOrEqual(t, pt.LevelM, 0.0)
	}
}

func TestGetHistoricalTrend_ZeroYears(t *testing.T) {
	p := NewProvider(discardLogger())
	assert.Nil(t, p.GetHistoricalTrend(context.Background(), "Pune", "Baramati", 0))
}

func TestAverageDeclinePercent(t *testing.T) {
	trend := []TrendPoint{
		{LevelM: 27.2}, {LevelM: 28.4}, {LevelM: 29.6}, {LevelM: 30.8}, {LevelM: 32.0},
	}
	// 4.8 m of decline over a 27.2 m starting level.
	assert.InDelta(t, 4.8/27.2*100, AverageDeclinePercent(trend), 1e-9)
}

func TestAverageDeclinePercent_RecoveringSeriesScoresZero(t *testing.T) {
	trend := []TrendPoint{{LevelM: 8.4}, {LevelM: 8.3}, {LevelM: 8.2}}
	assert.Zero(t, AverageDeclinePercent(trend))
}

func TestAverageDeclinePercent_DegenerateInputs(t *testing.T) {
	assert.Zero(t, AverageDeclinePercent(nil))
	assert.Zero(t, AverageDeclinePercent([]TrendPoint{{LevelM: 10}}))
	assert.Zero(t, AverageDeclinePercent([]TrendPoint{{LevelM: 0}, {LevelM: 5}}))
}
