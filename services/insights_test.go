package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youtube-insights/catalog"
	"youtube-insights/models"
)

func newTestInsightService() *InsightService {
	return NewInsightService(newTestLogger(), catalog.DefaultTargetCompany, 10, 5)
}

func synthesize(videos []*models.Video) *models.InsightReport {
	channels := newTestAggregator().ChannelPerformance(videos)
	return newTestInsightService().Synthesize(videos, channels)
}

func TestInsightSummary(t *testing.T) {
	r := synthesize(sampleVideos())

	assert.Equal(t, "Asterasys", r.Summary.TargetCompany)
	assert.Equal(t, int64(2), r.Summary.TargetVideos)
	assert.Equal(t, int64(1000), r.Summary.TargetTotalViews)
	assert.Equal(t, 500.0, r.Summary.TargetAvgViews)
	assert.Equal(t, 25.0, r.Summary.MarketVideoSharePct)
	assert.Equal(t, 32.26, r.Summary.MarketViewSharePct)
}

func TestInsightShareAgainstFullDataset(t *testing.T) {
	var in []*models.RawVideo
	for i := 0; i < 9; i++ {
		in = append(in, raw("쿨소닉", "c", "2025-08-01", "video", 10, 0, 0, 0))
	}
	for i := 0; i < 91; i++ {
		in = append(in, raw("울쎄라", fmt.Sprintf("c%d", i%7), "2025-08-01", "video", 10, 0, 0, 0))
	}

	r := synthesize(newTestNormalizer().NormalizeAll(in))
	assert.Equal(t, 9.0, r.Summary.MarketVideoSharePct)
	assert.Equal(t, 9.0, r.Summary.MarketViewSharePct)
}

func TestInsightProductPerformance(t *testing.T) {
	in := append(sampleRaw(), raw("리프테라", "x", "2025-08-01", "video", 70, 7, 0, 1))
	r := synthesize(newTestNormalizer().NormalizeAll(in))

	require.Len(t, r.ProductPerformance, 2)
	assert.Equal(t, "리프테라", r.ProductPerformance[0].DeviceName)
	assert.Equal(t, int64(70), r.ProductPerformance[0].TotalViews)

	cool := r.ProductPerformance[1]
	assert.Equal(t, "쿨소닉", cool.DeviceName)
	assert.Equal(t, int64(2), cool.VideoCount)
	assert.Equal(t, int64(1000), cool.TotalViews)
	assert.Equal(t, 500.0, cool.AvgViews)
	assert.Equal(t, int64(50), cool.TotalLikes)
	assert.Equal(t, int64(10), cool.TotalComments)
}

func TestInsightTopTargetChannelsIsPrefix(t *testing.T) {
	var in []*models.RawVideo
	for i := 0; i < 15; i++ {
		in = append(in, raw("쿨페이즈", fmt.Sprintf("ch%02d", i), "2025-08-01", "video", 100*(i+1), 1, 1, 0))
		in = append(in, raw("써마지", fmt.Sprintf("ch%02d", i), "2025-08-01", "video", 5000, 1, 1, 0))
	}
	videos := newTestNormalizer().NormalizeAll(in)
	channels := newTestAggregator().ChannelPerformance(videos)

	r := newTestInsightService().Synthesize(videos, channels)
	require.Len(t, r.TopTargetChannels, 10)
	assert.Equal(t, "ch14", r.TopTargetChannels[0].ChannelName)
	assert.Equal(t, "ch05", r.TopTargetChannels[9].ChannelName)
	for _, c := range r.TopTargetChannels {
		assert.Equal(t, "Asterasys", c.Company)
	}
}

func TestInsightCompetitorBenchmark(t *testing.T) {
	in := []*models.RawVideo{
		raw("인모드", "a", "", "", 10, 0, 0, 0),
		raw("써마지", "a", "", "", 900, 0, 0, 0),
		raw("인모드", "a", "", "", 10, 0, 0, 0),
		raw("덴서티", "a", "", "", 500, 0, 0, 0),
		raw("올리지오", "a", "", "", 500, 0, 0, 0),
		raw("튜페이스", "a", "", "", 1, 0, 0, 0),
		raw("세르프", "a", "", "", 2, 0, 0, 0),
		raw("쿨소닉", "a", "", "", 99999, 0, 0, 0),
	}
	r := synthesize(newTestNormalizer().NormalizeAll(in))

	byCount := r.CompetitorBenchmark.TopByVideoCount
	require.Len(t, byCount, 5)
	assert.Equal(t, models.DeviceValue{DeviceName: "인모드", Value: 2}, byCount[0])
	assert.Equal(t, "써마지", byCount[1].DeviceName)
	assert.Equal(t, "덴서티", byCount[2].DeviceName)
	assert.Equal(t, "튜페이스", byCount[4].DeviceName)

	byViews := r.CompetitorBenchmark.TopByViews
	require.Len(t, byViews, 5)
	assert.Equal(t, models.DeviceValue{DeviceName: "써마지", Value: 900}, byViews[0])
	// 덴서티 and 올리지오 tie at 500 and fall back to name order.
	assert.Equal(t, "덴서티", byViews[1].DeviceName)
	assert.Equal(t, "올리지오", byViews[2].DeviceName)
	assert.Equal(t, "인모드", byViews[3].DeviceName)
	assert.Equal(t, "세르프", byViews[4].DeviceName)

	all := append([]models.DeviceValue{}, byCount...)
	for _, d := range append(all, byViews...) {
		assert.NotEqual(t, "쿨소닉", d.DeviceName)
	}
}

func TestInsightEmptyInput(t *testing.T) {
	r := synthesize(nil)

	assert.Zero(t, r.Summary.TargetVideos)
	assert.Zero(t, r.Summary.TargetTotalViews)
	assert.Zero(t, r.Summary.TargetAvgViews)
	assert.Zero(t, r.Summary.MarketVideoSharePct)
	assert.Zero(t, r.Summary.MarketViewSharePct)
	assert.Empty(t, r.ProductPerformance)
	assert.Empty(t, r.TopTargetChannels)
	assert.Empty(t, r.CompetitorBenchmark.TopByVideoCount)
	assert.Empty(t, r.CompetitorBenchmark.TopByViews)
}

func TestDashboardSummary(t *testing.T) {
	videos := sampleVideos()
	agg := newTestAggregator().Run(videos)
	svc := newTestInsightService()
	insight := svc.Synthesize(videos, agg.ChannelPerformance)

	d := svc.DashboardSummary(videos, agg.MarketShare, insight)
	assert.Equal(t, int64(8), d.MarketOverview.TotalVideos)
	assert.Equal(t, int64(3100), d.MarketOverview.TotalViews)
	assert.Equal(t, int64(3), d.MarketOverview.UniqueChannels)
	assert.Equal(t, 25.0, d.MarketOverview.TargetMarketShare.VideoSharePct)
	assert.Len(t, d.TopDevices, 4)
	assert.Equal(t, int64(2), d.TargetPerformance.TotalVideos)
	assert.Equal(t, 500.0, d.TargetPerformance.AvgViews)
}

func TestNewInsightServiceDefaults(t *testing.T) {
	svc := NewInsightService(newTestLogger(), "X", 0, -1)
	assert.Equal(t, 10, svc.topChannels)
	assert.Equal(t, 5, svc.topCompetitors)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "쿨소닉...", truncate("쿨소닉리프테라쿨페이즈", 6))
}
