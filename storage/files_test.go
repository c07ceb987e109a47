package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youtube-insights/catalog"
	"youtube-insights/models"
)

func TestDecodeRawVideosFlexibleFields(t *testing.T) {
	doc := `[
		{"id":"a1","input":" 쿨소닉","date":"2025-08-01T00:00:00.000Z","duration":"01:02",
		 "viewCount":1200,"likes":"35","commentsCount":null,"numberOfSubscribers":4.5e3,
		 "channelName":"뷰티로그","type":"shorts","title":"<리뷰> & 후기"},
		{"id":2,"input":"써마지"},
		null
	]`

	videos, err := DecodeRawVideos(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, videos, 3)

	first := videos[0]
	assert.Equal(t, models.FlexValue(" 쿨소닉"), first.Input)
	assert.Equal(t, models.FlexValue("1200"), first.ViewCount)
	assert.Equal(t, models.FlexValue("35"), first.Likes)
	assert.Equal(t, models.FlexValue(""), first.Comments)
	assert.Equal(t, models.FlexValue("4.5e3"), first.Subscribers)

	assert.Equal(t, models.FlexValue("2"), videos[1].ID)
	assert.Equal(t, models.FlexValue(""), videos[1].Duration)
	assert.Nil(t, videos[2])
}

func TestDecodeRawVideosRejectsNonArray(t *testing.T) {
	for _, doc := range []string{"", "null", `{"id":"x"}`, "[{"} {
		_, err := DecodeRawVideos(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrInputUnavailable, "doc %q", doc)
	}
}

func TestDecodeRawVideosEmptyArray(t *testing.T) {
	videos, err := DecodeRawVideos(strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestLoadRawVideosMissingFile(t *testing.T) {
	_, err := LoadRawVideos(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrInputUnavailable)
}

func TestLoadRawVideosFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"a","input":"인모드","viewCount":"10"}]`), 0o644))

	videos, err := LoadRawVideos(path)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, models.FlexValue("인모드"), videos[0].Input)
}

func sampleReport() *models.Report {
	return &models.Report{
		RecordCount: 2,
		MarketShare: []*models.MarketShareRow{
			{DeviceName: "쿨소닉", VideoCount: 1, VideoSharePct: 50, TotalViews: 300, ViewSharePct: 75,
				UniqueChannelCount: 1, Category: catalog.HIFU, Rank: 3, Company: "Asterasys", IsTargetBrand: true},
			{DeviceName: "신제품", VideoCount: 1, VideoSharePct: 50, TotalViews: 100, ViewSharePct: 25,
				UniqueChannelCount: 1, Category: catalog.Unknown, Rank: catalog.SentinelRank, Company: "Unknown"},
		},
		MonthlyTrends: []*models.MonthlyTrendRow{
			{DeviceName: "쿨소닉", Month: "2025-08", TotalViews: 300, TotalLikes: 3, TotalComments: 1, VideoCount: 1},
		},
		ContentTypes: []*models.ContentTypeRow{
			{DeviceName: "쿨소닉", VideoType: "shorts", VideoCount: 1, TotalViews: 300, AvgViews: 300, TotalLikes: 3, TotalComments: 1},
		},
		ChannelPerformance: []*models.ChannelPerformanceRow{
			{ChannelName: "뷰티, 로그", DeviceName: "쿨소닉", VideoCount: 1, TotalViews: 300, AvgViews: 300,
				TotalLikes: 3, TotalComments: 1, Subscribers: 800, EngagementRate: 1.33, Company: "Asterasys"},
		},
		Categories: []*models.CategoryBreakdown{
			{Category: catalog.RF, Devices: []*models.CategoryDeviceRow{}},
			{Category: catalog.HIFU, TotalVideos: 1, TotalViews: 300, Leader: "쿨소닉", Devices: []*models.CategoryDeviceRow{
				{Category: catalog.HIFU, DeviceName: "쿨소닉", VideoCount: 1, TotalViews: 300, Engagement: 4,
					CategorySharePct: 100, AvgViews: 300, IsTargetBrand: true},
			}},
		},
		Insight: &models.InsightReport{
			Summary: models.InsightSummary{TargetCompany: "Asterasys", TargetVideos: 1, TargetTotalViews: 300,
				TargetAvgViews: 300, MarketVideoSharePct: 50, MarketViewSharePct: 75},
			ProductPerformance: []*models.ProductPerformance{},
			TopTargetChannels:  []*models.ChannelPerformanceRow{},
		},
		Dashboard: &models.DashboardSummary{TopDevices: []*models.MarketShareRow{}},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), utf8BOM), "missing BOM in %s", path)

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(data), utf8BOM))).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterWritesAllTables(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewCSVWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteReport(sampleReport()))

	share := readCSV(t, filepath.Join(dir, MarketShareFile))
	require.Len(t, share, 3)
	assert.Equal(t, marketShareHeader, share[0])
	assert.Equal(t, []string{"쿨소닉", "1", "50", "300", "75", "1", "HIFU", "3", "Asterasys", "true"}, share[1])
	assert.Equal(t, []string{"신제품", "1", "50", "100", "25", "1", "Unknown", "999", "Unknown", "false"}, share[2])

	channels := readCSV(t, filepath.Join(dir, ChannelPerformanceFile))
	require.Len(t, channels, 2)
	assert.Equal(t, "뷰티, 로그", channels[1][0])
	assert.Equal(t, "1.33", channels[1][8])

	trends := readCSV(t, filepath.Join(dir, MonthlyTrendsFile))
	assert.Equal(t, []string{"쿨소닉", "2025-08", "300", "3", "1", "1"}, trends[1])

	types := readCSV(t, filepath.Join(dir, ContentTypesFile))
	assert.Equal(t, []string{"쿨소닉", "shorts", "1", "300", "300", "3", "1"}, types[1])

	cats := readCSV(t, filepath.Join(dir, CategoryBreakdownFile))
	require.Len(t, cats, 2)
	assert.Equal(t, []string{"HIFU", "쿨소닉", "1", "300", "4", "100", "300", "true", "true"}, cats[1])
}

func TestCSVWriterEmptyReport(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteReport(&models.Report{}))

	share := readCSV(t, filepath.Join(dir, MarketShareFile))
	assert.Equal(t, [][]string{marketShareHeader}, share)
}

func TestJSONWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewJSONWriter(dir)
	require.NoError(t, err)
	require.NoError(t, w.WriteReport(sampleReport()))

	data, err := os.ReadFile(filepath.Join(dir, InsightFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"market_video_share_pct": 50`)
	assert.Contains(t, string(data), `"target_company": "Asterasys"`)

	var insight models.InsightReport
	require.NoError(t, json.Unmarshal(data, &insight))
	assert.Equal(t, int64(300), insight.Summary.TargetTotalViews)

	_, err = os.Stat(filepath.Join(dir, DashboardFile))
	assert.NoError(t, err)
}
