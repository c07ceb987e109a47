package models

import "youtube-insights/catalog"

// MarketShareRow is one device's share of the whole dataset.
type MarketShareRow struct {
	DeviceName         string           `json:"device_name"`
	VideoCount         int64            `json:"video_count"`
	VideoSharePct      float64          `json:"video_share_pct"`
	TotalViews         int64            `json:"total_views"`
	ViewSharePct       float64          `json:"view_share_pct"`
	UniqueChannelCount int64            `json:"unique_channel_count"`
	Category           catalog.Category `json:"category"`
	Rank               int              `json:"rank"`
	Company            string           `json:"company"`
	IsTargetBrand      bool             `json:"is_target_brand"`
}

// MonthlyTrendRow aggregates one device for one calendar month.
type MonthlyTrendRow struct {
	DeviceName    string `json:"device_name"`
	Month         string `json:"month"`
	TotalViews    int64  `json:"total_views"`
	TotalLikes    int64  `json:"total_likes"`
	TotalComments int64  `json:"total_comments"`
	VideoCount    int64  `json:"video_count"`
}

// ContentTypeRow aggregates one device for one content type.
type ContentTypeRow struct {
	DeviceName    string  `json:"device_name"`
	VideoType     string  `json:"video_type"`
	VideoCount    int64   `json:"video_count"`
	TotalViews    int64   `json:"total_views"`
	AvgViews      float64 `json:"avg_views"`
	TotalLikes    int64   `json:"total_likes"`
	TotalComments int64   `json:"total_comments"`
}

// ChannelPerformanceRow aggregates one channel's videos about one device.
type ChannelPerformanceRow struct {
	ChannelName    string  `json:"channel_name"`
	DeviceName     string  `json:"device_name"`
	VideoCount     int64   `json:"video_count"`
	TotalViews     int64   `json:"total_views"`
	AvgViews       float64 `json:"avg_views"`
	TotalLikes     int64   `json:"total_likes"`
	TotalComments  int64   `json:"total_comments"`
	Subscribers    int64   `json:"subscribers"`
	EngagementRate float64 `json:"engagement_rate"`
	Company        string  `json:"company"`
}

// CategoryDeviceRow is one device inside a category breakdown.
type CategoryDeviceRow struct {
	Category         catalog.Category `json:"category"`
	DeviceName       string           `json:"device_name"`
	VideoCount       int64            `json:"video_count"`
	TotalViews       int64            `json:"total_views"`
	Engagement       int64            `json:"engagement"`
	CategorySharePct float64          `json:"category_share_pct"`
	AvgViews         int64            `json:"avg_views"`
	IsTargetBrand    bool             `json:"is_target_brand"`
}

// CategoryBreakdown summarises one device category.
type CategoryBreakdown struct {
	Category    catalog.Category     `json:"category"`
	TotalVideos int64                `json:"total_videos"`
	TotalViews  int64                `json:"total_views"`
	Leader      string               `json:"leader"`
	Devices     []*CategoryDeviceRow `json:"devices"`
}

// InsightSummary is the target brand group's headline numbers.
type InsightSummary struct {
	TargetCompany       string  `json:"target_company"`
	TargetVideos        int64   `json:"target_videos"`
	TargetTotalViews    int64   `json:"target_total_views"`
	TargetAvgViews      float64 `json:"target_avg_views"`
	MarketVideoSharePct float64 `json:"market_video_share_pct"`
	MarketViewSharePct  float64 `json:"market_view_share_pct"`
}

// ProductPerformance aggregates one target device.
type ProductPerformance struct {
	DeviceName    string  `json:"device_name"`
	VideoCount    int64   `json:"video_count"`
	TotalViews    int64   `json:"total_views"`
	AvgViews      float64 `json:"avg_views"`
	TotalLikes    int64   `json:"total_likes"`
	TotalComments int64   `json:"total_comments"`
}

// DeviceValue pairs a device with one ranked metric.
type DeviceValue struct {
	DeviceName string `json:"device_name"`
	Value      int64  `json:"value"`
}

// CompetitorBenchmark holds two independently ranked competitor lists.
type CompetitorBenchmark struct {
	TopByVideoCount []DeviceValue `json:"top_competitor_video_count"`
	TopByViews      []DeviceValue `json:"top_competitor_views"`
}

// InsightReport compares the target brand group against competitors.
type InsightReport struct {
	Summary             InsightSummary           `json:"summary"`
	ProductPerformance  []*ProductPerformance    `json:"product_performance"`
	TopTargetChannels   []*ChannelPerformanceRow `json:"top_target_channels"`
	CompetitorBenchmark CompetitorBenchmark      `json:"competitor_benchmark"`
}

// TargetMarketShare is the target group's share block of the dashboard.
type TargetMarketShare struct {
	VideoSharePct float64 `json:"video_share_pct"`
	ViewSharePct  float64 `json:"view_share_pct"`
}

// MarketOverview holds whole-dataset totals for the dashboard.
type MarketOverview struct {
	TotalVideos       int64             `json:"total_videos"`
	TotalViews        int64             `json:"total_views"`
	UniqueChannels    int64             `json:"unique_channels"`
	TargetMarketShare TargetMarketShare `json:"target_market_share"`
}

// TargetPerformance is the dashboard's target group block.
type TargetPerformance struct {
	TotalVideos int64   `json:"total_videos"`
	TotalViews  int64   `json:"total_views"`
	AvgViews    float64 `json:"avg_views"`
}

// DashboardSummary is the compact document the dashboard loads first.
type DashboardSummary struct {
	MarketOverview    MarketOverview    `json:"market_overview"`
	TopDevices        []*MarketShareRow `json:"top_devices"`
	TargetPerformance TargetPerformance `json:"target_performance"`
}

// Report bundles every output of one pipeline run.
type Report struct {
	RunID              string                   `json:"run_id"`
	RecordCount        int                      `json:"record_count"`
	Videos             []*Video                 `json:"-"`
	MarketShare        []*MarketShareRow        `json:"market_share"`
	MonthlyTrends      []*MonthlyTrendRow       `json:"monthly_trends"`
	ContentTypes       []*ContentTypeRow        `json:"content_types"`
	ChannelPerformance []*ChannelPerformanceRow `json:"channel_performance"`
	Categories         []*CategoryBreakdown     `json:"categories"`
	Insight            *InsightReport           `json:"insight"`
	Dashboard          *DashboardSummary        `json:"dashboard"`
}
