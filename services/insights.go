package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"youtube-insights/models"
	"youtube-insights/utils"
)

const (
	defaultTopChannels    = 10
	defaultTopCompetitors = 5
	dashboardTopDevices   = 10
)

// InsightService builds the target brand report and the dashboard summary
// from normalized videos and the channel table.
type InsightService struct {
	logger         *utils.Logger
	targetCompany  string
	topChannels    int
	topCompetitors int
}

// NewInsightService creates the synthesizer for one target company.
// Non-positive limits fall back to 10 channels and 5 competitors.
func NewInsightService(logger *utils.Logger, targetCompany string, topChannels, topCompetitors int) *InsightService {
	if topChannels <= 0 {
		topChannels = defaultTopChannels
	}
	if topCompetitors <= 0 {
		topCompetitors = defaultTopCompetitors
	}
	return &InsightService{
		logger:         logger,
		targetCompany:  targetCompany,
		topChannels:    topChannels,
		topCompetitors: topCompetitors,
	}
}

// Synthesize compares the target brand group with every competitor.
// Summary shares are against the full dataset. channels must already be
// sorted by total views; the top target channels are a prefix of it.
func (s *InsightService) Synthesize(videos []*models.Video, channels []*models.ChannelPerformanceRow) *models.InsightReport {
	var (
		totalViews   int64
		targetVideos int64
		targetViews  int64
		target       []*models.Video
		competitors  []*models.Video
	)

	for _, v := range videos {
		totalViews += v.ViewCount
		if v.IsTargetBrand {
			target = append(target, v)
			targetVideos++
			targetViews += v.ViewCount
		} else {
			competitors = append(competitors, v)
		}
	}

	report := &models.InsightReport{
		Summary: models.InsightSummary{
			TargetCompany:       s.targetCompany,
			TargetVideos:        targetVideos,
			TargetTotalViews:    targetViews,
			TargetAvgViews:      mean(targetViews, targetVideos),
			MarketVideoSharePct: utils.Percent(float64(targetVideos), float64(len(videos))),
			MarketViewSharePct:  utils.Percent(float64(targetViews), float64(totalViews)),
		},
		ProductPerformance:  productPerformance(target),
		TopTargetChannels:   s.topTargetChannels(channels),
		CompetitorBenchmark: s.competitorBenchmark(competitors),
	}

	s.logger.Info("[insights] %s: %d videos (%.2f%% of videos, %.2f%% of views)",
		s.targetCompany, targetVideos, report.Summary.MarketVideoSharePct, report.Summary.MarketViewSharePct)
	return report
}

// productPerformance aggregates each target device, ordered by device name.
func productPerformance(target []*models.Video) []*models.ProductPerformance {
	groups := make(map[string]*models.ProductPerformance)
	for _, v := range target {
		p, ok := groups[v.DeviceName]
		if !ok {
			p = &models.ProductPerformance{DeviceName: v.DeviceName}
			groups[v.DeviceName] = p
		}
		p.VideoCount++
		p.TotalViews += v.ViewCount
		p.TotalLikes += v.Likes
		p.TotalComments += v.CommentCount
	}

	out := make([]*models.ProductPerformance, 0, len(groups))
	for _, p := range groups {
		p.AvgViews = mean(p.TotalViews, p.VideoCount)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DeviceName < out[j].DeviceName
	})
	return out
}

func (s *InsightService) topTargetChannels(channels []*models.ChannelPerformanceRow) []*models.ChannelPerformanceRow {
	out := make([]*models.ChannelPerformanceRow, 0, s.topChannels)
	for _, row := range channels {
		if len(out) == s.topChannels {
			break
		}
		if row.Company == s.targetCompany {
			out = append(out, row)
		}
	}
	return out
}

// competitorBenchmark ranks competitor devices twice: by video count (ties
// in first-seen order) and by total views (ties in device name order).
func (s *InsightService) competitorBenchmark(competitors []*models.Video) models.CompetitorBenchmark {
	counts := make(map[string]int64)
	views := make(map[string]int64)
	order := utils.NewKeySet()

	for _, v := range competitors {
		order.Add(v.DeviceName)
		counts[v.DeviceName]++
		views[v.DeviceName] += v.ViewCount
	}

	byCount := make([]models.DeviceValue, 0, order.Size())
	for _, name := range order.Keys() {
		byCount = append(byCount, models.DeviceValue{DeviceName: name, Value: counts[name]})
	}
	sort.SliceStable(byCount, func(i, j int) bool {
		return byCount[i].Value > byCount[j].Value
	})

	byViews := make([]models.DeviceValue, 0, order.Size())
	for _, name := range order.Keys() {
		byViews = append(byViews, models.DeviceValue{DeviceName: name, Value: views[name]})
	}
	sort.Slice(byViews, func(i, j int) bool {
		if byViews[i].Value != byViews[j].Value {
			return byViews[i].Value > byViews[j].Value
		}
		return byViews[i].DeviceName < byViews[j].DeviceName
	})

	return models.CompetitorBenchmark{
		TopByVideoCount: head(byCount, s.topCompetitors),
		TopByViews:      head(byViews, s.topCompetitors),
	}
}

// DashboardSummary builds the compact document the dashboard loads first.
func (s *InsightService) DashboardSummary(videos []*models.Video, marketShare []*models.MarketShareRow, insight *models.InsightReport) *models.DashboardSummary {
	channels := utils.NewKeySet()
	var totalViews int64
	for _, v := range videos {
		channels.Add(v.ChannelName)
		totalViews += v.ViewCount
	}

	return &models.DashboardSummary{
		MarketOverview: models.MarketOverview{
			TotalVideos:    int64(len(videos)),
			TotalViews:     totalViews,
			UniqueChannels: int64(channels.Size()),
			TargetMarketShare: models.TargetMarketShare{
				VideoSharePct: insight.Summary.MarketVideoSharePct,
				ViewSharePct:  insight.Summary.MarketViewSharePct,
			},
		},
		TopDevices: head(marketShare, dashboardTopDevices),
		TargetPerformance: models.TargetPerformance{
			TotalVideos: insight.Summary.TargetVideos,
			TotalViews:  insight.Summary.TargetTotalViews,
			AvgViews:    utils.Round(insight.Summary.TargetAvgViews, 0),
		},
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Print renders the report as a console summary.
func (s *InsightService) Print(r *models.Report) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)
	sum := r.Insight.Summary

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 YOUTUBE DEVICE INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total videos     : \033[1m%d\033[0m\n", r.Dashboard.MarketOverview.TotalVideos)
	fmt.Printf("  Total views      : \033[1m%d\033[0m\n", r.Dashboard.MarketOverview.TotalViews)
	fmt.Printf("  Unique channels  : \033[1m%d\033[0m\n", r.Dashboard.MarketOverview.UniqueChannels)
	fmt.Println()

	// Target brand group
	fmt.Printf("\033[1;33m  %s\033[0m\n", sum.TargetCompany)
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Videos           : \033[1m%d\033[0m (\033[1;32m%.2f%%\033[0m of market)\n", sum.TargetVideos, sum.MarketVideoSharePct)
	fmt.Printf("  Views            : \033[1m%d\033[0m (\033[1;32m%.2f%%\033[0m of market)\n", sum.TargetTotalViews, sum.MarketViewSharePct)
	fmt.Printf("  Average views    : \033[1m%.0f\033[0m\n", sum.TargetAvgViews)
	for _, p := range r.Insight.ProductPerformance {
		fmt.Printf("  ⭐ %-14s %5d videos  %10d views\n", p.DeviceName, p.VideoCount, p.TotalViews)
	}
	fmt.Println()

	// Market share
	fmt.Printf("\033[1;33m  Top Devices by Video Count\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Dashboard.TopDevices) == 0 {
		fmt.Printf("  No device data\n")
	} else {
		for i, d := range r.Dashboard.TopDevices {
			mark := "  "
			if d.IsTargetBrand {
				mark = "⭐"
			}
			fmt.Printf("  \033[1m%2d.\033[0m %s%-14s %-5s %6.2f%%  (%d videos)\n",
				i+1, mark, truncate(d.DeviceName, 14), d.Category, d.VideoSharePct, d.VideoCount)
		}
	}
	fmt.Println()

	// Category leaders
	fmt.Printf("\033[1;33m  Category Leaders\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, c := range r.Categories {
		leader := c.Leader
		if leader == "" {
			leader = "-"
		}
		fmt.Printf("  %-5s %-14s (%d videos, %d views)\n", c.Category, leader, c.TotalVideos, c.TotalViews)
	}
	fmt.Println()

	// Channels
	fmt.Printf("\033[1;33m  Top %s Channels\033[0m\n", sum.TargetCompany)
	fmt.Printf("  %s\n", thin)
	if len(r.Insight.TopTargetChannels) == 0 {
		fmt.Printf("  No channel data\n")
	} else {
		for i, c := range r.Insight.TopTargetChannels {
			fmt.Printf("  \033[1m%2d.\033[0m %-30s %-10s %10d views  %5.2f%%\n",
				i+1, truncate(c.ChannelName, 28), truncate(c.DeviceName, 10), c.TotalViews, c.EngagementRate)
		}
	}
	fmt.Println()

	// Competitors
	fmt.Printf("\033[1;33m  Competitor Benchmark\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for i, d := range r.Insight.CompetitorBenchmark.TopByVideoCount {
		bar := strings.Repeat("█", barLength(d.Value, r.Insight.CompetitorBenchmark.TopByVideoCount[0].Value))
		fmt.Printf("  %d. %-14s %s (%d)\n", i+1, truncate(d.DeviceName, 14), bar, d.Value)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func barLength(v, max int64) int {
	const width = 20
	if max <= 0 {
		return 0
	}
	return int(v * width / max)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}
