package services

import (
	"sort"

	"youtube-insights/catalog"
	"youtube-insights/models"
	"youtube-insights/utils"
)

// Aggregates holds the result tables of every aggregation pass.
type Aggregates struct {
	MarketShare        []*models.MarketShareRow
	MonthlyTrends      []*models.MonthlyTrendRow
	ContentTypes       []*models.ContentTypeRow
	ChannelPerformance []*models.ChannelPerformanceRow
	Categories         []*models.CategoryBreakdown
}

// Aggregator runs the independent group-by passes over normalized videos.
// Every pass re-scans the full input and never mutates it.
type Aggregator struct {
	logger  *utils.Logger
	workers int
}

// NewAggregator creates an Aggregator. workers > 1 runs the passes
// concurrently; the output does not depend on it.
func NewAggregator(logger *utils.Logger, workers int) *Aggregator {
	return &Aggregator{logger: logger, workers: workers}
}

// Run executes all passes. videos must be fully built before the call.
func (a *Aggregator) Run(videos []*models.Video) *Aggregates {
	out := &Aggregates{}
	pool := utils.NewWorkerPool(a.workers)

	pool.Submit(func() { out.MarketShare = a.MarketShare(videos) })
	pool.Submit(func() { out.MonthlyTrends = a.MonthlyTrends(videos) })
	pool.Submit(func() { out.ContentTypes = a.ContentTypes(videos) })
	pool.Submit(func() { out.ChannelPerformance = a.ChannelPerformance(videos) })
	pool.Submit(func() { out.Categories = a.CategoryBreakdown(videos) })
	pool.Wait()

	a.logger.Info("[aggregator] %d devices | %d device-months | %d device-types | %d channel-devices (workers: %d)",
		len(out.MarketShare), len(out.MonthlyTrends), len(out.ContentTypes),
		len(out.ChannelPerformance), pool.Size())
	return out
}

type deviceAcc struct {
	first    *models.Video
	count    int64
	views    int64
	channels *utils.KeySet
}

// MarketShare groups by device and computes each device's share of the
// whole dataset. Rows are ordered by video count descending; ties keep the
// order in which devices first appear.
func (a *Aggregator) MarketShare(videos []*models.Video) []*models.MarketShareRow {
	groups := make(map[string]*deviceAcc)
	order := utils.NewKeySet()
	var totalVideos, totalViews int64

	for _, v := range videos {
		acc, ok := groups[v.DeviceName]
		if !ok {
			acc = &deviceAcc{first: v, channels: utils.NewKeySet()}
			groups[v.DeviceName] = acc
			order.Add(v.DeviceName)
		}
		acc.count++
		acc.views += v.ViewCount
		acc.channels.Add(v.ChannelName)

		totalVideos++
		totalViews += v.ViewCount
	}

	rows := make([]*models.MarketShareRow, 0, order.Size())
	for _, name := range order.Keys() {
		acc := groups[name]
		rows = append(rows, &models.MarketShareRow{
			DeviceName:         name,
			VideoCount:         acc.count,
			VideoSharePct:      utils.Percent(float64(acc.count), float64(totalVideos)),
			TotalViews:         acc.views,
			ViewSharePct:       utils.Percent(float64(acc.views), float64(totalViews)),
			UniqueChannelCount: int64(acc.channels.Size()),
			Category:           acc.first.Category,
			Rank:               acc.first.Rank,
			Company:            acc.first.Company,
			IsTargetBrand:      acc.first.IsTargetBrand,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].VideoCount > rows[j].VideoCount
	})
	return rows
}

// MonthlyTrends buckets dated videos by device and calendar month. Videos
// without a parseable date are left out. Rows are ordered by device, then
// month.
func (a *Aggregator) MonthlyTrends(videos []*models.Video) []*models.MonthlyTrendRow {
	type key struct{ device, month string }
	groups := make(map[key]*models.MonthlyTrendRow)

	for _, v := range videos {
		if !v.HasDate {
			continue
		}
		k := key{v.DeviceName, v.Month()}
		row, ok := groups[k]
		if !ok {
			row = &models.MonthlyTrendRow{DeviceName: k.device, Month: k.month}
			groups[k] = row
		}
		row.TotalViews += v.ViewCount
		row.TotalLikes += v.Likes
		row.TotalComments += v.CommentCount
		row.VideoCount++
	}

	rows := make([]*models.MonthlyTrendRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DeviceName != rows[j].DeviceName {
			return rows[i].DeviceName < rows[j].DeviceName
		}
		return rows[i].Month < rows[j].Month
	})
	return rows
}

// ContentTypes groups by device and content type. Rows are ordered by
// device, then type.
func (a *Aggregator) ContentTypes(videos []*models.Video) []*models.ContentTypeRow {
	type key struct{ device, kind string }
	groups := make(map[key]*models.ContentTypeRow)

	for _, v := range videos {
		k := key{v.DeviceName, v.ContentType}
		row, ok := groups[k]
		if !ok {
			row = &models.ContentTypeRow{DeviceName: k.device, VideoType: k.kind}
			groups[k] = row
		}
		row.VideoCount++
		row.TotalViews += v.ViewCount
		row.TotalLikes += v.Likes
		row.TotalComments += v.CommentCount
	}

	rows := make([]*models.ContentTypeRow, 0, len(groups))
	for _, row := range groups {
		row.AvgViews = mean(row.TotalViews, row.VideoCount)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DeviceName != rows[j].DeviceName {
			return rows[i].DeviceName < rows[j].DeviceName
		}
		return rows[i].VideoType < rows[j].VideoType
	})
	return rows
}

// ChannelPerformance groups by channel and device. The subscriber count is
// the first value seen for the group, never a sum. Rows are ordered by total
// views descending; ties fall back to channel, then device.
func (a *Aggregator) ChannelPerformance(videos []*models.Video) []*models.ChannelPerformanceRow {
	type key struct{ channel, device string }
	groups := make(map[key]*models.ChannelPerformanceRow)

	for _, v := range videos {
		k := key{v.ChannelName, v.DeviceName}
		row, ok := groups[k]
		if !ok {
			row = &models.ChannelPerformanceRow{
				ChannelName: k.channel,
				DeviceName:  k.device,
				Subscribers: v.SubscriberCount,
				Company:     v.Company,
			}
			groups[k] = row
		}
		row.VideoCount++
		row.TotalViews += v.ViewCount
		row.TotalLikes += v.Likes
		row.TotalComments += v.CommentCount
	}

	rows := make([]*models.ChannelPerformanceRow, 0, len(groups))
	for _, row := range groups {
		row.AvgViews = mean(row.TotalViews, row.VideoCount)
		row.EngagementRate = engagementRate(row.TotalLikes, row.TotalComments, row.TotalViews)
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ChannelName != rows[j].ChannelName {
			return rows[i].ChannelName < rows[j].ChannelName
		}
		return rows[i].DeviceName < rows[j].DeviceName
	})
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalViews > rows[j].TotalViews
	})
	return rows
}

// CategoryBreakdown compares the catalogued devices inside each category.
// Devices outside the catalog are not part of any category.
func (a *Aggregator) CategoryBreakdown(videos []*models.Video) []*models.CategoryBreakdown {
	perCategory := make(map[catalog.Category]*models.CategoryBreakdown)
	devices := make(map[string]*models.CategoryDeviceRow)
	orders := make(map[catalog.Category]*utils.KeySet)

	for _, c := range catalog.Categories() {
		perCategory[c] = &models.CategoryBreakdown{Category: c}
		orders[c] = utils.NewKeySet()
	}

	for _, v := range videos {
		cb, ok := perCategory[v.Category]
		if !ok {
			continue
		}
		row, ok := devices[v.DeviceName]
		if !ok {
			row = &models.CategoryDeviceRow{
				Category:      v.Category,
				DeviceName:    v.DeviceName,
				IsTargetBrand: v.IsTargetBrand,
			}
			devices[v.DeviceName] = row
			orders[v.Category].Add(v.DeviceName)
		}
		row.VideoCount++
		row.TotalViews += v.ViewCount
		row.Engagement += v.Likes + v.CommentCount

		cb.TotalVideos++
		cb.TotalViews += v.ViewCount
	}

	out := make([]*models.CategoryBreakdown, 0, len(perCategory))
	for _, c := range catalog.Categories() {
		cb := perCategory[c]
		cb.Devices = make([]*models.CategoryDeviceRow, 0, orders[c].Size())
		for _, name := range orders[c].Keys() {
			row := devices[name]
			row.CategorySharePct = utils.Percent(float64(row.VideoCount), float64(cb.TotalVideos))
			row.AvgViews = int64(utils.Round(mean(row.TotalViews, row.VideoCount), 0))
			cb.Devices = append(cb.Devices, row)
		}
		sort.SliceStable(cb.Devices, func(i, j int) bool {
			return cb.Devices[i].VideoCount > cb.Devices[j].VideoCount
		})
		if len(cb.Devices) > 0 {
			cb.Leader = cb.Devices[0].DeviceName
		}
		out = append(out, cb)
	}
	return out
}

// engagementRate is (likes+comments)/views*100 rounded to two decimals,
// or 0 for a row without views.
func engagementRate(likes, comments, views int64) float64 {
	return utils.Percent(float64(likes+comments), float64(views))
}

func mean(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
