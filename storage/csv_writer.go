package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"youtube-insights/models"
)

// Output file names of the tabular reports.
const (
	MarketShareFile        = "youtube_market_share.csv"
	MonthlyTrendsFile      = "youtube_monthly_trends.csv"
	ContentTypesFile       = "youtube_type_analysis.csv"
	ChannelPerformanceFile = "youtube_channel_performance.csv"
	CategoryBreakdownFile  = "youtube_category_breakdown.csv"
)

// utf8BOM marks the files as UTF-8 for spreadsheet tools.
const utf8BOM = "\uFEFF"

// CSVWriter writes the aggregation tables as CSV files into one directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// WriteReport writes every table of the report, truncating previous files.
func (c *CSVWriter) WriteReport(r *models.Report) error {
	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{MarketShareFile, marketShareHeader, marketShareRecords(r.MarketShare)},
		{MonthlyTrendsFile, monthlyTrendHeader, monthlyTrendRecords(r.MonthlyTrends)},
		{ContentTypesFile, contentTypeHeader, contentTypeRecords(r.ContentTypes)},
		{ChannelPerformanceFile, channelHeader, channelRecords(r.ChannelPerformance)},
		{CategoryBreakdownFile, categoryHeader, categoryRecords(r.Categories)},
	}

	for _, t := range tables {
		if err := c.writeTable(t.name, t.header, t.rows); err != nil {
			return err
		}
	}
	return nil
}

func (c *CSVWriter) writeTable(name string, header []string, rows [][]string) (err error) {
	path := filepath.Join(c.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("csv: close %q: %w", path, cerr)
		}
	}()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("csv: write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("csv: write rows to %q: %w", path, err)
	}
	return nil
}

var (
	marketShareHeader = []string{
		"device_name", "video_count", "video_share_pct", "total_views", "view_share_pct",
		"unique_channel_count", "category", "rank", "company", "is_target_brand",
	}
	monthlyTrendHeader = []string{
		"device_name", "month", "total_views", "total_likes", "total_comments", "video_count",
	}
	contentTypeHeader = []string{
		"device_name", "video_type", "video_count", "total_views", "avg_views", "total_likes", "total_comments",
	}
	channelHeader = []string{
		"channel_name", "device_name", "video_count", "total_views", "avg_views",
		"total_likes", "total_comments", "subscribers", "engagement_rate", "company",
	}
	categoryHeader = []string{
		"category", "device_name", "video_count", "total_views", "engagement",
		"category_share_pct", "avg_views", "is_target_brand", "is_leader",
	}
)

func marketShareRecords(rows []*models.MarketShareRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.DeviceName,
			itoa(r.VideoCount),
			ftoa(r.VideoSharePct),
			itoa(r.TotalViews),
			ftoa(r.ViewSharePct),
			itoa(r.UniqueChannelCount),
			string(r.Category),
			strconv.Itoa(r.Rank),
			r.Company,
			strconv.FormatBool(r.IsTargetBrand),
		})
	}
	return out
}

func monthlyTrendRecords(rows []*models.MonthlyTrendRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.DeviceName,
			r.Month,
			itoa(r.TotalViews),
			itoa(r.TotalLikes),
			itoa(r.TotalComments),
			itoa(r.VideoCount),
		})
	}
	return out
}

func contentTypeRecords(rows []*models.ContentTypeRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.DeviceName,
			r.VideoType,
			itoa(r.VideoCount),
			itoa(r.TotalViews),
			ftoa(r.AvgViews),
			itoa(r.TotalLikes),
			itoa(r.TotalComments),
		})
	}
	return out
}

func channelRecords(rows []*models.ChannelPerformanceRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.ChannelName,
			r.DeviceName,
			itoa(r.VideoCount),
			itoa(r.TotalViews),
			ftoa(r.AvgViews),
			itoa(r.TotalLikes),
			itoa(r.TotalComments),
			itoa(r.Subscribers),
			ftoa(r.EngagementRate),
			r.Company,
		})
	}
	return out
}

func categoryRecords(cats []*models.CategoryBreakdown) [][]string {
	var out [][]string
	for _, c := range cats {
		for _, d := range c.Devices {
			out = append(out, []string{
				string(c.Category),
				d.DeviceName,
				itoa(d.VideoCount),
				itoa(d.TotalViews),
				itoa(d.Engagement),
				ftoa(d.CategorySharePct),
				itoa(d.AvgViews),
				strconv.FormatBool(d.IsTargetBrand),
				strconv.FormatBool(d.DeviceName == c.Leader),
			})
		}
	}
	return out
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
