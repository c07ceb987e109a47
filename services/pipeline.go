package services

import (
	"youtube-insights/models"
	"youtube-insights/utils"
)

// Pipeline chains normalization, aggregation and insight synthesis. Each
// stage consumes the previous stage's output; no stage keeps state between
// runs, so Run is safe to call repeatedly.
type Pipeline struct {
	normalizer *Normalizer
	aggregator *Aggregator
	insights   *InsightService
	logger     *utils.Logger
}

// NewPipeline wires the three stages together.
func NewPipeline(normalizer *Normalizer, aggregator *Aggregator, insights *InsightService, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		aggregator: aggregator,
		insights:   insights,
		logger:     logger,
	}
}

// Run turns raw records into a complete report. An empty input yields
// empty tables and a zeroed insight document.
func (p *Pipeline) Run(raw []*models.RawVideo) *models.Report {
	videos := p.normalizer.NormalizeAll(raw)
	if len(videos) == 0 {
		p.logger.Warn("[pipeline] No records to aggregate, producing empty report")
	}

	agg := p.aggregator.Run(videos)
	insight := p.insights.Synthesize(videos, agg.ChannelPerformance)

	return &models.Report{
		RecordCount:        len(videos),
		Videos:             videos,
		MarketShare:        agg.MarketShare,
		MonthlyTrends:      agg.MonthlyTrends,
		ContentTypes:       agg.ContentTypes,
		ChannelPerformance: agg.ChannelPerformance,
		Categories:         agg.Categories,
		Insight:            insight,
		Dashboard:          p.insights.DashboardSummary(videos, agg.MarketShare, insight),
	}
}
