package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"youtube-insights/catalog"
	"youtube-insights/models"
	"youtube-insights/utils"
)

// durationRegexp matches "MM:SS" or "HH:MM:SS".
var durationRegexp = regexp.MustCompile(`^\d+(?::\d+){1,2}$`)

// defaultContentType labels records whose type is missing.
const defaultContentType = "video"

// dateLayouts are tried in order when parsing a publish timestamp.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// classification is the catalog-derived part of a normalized record.
type classification struct {
	category catalog.Category
	rank     int
	company  string
	isTarget bool
}

// Normalizer converts RawVideos into catalog-enriched Videos.
type Normalizer struct {
	catalog       *catalog.Catalog
	targetCompany string
	logger        *utils.Logger

	memo map[string]classification
}

// NewNormalizer creates a Normalizer bound to an immutable catalog.
func NewNormalizer(cat *catalog.Catalog, targetCompany string, logger *utils.Logger) *Normalizer {
	return &Normalizer{
		catalog:       cat,
		targetCompany: targetCompany,
		logger:        logger,
		memo:          make(map[string]classification),
	}
}

// NormalizeAll normalizes every record. Malformed fields never drop a record.
func (n *Normalizer) NormalizeAll(raw []*models.RawVideo) []*models.Video {
	result := make([]*models.Video, 0, len(raw))
	unknown, undated := 0, 0

	for _, r := range raw {
		if r == nil {
			continue
		}
		v := n.Normalize(r)
		if v.Category == catalog.Unknown {
			unknown++
		}
		if !v.HasDate {
			undated++
		}
		result = append(result, v)
	}

	n.logger.Info("[normalizer] Normalized %d records (unknown device: %d, undated: %d)",
		len(result), unknown, undated)
	return result
}

// Normalize converts a single raw record. It is total: unparseable fields
// fall back to zero values.
func (n *Normalizer) Normalize(r *models.RawVideo) *models.Video {
	deviceName := normaliseLabel(r.Input.String())
	cls := n.classify(deviceName)
	date, hasDate := parseDate(r.Date.String())

	return &models.Video{
		ID:              strings.TrimSpace(r.ID.String()),
		Title:           normaliseText(r.Title.String()),
		URL:             strings.TrimSpace(r.URL.String()),
		DeviceName:      deviceName,
		Date:            date,
		HasDate:         hasDate,
		DurationSeconds: parseDuration(r.Duration.String()),
		ViewCount:       parseCount(r.ViewCount.String()),
		Likes:           parseCount(r.Likes.String()),
		CommentCount:    parseCount(r.Comments.String()),
		SubscriberCount: parseCount(r.Subscribers.String()),
		ChannelName:     r.ChannelName.String(),
		ContentType:     contentType(r.Type.String()),
		Category:        cls.category,
		Rank:            cls.rank,
		Company:         cls.company,
		IsTargetBrand:   cls.isTarget,
	}
}

// classify resolves a device against the catalog, memoizing per name.
func (n *Normalizer) classify(deviceName string) classification {
	if cls, ok := n.memo[deviceName]; ok {
		return cls
	}

	cls := classification{
		category: catalog.Unknown,
		rank:     catalog.SentinelRank,
		company:  catalog.UnknownCompany,
	}
	if e, ok := n.catalog.Lookup(deviceName); ok {
		cls = classification{
			category: e.Category,
			rank:     e.Rank,
			company:  e.Company,
			isTarget: e.Company == n.targetCompany,
		}
	} else if deviceName != "" {
		n.logger.Debug("[normalizer] Device %q not in catalog, classified as %s", deviceName, catalog.Unknown)
	}

	n.memo[deviceName] = cls
	return cls
}

// parseDuration converts "HH:MM:SS" or "MM:SS" to seconds.
// Examples:
//
//	"01:02:03" → 3723
//	"02:30"    → 150
//	"", "abc", "1:2:3:4" → 0
//	values past MaxInt64 seconds → 0
func parseDuration(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if !durationRegexp.MatchString(raw) {
		return 0
	}

	parts := strings.Split(raw, ":")
	var total int64
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || total > (math.MaxInt64-v)/60 {
			return 0
		}
		total = total*60 + v
	}
	return total
}

// parseCount coerces a loosely typed counter to a non-negative integer.
// Thousands separators are ignored, fractions truncated, anything
// unparseable or negative is 0.
func parseCount(raw string) int64 {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0
	}

	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		if v < 0 {
			return 0
		}
		return v
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0
	}
	return int64(f)
}

func contentType(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultContentType
	}
	return raw
}

// parseDate accepts the timestamp shapes seen in scraper exports.
func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// normaliseLabel trims a device label and composes Hangul jamo (NFC), so
// labels from decomposed sources match catalog keys.
func normaliseLabel(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
