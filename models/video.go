package models

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"

	"youtube-insights/catalog"
)

// FlexValue holds a loosely typed scalar from the scraper export. Numbers,
// strings and null all decode into their textual form; null becomes "".
type FlexValue string

// UnmarshalJSON accepts a JSON string, number, boolean or null.
func (f *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexValue(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*f = ""
		return nil
	}
	*f = FlexValue(data)
	return nil
}

// String returns the raw text.
func (f FlexValue) String() string { return string(f) }

// RawVideo is one record of the scraper dataset, untouched.
type RawVideo struct {
	ID          FlexValue `json:"id"`
	Input       FlexValue `json:"input"`
	Title       FlexValue `json:"title"`
	URL         FlexValue `json:"url"`
	Date        FlexValue `json:"date"`
	Duration    FlexValue `json:"duration"`
	ViewCount   FlexValue `json:"viewCount"`
	Likes       FlexValue `json:"likes"`
	Comments    FlexValue `json:"commentsCount"`
	Subscribers FlexValue `json:"numberOfSubscribers"`
	ChannelName FlexValue `json:"channelName"`
	Type        FlexValue `json:"type"`
}

// Video is the normalized, catalog-enriched record every aggregation
// pass reads.
type Video struct {
	ID              string
	Title           string
	URL             string
	DeviceName      string
	Date            time.Time
	HasDate         bool
	DurationSeconds int64
	ViewCount       int64
	Likes           int64
	CommentCount    int64
	SubscriberCount int64
	ChannelName     string
	ContentType     string

	Category      catalog.Category
	Rank          int
	Company       string
	IsTargetBrand bool
}

// Month returns the calendar month bucket, e.g. "2025-08".
func (v *Video) Month() string {
	return v.Date.Format("2006-01")
}
