package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"youtube-insights/models"
)

// ErrInputUnavailable means the dataset could not be obtained at all.
var ErrInputUnavailable = errors.New("input dataset unavailable")

// LoadRawVideos reads a scraper export: a JSON array of video objects.
func LoadRawVideos(path string) ([]*models.RawVideo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrInputUnavailable, path, err)
	}
	defer f.Close()

	videos, err := DecodeRawVideos(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return videos, nil
}

// DecodeRawVideos decodes a JSON array of video objects from r.
func DecodeRawVideos(r io.Reader) ([]*models.RawVideo, error) {
	var videos []*models.RawVideo
	if err := json.NewDecoder(r).Decode(&videos); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", ErrInputUnavailable, err)
	}
	if videos == nil {
		return nil, fmt.Errorf("%w: dataset is not a json array", ErrInputUnavailable)
	}
	return videos, nil
}
