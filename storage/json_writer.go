package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"youtube-insights/models"
)

// Output file names of the document reports.
const (
	InsightFile   = "target_youtube_insights.json"
	DashboardFile = "youtube_dashboard_summary.json"
)

// JSONWriter writes the insight and dashboard documents.
type JSONWriter struct {
	dir string
}

// NewJSONWriter creates the output directory if needed.
func NewJSONWriter(dir string) (*JSONWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("json: create output dir: %w", err)
	}
	return &JSONWriter{dir: dir}, nil
}

// WriteReport writes the insight document and the dashboard summary.
func (j *JSONWriter) WriteReport(r *models.Report) error {
	if err := j.writeDocument(InsightFile, r.Insight); err != nil {
		return err
	}
	return j.writeDocument(DashboardFile, r.Dashboard)
}

func (j *JSONWriter) writeDocument(name string, doc any) (err error) {
	path := filepath.Join(j.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("json: create file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("json: close %q: %w", path, cerr)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("json: encode %q: %w", path, err)
	}
	return nil
}
