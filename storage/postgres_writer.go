package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"youtube-insights/catalog"
	"youtube-insights/models"
	"youtube-insights/utils"
)

const batchSize = 50

var _ RunWriter = (*PostgresWriter)(nil)

var (
	videoColumns = []string{
		"run_id", "video_id", "title", "device_name", "channel_name", "content_type",
		"published_at", "duration_seconds", "view_count", "likes", "comment_count",
		"subscriber_count", "category", "device_rank", "company", "is_target_brand",
	}
	marketShareColumns = []string{
		"run_id", "device_name", "video_count", "video_share_pct", "total_views",
		"view_share_pct", "unique_channel_count", "category", "device_rank", "company",
		"is_target_brand",
	}
)

// PostgresWriter persists normalized videos and the market share table.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, retries the ping,
// runs schema migrations and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := NewPostgresWriterFromDB(db)
	if err := pw.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

// NewPostgresWriterFromDB wraps an already opened database.
func NewPostgresWriterFromDB(db *sql.DB) *PostgresWriter {
	return &PostgresWriter{db: db}
}

// Migrate creates the tables and indexes if they do not exist.
func (pw *PostgresWriter) Migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS videos (
			id               SERIAL PRIMARY KEY,
			run_id           UUID         NOT NULL,
			video_id         TEXT         NOT NULL DEFAULT '',
			title            TEXT         NOT NULL DEFAULT '',
			device_name      TEXT         NOT NULL,
			channel_name     TEXT         NOT NULL DEFAULT '',
			content_type     TEXT         NOT NULL DEFAULT '',
			published_at     TIMESTAMPTZ,
			duration_seconds BIGINT       NOT NULL DEFAULT 0,
			view_count       BIGINT       NOT NULL DEFAULT 0,
			likes            BIGINT       NOT NULL DEFAULT 0,
			comment_count    BIGINT       NOT NULL DEFAULT 0,
			subscriber_count BIGINT       NOT NULL DEFAULT 0,
			category         VARCHAR(16)  NOT NULL,
			device_rank      INTEGER      NOT NULL,
			company          TEXT         NOT NULL,
			is_target_brand  BOOLEAN      NOT NULL DEFAULT FALSE
		);

		CREATE TABLE IF NOT EXISTS device_market_share (
			run_id               UUID          NOT NULL,
			device_name          TEXT          NOT NULL,
			video_count          BIGINT        NOT NULL,
			video_share_pct      NUMERIC(6,2)  NOT NULL,
			total_views          BIGINT        NOT NULL,
			view_share_pct       NUMERIC(6,2)  NOT NULL,
			unique_channel_count BIGINT        NOT NULL,
			category             VARCHAR(16)   NOT NULL,
			device_rank          INTEGER       NOT NULL,
			company              TEXT          NOT NULL,
			is_target_brand      BOOLEAN       NOT NULL DEFAULT FALSE,
			PRIMARY KEY (run_id, device_name)
		);

		CREATE INDEX IF NOT EXISTS idx_videos_device  ON videos(device_name);
		CREATE INDEX IF NOT EXISTS idx_videos_channel ON videos(channel_name);
		CREATE INDEX IF NOT EXISTS idx_videos_company ON videos(company);
	`)
	return err
}

// Write replaces the stored dataset with the report's videos and market
// share rows in a single transaction. An empty report leaves both tables
// empty.
func (pw *PostgresWriter) Write(report *models.Report) error {
	runID, videos := report.RunID, report.Videos

	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"videos", "device_market_share"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("postgres: clear %s: %w", table, err)
		}
	}

	videoRows := make([][]any, 0, len(videos))
	for _, v := range videos {
		var published any
		if v.HasDate {
			published = v.Date
		}
		videoRows = append(videoRows, []any{
			runID, v.ID, v.Title, v.DeviceName, v.ChannelName, v.ContentType,
			published, v.DurationSeconds, v.ViewCount, v.Likes, v.CommentCount,
			v.SubscriberCount, string(v.Category), v.Rank, v.Company, v.IsTargetBrand,
		})
	}
	if err := insertBatches(tx, "videos", videoColumns, videoRows); err != nil {
		return err
	}

	shareRows := make([][]any, 0, len(report.MarketShare))
	for _, r := range report.MarketShare {
		shareRows = append(shareRows, []any{
			runID, r.DeviceName, r.VideoCount, r.VideoSharePct, r.TotalViews,
			r.ViewSharePct, r.UniqueChannelCount, string(r.Category), r.Rank, r.Company,
			r.IsTargetBrand,
		})
	}
	if err := insertBatches(tx, "device_market_share", marketShareColumns, shareRows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatches(tx *sql.Tx, table string, columns []string, rows [][]any) error {
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := insertBatch(tx, table, columns, rows[i:end]); err != nil {
			return fmt.Errorf("postgres: insert %s: %w", table, err)
		}
	}
	return nil
}

func insertBatch(tx *sql.Tx, table string, columns []string, batch [][]any) error {
	width := len(columns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)

	for idx, row := range batch {
		placeholders := make([]string, width)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", idx*width+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, row...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table, strings.Join(columns, ", "), strings.Join(valueStrings, ","))

	_, err := tx.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchVideos retrieves all stored videos in insertion order.
func (pw *PostgresWriter) FetchVideos() ([]*models.Video, error) {
	rows, err := pw.db.Query(`
		SELECT video_id, title, device_name, channel_name, content_type, published_at,
		       duration_seconds, view_count, likes, comment_count, subscriber_count,
		       category, device_rank, company, is_target_brand
		FROM videos
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch videos: %w", err)
	}
	defer rows.Close()

	var videos []*models.Video
	for rows.Next() {
		v := &models.Video{}
		var (
			published sql.NullTime
			category  string
		)
		if err := rows.Scan(
			&v.ID, &v.Title, &v.DeviceName, &v.ChannelName, &v.ContentType, &published,
			&v.DurationSeconds, &v.ViewCount, &v.Likes, &v.CommentCount, &v.SubscriberCount,
			&category, &v.Rank, &v.Company, &v.IsTargetBrand,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if published.Valid {
			v.Date = published.Time.In(time.UTC)
			v.HasDate = true
		}
		v.Category = catalog.Category(category)
		videos = append(videos, v)
	}
	return videos, rows.Err()
}
