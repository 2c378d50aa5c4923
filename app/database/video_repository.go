package database

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/text/cases"
)

var _ VideoRepository = (*VideoRepositoryImpl)(nil)

// VideoRepositoryImpl handles database operations for cataloged videos.
type VideoRepositoryImpl struct {
	db     *DB
	folder cases.Caser
}

func NewVideoRepository(db *DB) *VideoRepositoryImpl {
	return &VideoRepositoryImpl{
		db:     db,
		folder: cases.Fold(),
	}
}

// UpsertVideo inserts or wholesale-replaces the record at video.ID. The
// fetched_at stamp is always taken from the time of this write; a
// caller-supplied value is discarded.
func (r *VideoRepositoryImpl) UpsertVideo(video *Video) error {
	video.FetchedAt = time.Now().UnixMilli()

	_, err := r.db.Exec(`
		INSERT INTO videos (
			id, title, description, channel, channel_fold, source_url,
			thumbnail_url, published_at, fetched_at, content_hash,
			fetch_status, fetch_error, license
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			channel = excluded.channel,
			channel_fold = excluded.channel_fold,
			source_url = excluded.source_url,
			thumbnail_url = excluded.thumbnail_url,
			published_at = excluded.published_at,
			fetched_at = excluded.fetched_at,
			content_hash = excluded.content_hash,
			fetch_status = excluded.fetch_status,
			fetch_error = excluded.fetch_error,
			license = excluded.license
	`, video.ID, video.Title, video.Description, video.Channel,
		r.folder.String(video.Channel), video.SourceURL, video.ThumbnailURL,
		video.PublishedAt, video.FetchedAt, video.ContentHash,
		string(video.FetchStatus), video.FetchError, video.License)

	if err != nil {
		return fmt.Errorf("failed to upsert video: %w", err)
	}

	return nil
}

// GetVideo retrieves a video by id, returning nil when it is not cataloged.
func (r *VideoRepositoryImpl) GetVideo(id string) (*Video, error) {
	video, err := r.scanVideo(r.db.QueryRow(videoSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return video, nil
}

// RemoveVideo deletes the video with the given id, reporting whether a row
// was actually removed.
func (r *VideoRepositoryImpl) RemoveVideo(id string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM videos WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to remove video: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to count removed videos: %w", err)
	}

	return affected > 0, nil
}

// ListVideos returns all cataloged videos. Order carries no meaning.
func (r *VideoRepositoryImpl) ListVideos() ([]Video, error) {
	rows, err := r.db.Query(videoSelect)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

// GetVideosByChannel performs a case-insensitive exact match on the channel
// label, comparing Unicode case-folded forms.
func (r *VideoRepositoryImpl) GetVideosByChannel(channel string) ([]Video, error) {
	rows, err := r.db.Query(videoSelect+` WHERE channel_fold = ?`, r.folder.String(channel))
	if err != nil {
		return nil, fmt.Errorf("failed to get videos by channel: %w", err)
	}
	defer rows.Close()

	return r.collectVideos(rows)
}

// GetVideoCount returns the total number of cataloged videos.
func (r *VideoRepositoryImpl) GetVideoCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM videos`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get video count: %w", err)
	}
	return count, nil
}

const videoSelect = `
	SELECT id, title, description, channel, source_url, thumbnail_url,
	       published_at, fetched_at, content_hash, fetch_status, fetch_error,
	       license
	FROM videos`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *VideoRepositoryImpl) scanVideo(row rowScanner) (*Video, error) {
	var video Video
	var status string
	err := row.Scan(
		&video.ID, &video.Title, &video.Description, &video.Channel,
		&video.SourceURL, &video.ThumbnailURL, &video.PublishedAt,
		&video.FetchedAt, &video.ContentHash, &status, &video.FetchError,
		&video.License,
	)
	if err != nil {
		return nil, err
	}

	video.FetchStatus = FetchStatus(status)
	return &video, nil
}

func (r *VideoRepositoryImpl) collectVideos(rows *sql.Rows) ([]Video, error) {
	var videos []Video
	for rows.Next() {
		video, err := r.scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, *video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating video rows: %w", err)
	}

	return videos, nil
}
