package database

// FetchStatus describes the outcome of the fetch that produced a video's
// current revision.
type FetchStatus string

const (
	FetchStatusOk       FetchStatus = "ok"
	FetchStatusNotFound FetchStatus = "not_found"
	FetchStatusError    FetchStatus = "error"
	FetchStatusPending  FetchStatus = "pending"
)

// Video represents one cataloged piece of content. Timestamps are epoch
// milliseconds. FetchedAt is stamped by the repository on every write and
// any caller-supplied value is discarded.
type Video struct {
	ID           string      `json:"id" yaml:"id"`
	Title        string      `json:"title" yaml:"title"`
	Description  string      `json:"description" yaml:"description"`
	Channel      string      `json:"channel" yaml:"channel"`
	SourceURL    string      `json:"source_url" yaml:"source_url"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty" yaml:"thumbnail_url"`
	PublishedAt  int64       `json:"published_at" yaml:"published_at"`
	FetchedAt    int64       `json:"fetched_at" yaml:"-"`
	ContentHash  string      `json:"content_hash,omitempty" yaml:"-"`
	FetchStatus  FetchStatus `json:"fetch_status" yaml:"fetch_status"`
	FetchError   string      `json:"fetch_error,omitempty" yaml:"-"`
	License      string      `json:"license,omitempty" yaml:"license"`
}

// PollConfig is the single-slot configuration for the background poll job.
type PollConfig struct {
	IntervalSeconds int64 `json:"interval_seconds"`
	Enabled         bool  `json:"enabled"`
}

// DefaultPollConfig matches the initial state of a fresh catalog: a 24 hour
// period with polling switched off.
func DefaultPollConfig() PollConfig {
	return PollConfig{
		IntervalSeconds: 86400,
		Enabled:         false,
	}
}
