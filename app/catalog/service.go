// Package catalog composes the video store, access guard, and poll
// scheduler into the operations the transport exposes.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/lain-corp/lain-tv/app/auth"
	"github.com/lain-corp/lain-tv/app/database"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrMissingID     = errors.New("video id must not be empty")
)

// Scheduler is the poll scheduler surface the catalog drives.
type Scheduler interface {
	GetConfig() database.PollConfig
	SetConfig(config database.PollConfig)
	TriggerNow(ctx context.Context) (int, error)
	LastPoll() *int64
}

// Stats is derived state, never stored.
type Stats struct {
	TotalVideos int    `json:"total_videos"`
	LastPoll    *int64 `json:"last_poll"`
}

type Service struct {
	videos    database.VideoRepository
	config    database.ConfigRepository
	guard     *auth.Guard
	scheduler Scheduler
}

func NewService(videos database.VideoRepository, config database.ConfigRepository,
	guard *auth.Guard, scheduler Scheduler) *Service {
	return &Service{
		videos:    videos,
		config:    config,
		guard:     guard,
		scheduler: scheduler,
	}
}

func (s *Service) ListVideos() ([]database.Video, error) {
	return s.videos.ListVideos()
}

func (s *Service) GetVideo(id string) (*database.Video, error) {
	return s.videos.GetVideo(id)
}

func (s *Service) GetVideosByChannel(channel string) ([]database.Video, error) {
	return s.videos.GetVideosByChannel(channel)
}

// AddOrUpdateVideo upserts a record. Open to any caller; the repository
// stamps fetched_at.
func (s *Service) AddOrUpdateVideo(video *database.Video) error {
	if video.ID == "" {
		return ErrMissingID
	}
	return s.videos.UpsertVideo(video)
}

// RemoveVideo deletes a record. Admin only.
func (s *Service) RemoveVideo(caller, id string) error {
	if !s.guard.IsAdmin(caller) {
		return auth.ErrAccessDenied
	}

	removed, err := s.videos.RemoveVideo(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrVideoNotFound
	}

	return nil
}

// ManualPoll runs one fetch cycle synchronously. Admin only.
func (s *Service) ManualPoll(ctx context.Context, caller string) (int, error) {
	if !s.guard.IsAdmin(caller) {
		return 0, auth.ErrAccessDenied
	}
	return s.scheduler.TriggerNow(ctx)
}

// SetPollConfig persists the configuration and applies it to the scheduler.
// Admin only.
func (s *Service) SetPollConfig(caller string, config database.PollConfig) error {
	if !s.guard.IsAdmin(caller) {
		return auth.ErrAccessDenied
	}
	if config.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds must be positive, got %d", config.IntervalSeconds)
	}

	if err := s.config.SetPollConfig(config); err != nil {
		return err
	}
	s.scheduler.SetConfig(config)

	return nil
}

func (s *Service) GetPollConfig() database.PollConfig {
	return s.scheduler.GetConfig()
}

func (s *Service) GetStats() (Stats, error) {
	count, err := s.videos.GetVideoCount()
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalVideos: count,
		LastPoll:    s.scheduler.LastPoll(),
	}, nil
}

// Whoami echoes the caller identity as presented by the transport.
func (s *Service) Whoami(caller string) string {
	return caller
}
