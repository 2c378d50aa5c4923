package database

type VideoRepository interface {
	UpsertVideo(video *Video) error
	GetVideo(id string) (*Video, error)
	RemoveVideo(id string) (bool, error)
	ListVideos() ([]Video, error)
	GetVideosByChannel(channel string) ([]Video, error)
	GetVideoCount() (int, error)
}

type ConfigRepository interface {
	GetPollConfig() (PollConfig, error)
	SetPollConfig(config PollConfig) error
}
