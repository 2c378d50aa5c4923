package cfg

type Cfg struct {
	// Application configuration
	Port   string
	DBPath string

	// Content source configuration
	SourceURL        string
	SourceFormat     string
	MaxResponseBytes int64
	FetchTimeout     int

	// Access control
	ServiceIdentity string

	// Application metadata
	SeedFile  string
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
