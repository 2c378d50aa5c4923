// Package seed loads an optional YAML file of initial videos applied to an
// empty catalog on first boot.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lain-corp/lain-tv/app/database"
)

type seedFile struct {
	Videos []database.Video `yaml:"videos"`
}

// Load reads the seed file at path. A missing file is not an error; it
// simply yields no videos.
func Load(path string) ([]database.Video, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, video := range file.Videos {
		if video.ID == "" {
			return nil, fmt.Errorf("seed video %d has no id", i)
		}
		if file.Videos[i].FetchStatus == "" {
			file.Videos[i].FetchStatus = database.FetchStatusOk
		}
	}

	return file.Videos, nil
}
