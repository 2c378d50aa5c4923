package source

import (
	"bytes"
	"cmp"
	"fmt"

	"github.com/mmcdole/gofeed"

	"github.com/lain-corp/lain-tv/app/database"
)

var _ Decoder = (*RSSDecoder)(nil)

// RSSDecoder interprets an Odysee channel RSS feed. The feed title becomes
// the channel label for every entry.
type RSSDecoder struct {
	gofeedParser *gofeed.Parser
}

func NewRSSDecoder() *RSSDecoder {
	return &RSSDecoder{
		gofeedParser: gofeed.NewParser(),
	}
}

func (d *RSSDecoder) Decode(data []byte) ([]database.Video, error) {
	feed, err := d.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	var videos []database.Video
	for _, item := range feed.Items {
		id := cmp.Or(item.GUID, item.Link)
		if id == "" {
			continue
		}

		video := database.Video{
			ID:          id,
			Title:       item.Title,
			Description: item.Description,
			Channel:     feed.Title,
			SourceURL:   item.Link,
			FetchStatus: database.FetchStatusOk,
		}

		if item.Image != nil {
			video.ThumbnailURL = item.Image.URL
		}
		if item.PublishedParsed != nil {
			video.PublishedAt = item.PublishedParsed.UnixMilli()
		}

		videos = append(videos, video)
	}

	return videos, nil
}
