package source

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/lain-corp/lain-tv/app/database"
)

var _ Decoder = (*ClaimDecoder)(nil)

// ClaimDecoder interprets the Odysee claim_search proxy response. Only the
// fields the catalog needs are decoded; anything else in the payload is
// ignored.
type ClaimDecoder struct{}

func NewClaimDecoder() *ClaimDecoder {
	return &ClaimDecoder{}
}

type claimEnvelope struct {
	Data struct {
		Result struct {
			Items []claim `json:"items"`
		} `json:"result"`
	} `json:"data"`
}

type claim struct {
	ClaimID        string `json:"claim_id"`
	CanonicalURL   string `json:"canonical_url"`
	PermanentURL   string `json:"permanent_url"`
	Timestamp      int64  `json:"timestamp"`
	SigningChannel *struct {
		Name string `json:"name"`
	} `json:"signing_channel"`
	Value struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		ReleaseTime string `json:"release_time"`
		License     string `json:"license"`
		Thumbnail   *struct {
			URL string `json:"url"`
		} `json:"thumbnail"`
	} `json:"value"`
}

func (d *ClaimDecoder) Decode(data []byte) ([]database.Video, error) {
	var envelope claimEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse claim search response: %w", err)
	}

	var videos []database.Video
	for _, item := range envelope.Data.Result.Items {
		if item.ClaimID == "" {
			continue
		}

		video := database.Video{
			ID:          item.ClaimID,
			Title:       item.Value.Title,
			Description: item.Value.Description,
			SourceURL:   webURL(item),
			PublishedAt: publishedAt(item),
			FetchStatus: database.FetchStatusOk,
			License:     item.Value.License,
		}

		if item.SigningChannel != nil {
			video.Channel = item.SigningChannel.Name
		}
		if item.Value.Thumbnail != nil {
			video.ThumbnailURL = item.Value.Thumbnail.URL
		}

		videos = append(videos, video)
	}

	return videos, nil
}

// webURL maps a claim's lbry:// canonical URL to its odysee.com form.
func webURL(item claim) string {
	url := item.CanonicalURL
	if url == "" {
		url = item.PermanentURL
	}

	url = strings.TrimPrefix(url, "lbry://")
	url = strings.ReplaceAll(url, "#", ":")
	if url == "" {
		return ""
	}

	return "https://odysee.com/" + url
}

// publishedAt prefers the claim's release_time over the blockchain
// timestamp. Both are epoch seconds; the catalog stores milliseconds.
func publishedAt(item claim) int64 {
	if item.Value.ReleaseTime != "" {
		if seconds, err := strconv.ParseInt(item.Value.ReleaseTime, 10, 64); err == nil {
			return seconds * 1000
		}
	}
	return item.Timestamp * 1000
}
