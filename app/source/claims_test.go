package source

import (
	"testing"

	"github.com/lain-corp/lain-tv/app/database"
)

const sampleClaimSearch = `{
	"success": true,
	"data": {
		"result": {
			"items": [
				{
					"claim_id": "abc123",
					"canonical_url": "lbry://@TechLain#c/decentralized-tech#e",
					"timestamp": 1700000000,
					"signing_channel": {"name": "@TechLain"},
					"value": {
						"title": "Decentralized Future",
						"description": "Exploring blockchain technology",
						"release_time": "1699990000",
						"license": "Creative Commons",
						"thumbnail": {"url": "https://thumbs.odycdn.com/abc.webp"}
					}
				},
				{
					"claim_id": "def456",
					"permanent_url": "lbry://@VisualLain#9/cyberpunk#3",
					"timestamp": 1700100000,
					"signing_channel": {"name": "@VisualLain"},
					"value": {
						"title": "Cyberpunk Aesthetics",
						"description": "Visual culture in the digital age"
					}
				},
				{
					"claim_id": "",
					"value": {"title": "no claim id, skipped"}
				}
			]
		}
	}
}`

func TestClaimDecoder_Decode(t *testing.T) {
	videos, err := NewClaimDecoder().Decode([]byte(sampleClaimSearch))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("Expected 2 videos, got %d", len(videos))
	}

	first := videos[0]
	if first.ID != "abc123" {
		t.Errorf("Expected id abc123, got %q", first.ID)
	}
	if first.Title != "Decentralized Future" {
		t.Errorf("Unexpected title %q", first.Title)
	}
	if first.Channel != "@TechLain" {
		t.Errorf("Unexpected channel %q", first.Channel)
	}
	if first.SourceURL != "https://odysee.com/@TechLain:c/decentralized-tech:e" {
		t.Errorf("Unexpected source URL %q", first.SourceURL)
	}
	if first.ThumbnailURL != "https://thumbs.odycdn.com/abc.webp" {
		t.Errorf("Unexpected thumbnail %q", first.ThumbnailURL)
	}
	if first.PublishedAt != 1699990000000 {
		t.Errorf("Expected release_time in milliseconds, got %d", first.PublishedAt)
	}
	if first.FetchStatus != database.FetchStatusOk {
		t.Errorf("Expected status ok, got %q", first.FetchStatus)
	}
	if first.License != "Creative Commons" {
		t.Errorf("Unexpected license %q", first.License)
	}

	second := videos[1]
	if second.PublishedAt != 1700100000000 {
		t.Errorf("Expected timestamp fallback in milliseconds, got %d", second.PublishedAt)
	}
	if second.SourceURL != "https://odysee.com/@VisualLain:9/cyberpunk:3" {
		t.Errorf("Unexpected source URL from permanent_url %q", second.SourceURL)
	}
	if second.ThumbnailURL != "" {
		t.Errorf("Expected no thumbnail, got %q", second.ThumbnailURL)
	}
}

func TestClaimDecoder_DecodeInvalidJSON(t *testing.T) {
	if _, err := NewClaimDecoder().Decode([]byte("<not json>")); err == nil {
		t.Error("Expected error for malformed payload")
	}
}

func TestClaimDecoder_DecodeEmptyResult(t *testing.T) {
	videos, err := NewClaimDecoder().Decode([]byte(`{"data":{"result":{"items":[]}}}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(videos) != 0 {
		t.Errorf("Expected no videos, got %d", len(videos))
	}
}
