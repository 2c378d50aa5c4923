// Package source fetches candidate video records from an external content
// source. The wire payload is a collaborator concern: a Decoder turns the
// raw response body into candidate records or a typed error.
package source

import (
	"context"
	"fmt"

	"github.com/lain-corp/lain-tv/app/database"
)

// Source performs one outbound fetch and yields candidate records.
type Source interface {
	Fetch(ctx context.Context) ([]database.Video, error)
}

// Decoder interprets a raw source payload.
type Decoder interface {
	Decode(data []byte) ([]database.Video, error)
}

// HTTPError reports a completed outbound call with a non-success status.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.Status)
}
