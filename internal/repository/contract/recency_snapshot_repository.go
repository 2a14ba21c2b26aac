package contract

import (
	"context"
	"time"
)

type RecencySnapshotRepository interface {
	// FindPayload returns nil, nil when no snapshot exists for key.
	FindPayload(ctx context.Context, key string) ([]byte, error)
	SavePayload(ctx context.Context, key string, payload []byte, at time.Time) error
}
