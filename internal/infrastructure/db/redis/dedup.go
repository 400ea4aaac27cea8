package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/testbot/testbot-api/internal/core/ports"
)

// ReportDedup remembers which report an Idempotency-Key produced, so a client
// retrying a submission gets the original report id back.
// Key format: idem:report:<tester_id>:<idempotency_key>
// Value: JSON ports.IdempotencyRecord
type ReportDedup struct {
	client *redis.Client
}

// NewReportDedup creates a ReportDedup wrapping the given Redis client.
func NewReportDedup(client *redis.Client) *ReportDedup {
	return &ReportDedup{client: client}
}

// Lookup returns the record stored for key, or nil when the key is unseen.
func (d *ReportDedup) Lookup(ctx context.Context, testerID, key string) (*ports.IdempotencyRecord, error) {
	raw, err := d.client.Get(ctx, d.key(testerID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup: %w", err)
	}

	var record ports.IdempotencyRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("idempotency decode: %w", err)
	}
	return &record, nil
}

// Remember stores record under key for ttl. An existing entry is kept.
func (d *ReportDedup) Remember(ctx context.Context, testerID, key string, record ports.IdempotencyRecord, ttl time.Duration) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := d.client.SetNX(ctx, d.key(testerID, key), string(value), ttl).Err(); err != nil {
		return fmt.Errorf("idempotency store: %w", err)
	}
	return nil
}

func (d *ReportDedup) key(testerID, key string) string {
	return fmt.Sprintf("idem:report:%s:%s", testerID, key)
}
