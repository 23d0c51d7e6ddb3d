package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roadIncidents/internal/domain"
	"roadIncidents/pkg/e"

	"github.com/redis/go-redis/v9"
)

// EventQueue is a FIFO of incident notifications: LPUSH on publish,
// BRPOP on consume.
type EventQueue struct {
	client *redis.Client
	key    string
}

func NewEventQueue(client *redis.Client, key string) *EventQueue {
	return &EventQueue{client: client, key: key}
}

func (q *EventQueue) Enqueue(ctx context.Context, event domain.IncidentCreatedEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

// BRPop waits up to timeout for the oldest event. It returns e.ErrQueueEmpty
// when nothing arrived in time.
func (q *EventQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.IncidentCreatedEvent, error) {
	var ev domain.IncidentCreatedEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ev, e.ErrQueueEmpty
		}
		return ev, err
	}
	if len(res) < 2 {
		return ev, e.ErrQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return ev, err
	}
	return ev, nil
}
