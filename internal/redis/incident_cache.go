package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"roadIncidents/internal/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const incidentViewPrefix = "incidents:view:"

// IncidentCache keeps read views of single incidents. Incidents are never
// updated once stored, so entries only expire.
type IncidentCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewIncidentCache(client *goredis.Client, ttl time.Duration) *IncidentCache {
	return &IncidentCache{client: client, ttl: ttl}
}

func incidentViewKey(id uuid.UUID) string {
	return incidentViewPrefix + id.String()
}

// Get returns nil, nil on a miss.
func (c *IncidentCache) Get(ctx context.Context, id uuid.UUID) (*domain.IncidentView, error) {
	data, err := c.client.Get(ctx, incidentViewKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var view domain.IncidentView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}

	return &view, nil
}

func (c *IncidentCache) Set(ctx context.Context, view domain.IncidentView) error {
	b, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, incidentViewKey(view.ID), b, c.ttl).Err()
}
